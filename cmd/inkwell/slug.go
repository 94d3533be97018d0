package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/headingid"
	"github.com/iw2rmb/inkwell/relpath"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <text>...",
		Short: "Print the heading id for each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), headingid.Slug(a)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRelpathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relpath <from-file> <to-file>",
		Short: "Print the relative link from one note to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from := strings.ReplaceAll(args[0], "\\", "/")
			to := strings.ReplaceAll(args[1], "\\", "/")
			_, err := fmt.Fprintln(cmd.OutOrStdout(), relpath.Compute(from, to))
			return err
		},
	}
}
