package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// coloredVersion paints each SemVer component. Anything after the patch
// number is left plain.
func coloredVersion(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the inkwell version and snapshot format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := setup(cmd); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "inkwell v%s (snapshot format %d)\n",
				coloredVersion(inkwell.Version()), inkwell.FormatVersion)
			return err
		},
	}
}
