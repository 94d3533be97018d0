package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/markup"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/snapshot"
)

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <in.html> <out.snap>",
		Short: "Store a note as a session snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			doc, err := e.parseFile(cmd, args[0], e.markupOptions())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := snapshot.Encode(&buf, snapshot.Snapshot{Doc: doc, Selection: model.Cursor(0)}); err != nil {
				return err
			}
			e.log.Debug("packed", "path", args[1], "bytes", buf.Len())
			return os.WriteFile(args[1], buf.Bytes(), 0o644)
		},
	}
}

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <in.snap> [out.html]",
		Short: "Write the document of a session snapshot as HTML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			s, err := snapshot.Decode(f, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			var out bytes.Buffer
			if err := markup.Serialize(&out, s.Doc, e.markupOptions()); err != nil {
				return err
			}
			if len(args) == 2 {
				return os.WriteFile(args[1], out.Bytes(), 0o644)
			}
			out.WriteByte('\n')
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
