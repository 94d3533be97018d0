package main

import (
	"bytes"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iw2rmb/inkwell/headingid"
)

func newTocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc [flags] <file>...",
		Short: "Print a markdown table of contents for each file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runToc,
	}
	cmd.Flags().String("title", "", "heading above the list (default: file name when several files are given)")
	cmd.Flags().Int("jobs", runtime.NumCPU(), "files processed concurrently")
	return cmd
}

func runToc(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	title, err := cmd.Flags().GetString("title")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	opts := e.markupOptions()
	outs := make([]bytes.Buffer, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(jobs, 1))
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := e.parseFile(cmd, path, opts)
			if err != nil {
				return err
			}
			if e.cfg.Editor.HeadingIDs {
				if doc, err = syncHeadingIDs(doc); err != nil {
					return err
				}
			}
			t := title
			if t == "" && len(args) > 1 {
				t = filepath.Base(path)
			}
			return headingid.WriteTOC(&outs[i], t, headingid.Collect(doc))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i := range outs {
		if i > 0 {
			if _, err := w.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if _, err := outs[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
