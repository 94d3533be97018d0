package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/markup"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] [file...]",
		Short: "Rewrite note HTML in canonical form",
		Long: `fmt parses each file and serializes it again. Heading ids are
brought in line with heading text unless [editor] heading_ids is false.
With no files, or "-", it reads standard input.`,
		RunE: runFmt,
	}
	cmd.Flags().Bool("minify", false, "minify output (default from [markup] minify)")
	cmd.Flags().Bool("sanitize", false, "sanitize input (default from [markup] sanitize)")
	cmd.Flags().BoolP("write", "w", false, "rewrite files in place instead of printing")
	cmd.Flags().Bool("check", false, "report files that are not canonical and fail")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	opts := e.markupOptions()
	if cmd.Flags().Changed("minify") {
		if opts.Minify, err = cmd.Flags().GetBool("minify"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("sanitize") {
		if opts.Sanitize, err = cmd.Flags().GetBool("sanitize"); err != nil {
			return err
		}
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if write && check {
		return fmt.Errorf("fmt: --write cannot be used with --check")
	}

	var dirty []string
	for _, path := range args {
		if write && path == "-" {
			return fmt.Errorf("fmt: --write needs file arguments")
		}
		src, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		doc, err := markup.Parse(bytes.NewReader(src), opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if e.cfg.Editor.HeadingIDs {
			if doc, err = syncHeadingIDs(doc); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		var out bytes.Buffer
		if err := markup.Serialize(&out, doc, opts); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		e.log.Debug("formatted", "path", path, "in", len(src), "out", out.Len())

		switch {
		case check:
			if !bytes.Equal(bytes.TrimSpace(src), out.Bytes()) {
				dirty = append(dirty, path)
			}
		case write:
			if bytes.Equal(src, out.Bytes()) {
				continue
			}
			if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
				return err
			}
		default:
			out.WriteByte('\n')
			if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
				return err
			}
		}
	}
	if len(dirty) > 0 {
		for _, path := range dirty {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return fmt.Errorf("fmt: %d file(s) not canonical", len(dirty))
	}
	return nil
}
