package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/preview"
	"github.com/iw2rmb/inkwell/search"
)

var (
	matchCountColor = color.New(color.FgYellow, color.Bold)
	noMatchColor    = color.New(color.FgRed)
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [flags] <query> <file>",
		Short: "Preview a file with matches highlighted",
		Args:  cobra.ExactArgs(2),
		RunE:  runSearch,
	}
	cmd.Flags().Int("current", 1, "1-based index of the match to mark as current")
	cmd.Flags().Bool("count", false, "print only the number of matches")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	current, err := cmd.Flags().GetInt("current")
	if err != nil {
		return err
	}
	countOnly, err := cmd.Flags().GetBool("count")
	if err != nil {
		return err
	}
	query, path := args[0], args[1]

	doc, err := e.parseFile(cmd, path, e.markupOptions())
	if err != nil {
		return err
	}
	overlay := search.New()
	ed, err := engine.New(engine.Config{
		Doc:          doc,
		Plugins:      []engine.Plugin{overlay},
		HistoryLimit: -1,
		Logger:       e.log,
	})
	if err != nil {
		return err
	}
	ranges := search.FindAll(ed.Doc(), query)
	if err := search.SetSearchResults(ed, ranges, current); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(ranges) == 0 {
		_, err := noMatchColor.Fprintf(w, "no matches for %q\n", query)
		return err
	}
	if _, err := matchCountColor.Fprintf(w, "%d match(es) for %q\n", len(ranges), query); err != nil {
		return err
	}
	if countOnly {
		return nil
	}
	st := preview.PlainStyle()
	if e.color {
		st = preview.DefaultStyle()
	}
	_, err = fmt.Fprintln(w, preview.Render(ed.Doc(), overlay.Decorations(), st))
	return err
}
