package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/headingid"
	"github.com/iw2rmb/inkwell/markup"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// env is what every subcommand needs from flags and inkwell.toml.
type env struct {
	cfg   config.Config
	log   *slog.Logger
	color bool
}

func setup(cmd *cobra.Command) (*env, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, _, err = config.Resolve(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Log.Level = level
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	mode, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	useColor, err := colorEnabled(mode, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	color.NoColor = !useColor

	return &env{cfg: cfg, log: log, color: useColor}, nil
}

func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

func (e *env) markupOptions() markup.Options {
	return e.cfg.MarkupOptions(e.log)
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func (e *env) parseFile(cmd *cobra.Command, path string, opts markup.Options) (*model.Node, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := markup.Parse(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// syncHeadingIDs brings every heading id in line with its text.
func syncHeadingIDs(doc *model.Node) (*model.Node, error) {
	tr := headingid.Sync(doc)
	if tr.Empty() {
		return doc, nil
	}
	res, err := transform.Apply(doc, tr)
	if err != nil {
		return nil, err
	}
	return res.Doc, nil
}
