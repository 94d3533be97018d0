// Package config loads inkwell.toml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/iw2rmb/inkwell/commands"
	"github.com/iw2rmb/inkwell/markup"
)

// FileName is the name Find looks for.
const FileName = "inkwell.toml"

// Config is the decoded form of inkwell.toml.
type Config struct {
	Editor EditorConfig        `toml:"editor"`
	Markup MarkupConfig        `toml:"markup"`
	Keys   map[string][]string `toml:"keys"`
	Log    LogConfig           `toml:"log"`
}

type EditorConfig struct {
	// HistoryLimit caps undo depth. Zero means the engine default; a
	// negative value disables history.
	HistoryLimit int  `toml:"history_limit"`
	HeadingIDs   bool `toml:"heading_ids"`
}

type MarkupConfig struct {
	Sanitize bool `toml:"sanitize"`
	Minify   bool `toml:"minify"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Editor: EditorConfig{HeadingIDs: true},
		Markup: MarkupConfig{Sanitize: true},
		Log:    LogConfig{Level: "info"},
	}
}

// Load decodes path over Default. Keys the schema does not know are an
// error, as are unknown key actions and log levels.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir looking for inkwell.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads the nearest inkwell.toml above startDir, or returns Default
// when there is none.
func Resolve(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks values that decoding alone cannot.
func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level. An empty level is info.
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return l, nil
}

// KeyMap applies the [keys] overrides to the default bindings.
func (c Config) KeyMap() (commands.KeyMap, error) {
	return commands.BindingsFromConfig(c.Keys)
}

// MarkupOptions returns the codec options for this configuration.
func (c Config) MarkupOptions(log *slog.Logger) markup.Options {
	return markup.Options{
		Sanitize: c.Markup.Sanitize,
		Minify:   c.Markup.Minify,
		Logger:   log,
	}
}
