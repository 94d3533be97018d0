// Command inkwell works with note files from the shell.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Rich-text note tools",
		Long:          `inkwell formats, searches and packs note files stored as HTML.`,
		Version:       inkwell.Describe(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().String("config", "", "path to inkwell.toml (default: nearest one above the working directory)")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(
		newFmtCmd(),
		newSlugCmd(),
		newRelpathCmd(),
		newTocCmd(),
		newSearchCmd(),
		newPackCmd(),
		newUnpackCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		_, _ = os.Stderr.WriteString("inkwell: " + err.Error() + "\n")
		os.Exit(1)
	}
}
