package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/hxslot"
	"github.com/pthm/hxslot/internal/logging"
)

func newRootCmd() *cobra.Command {
	var dev bool

	root := &cobra.Command{
		Use:   "hxslot",
		Short: "Inspect slot resolution for templ components",
		Long: `hxslot joins class lists, deep-merges attribute files and resolves
slots against YAML themes the same way components do at render time.
It also checks component declarations in Go source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dev {
				hxslot.SetMode(hxslot.Development)
				hxslot.SetLogger(logging.NewWriter(cmd.ErrOrStderr(), slog.LevelWarn))
			}
		},
	}
	root.PersistentFlags().BoolVar(&dev, "dev", false, "Log development advisories to stderr")

	root.AddCommand(
		newClassesCmd(),
		newMergeCmd(),
		newResolveCmd(),
		newLintCmd(),
		newPreviewCmd(),
		newVersionCmd(),
	)
	return root
}
