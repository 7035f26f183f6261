package main

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/pthm/hxslot/lib/scan"
)

func newLintCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "lint [packages]",
		Short: "Check hxslot.New declarations in Go packages",
		Long: `lint parses Go packages and checks every hxslot.New declaration:
slot names must be unique plain identifiers, and chained WithDefault and
WithProps calls must name declared slots.`,
		Example: `  hxslot lint ./...
  hxslot lint --list ./components/card`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./..."}
			}

			decls, err := scan.New().Scan(args...)
			if err != nil {
				return err
			}
			if list {
				return writeYAML(cmd.OutOrStdout(), decls)
			}

			// Colors only reach terminals; pipes and buffers get plain text.
			out := termenv.NewOutput(cmd.OutOrStdout())
			problems := 0
			for _, d := range decls {
				for _, p := range d.Problems {
					pos := out.String(fmt.Sprintf("%s:%d:", d.File, d.Line)).Faint()
					name := out.String(d.Component).Bold()
					fmt.Fprintf(out, "%s %s: %s\n", pos, name, out.String(p).Foreground(out.Color("1")))
					problems++
				}
			}
			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Print every declaration as YAML instead of checking")
	return cmd
}
