package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/hxslot/lib/classes"
)

func newClassesCmd() *cobra.Command {
	var dedupe bool

	cmd := &cobra.Command{
		Use:   "classes [fragment...]",
		Short: "Join class fragments into a class attribute",
		Example: `  hxslot classes btn "btn-primary active"
  hxslot classes --dedupe "p-4 m-2" "p-4"`,
		Run: func(cmd *cobra.Command, args []string) {
			inputs := make([]any, len(args))
			for i, a := range args {
				inputs[i] = a
			}
			class := classes.Join(inputs...)
			if dedupe {
				class = classes.Dedupe(class)
			}
			fmt.Fprintln(cmd.OutOrStdout(), class)
		},
	}
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Drop repeated class names, keeping the first")
	return cmd
}
