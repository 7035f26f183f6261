package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/hxslot"
	"github.com/pthm/hxslot/lib/attrs"
	"github.com/pthm/hxslot/lib/classes"
)

type resolved struct {
	Renderable string     `yaml:"renderable"`
	Props      *attrs.Map `yaml:"props"`
	HTML       string     `yaml:"html,omitempty"`
}

func newResolveCmd() *cobra.Command {
	var (
		theme  string
		slot   string
		class  string
		tag    string
		dedupe bool
		html   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a slot's renderable and props against a theme",
		Example: `  hxslot resolve --theme card.yaml --slot header --class card-header
  hxslot resolve --theme card.yaml --slot footer --tag footer --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slotProps, err := hxslot.LoadThemeFile(theme)
			if err != nil {
				return err
			}

			def := hxslot.None
			if tag != "" {
				if !hxslot.ValidTagName(tag) {
					return fmt.Errorf("invalid tag name %q", tag)
				}
				def = hxslot.Tag(tag)
			}
			p := hxslot.Params{
				Default:   def,
				ClassName: class,
				Props:     hxslot.OwnerProps{SlotProps: slotProps},
			}
			if dedupe {
				p.MergeClass = classes.Dedupe
			}

			r, props := hxslot.Resolve(slot, p)
			out := resolved{Renderable: r.String(), Props: props}
			if html {
				result, err := hxslot.TestRender(r.Instantiate(props))
				if err != nil {
					return err
				}
				out.HTML = result.HTML
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "YAML file mapping slot names to props")
	cmd.Flags().StringVar(&slot, "slot", "", "Slot name to resolve")
	cmd.Flags().StringVar(&class, "class", "", "Author class for the slot")
	cmd.Flags().StringVar(&tag, "tag", "div", "Default element for the slot; empty renders children only")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Drop repeated class names")
	cmd.Flags().BoolVar(&html, "html", false, "Also render the resolved element")
	_ = cmd.MarkFlagRequired("theme")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}
