package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxslot/lib/attrs"
	"github.com/pthm/hxslot/lib/merge"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge FILE...",
		Short: "Deep-merge YAML attribute files, later files winning",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]*attrs.Map, 0, len(args))
			for _, path := range args {
				m, err := readAttrs(path)
				if err != nil {
					return err
				}
				sources = append(sources, m)
			}
			return writeYAML(cmd.OutOrStdout(), merge.Props(sources...))
		},
	}
}

// readAttrs loads one YAML mapping. An empty file is an empty map.
func readAttrs(path string) (*attrs.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := attrs.New()
	if err := yaml.NewDecoder(f).Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
