package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/fxc/fx"
	"github.com/gogpu/fxc/meta"
)

func (a *app) inspectCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect <file.meta>",
		Short: "Show the reflection data a runtime loader reads from a metadata file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fx.NewErrorf(fx.ErrIO, "cannot read %s: %v", args[0], err)
			}
			defer f.Close()

			m, err := meta.Parse(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if format == "text" {
				a.printMetadata(m)
				return nil
			}
			return encode(a.stdout, format, m)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}

func (a *app) printMetadata(m *meta.Metadata) {
	w := a.stdout
	fmt.Fprintf(w, "shader %s\n", m.Shader)
	fmt.Fprintf(w, "uniforms (%d):\n", len(m.Uniforms))
	for _, u := range m.Uniforms {
		fmt.Fprintf(w, "  %-12s %s\n", u.Type, u.Name)
	}
	fmt.Fprintf(w, "inputs (%d):\n", len(m.Inputs))
	for _, in := range m.Inputs {
		loc, _ := m.AttributeLocation(in.Name)
		fmt.Fprintf(w, "  location %-3d %-12s %s\n", loc, in.Type, in.Name)
	}
}
