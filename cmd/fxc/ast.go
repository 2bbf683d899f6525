package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/fxc"
)

func (a *app) astCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast <input.fx>",
		Short: "Print the parsed shaders of an FX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := a.compileOptions(cmd, args[0])
			if err != nil {
				return err
			}
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			file, err := fxc.Parse(source, opts)
			if err != nil {
				return err
			}
			return encode(a.stdout, format, file)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml")
	return cmd
}

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
