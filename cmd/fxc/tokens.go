package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/fxc/fx"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <input.fx>",
		Short: "Print the token stream of an FX file",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTokens,
	}
}

func (a *app) runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	illegal := 0
	for _, tok := range fx.NewLexer(source).Tokenize() {
		fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
		if tok.Kind == fx.TokenIllegal {
			illegal++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if illegal > 0 {
		return fx.NewErrorf(fx.ErrUnrecognizedChar, "%d unrecognized characters in %s", illegal, args[0])
	}
	return nil
}

// readSource reads an input file, reporting failure as an IO diagnostic.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fx.NewErrorf(fx.ErrIO, "cannot read %s: %v", path, err)
	}
	return string(data), nil
}
