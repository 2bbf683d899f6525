package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/gogpu/fxc/fx"
)

// diagPrinter writes diagnostics, styled when the target is a terminal.
type diagPrinter struct {
	w      io.Writer
	styled bool

	label    lipgloss.Style
	location lipgloss.Style
}

func newDiagPrinter(w io.Writer) *diagPrinter {
	d := &diagPrinter{w: w}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r := lipgloss.NewRenderer(f)
		d.styled = true
		d.label = r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
		d.location = r.NewStyle().Foreground(lipgloss.Color("12"))
	}
	return d
}

// print reports err. Compiler diagnostics are shown one by one with
// source context.
func (d *diagPrinter) print(err error) {
	var list fx.ErrorList
	var single *fx.Error
	switch {
	case errors.As(err, &list):
		for _, e := range list {
			d.printError(e)
		}
	case errors.As(err, &single):
		d.printError(single)
	default:
		fmt.Fprintf(d.w, "%s %v\n", d.paint(d.label, "error:"), err)
	}
}

func (d *diagPrinter) printError(e *fx.Error) {
	text := e.FormatWithContext()
	header := fmt.Sprintf("error[%s]:", e.Kind)
	if !strings.HasPrefix(text, header) {
		fmt.Fprintf(d.w, "%s %s\n", d.paint(d.label, "error:"), text)
		return
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	lines[0] = d.paint(d.label, header) + strings.TrimPrefix(lines[0], header)
	if len(lines) > 1 && strings.HasPrefix(lines[1], "  -->") {
		lines[1] = d.paint(d.location, lines[1])
	}
	fmt.Fprintln(d.w, strings.Join(lines, "\n"))
}

func (d *diagPrinter) paint(style lipgloss.Style, s string) string {
	if !d.styled {
		return s
	}
	return style.Render(s)
}
