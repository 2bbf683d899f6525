package fx

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes compiler diagnostics.
type ErrorKind uint8

const (
	// ErrIO indicates the source file could not be read.
	ErrIO ErrorKind = iota

	// ErrUnrecognizedChar indicates a character outside the FX alphabet.
	ErrUnrecognizedChar

	// ErrSyntax indicates an expected token was missing.
	ErrSyntax

	// ErrSemantic indicates a non-type token where a type is required.
	ErrSemantic

	// ErrOutputIO indicates an artifact file could not be written.
	ErrOutputIO

	// ErrResourceLimit indicates a transpiled body exceeded the configured size.
	ErrResourceLimit

	// ErrDuplicateStage indicates a shader defines more than one function
	// for the same stage while strict stage selection is enabled.
	ErrDuplicateStage

	// ErrNoShaders indicates the source defines no shaders.
	ErrNoShaders
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "IO"
	case ErrUnrecognizedChar:
		return "UnrecognizedChar"
	case ErrSyntax:
		return "Syntax"
	case ErrSemantic:
		return "Semantic"
	case ErrOutputIO:
		return "OutputIO"
	case ErrResourceLimit:
		return "ResourceLimit"
	case ErrDuplicateStage:
		return "DuplicateStage"
	case ErrNoShaders:
		return "NoShaders"
	default:
		return "Unknown"
	}
}

// Error is a compiler diagnostic.
type Error struct {
	Kind    ErrorKind
	Message string

	// Pos is the zero Position when the error has no source location.
	Pos Position

	// Source is the original source text, used for context display.
	Source string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *Error) FormatWithContext() string {
	if e.Source == "" || e.Pos.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	lineNum := e.Pos.Line
	if lineNum > len(lines) {
		return e.Error()
	}

	line := strings.TrimRight(lines[lineNum-1], "\r")
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error[%s]: %s\n", e.Kind, e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}

// NewError creates a diagnostic without source location.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewErrorf creates a diagnostic without source location from a format.
func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrorList is a list of diagnostics reported by one parse.
type ErrorList []*Error

// Error implements the error interface.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// FormatAll returns all errors formatted with context.
func (el ErrorList) FormatAll() string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.FormatWithContext())
	}
	return sb.String()
}

// Add adds an error to the list.
func (el *ErrorList) Add(err *Error) {
	*el = append(*el, err)
}

// HasErrors returns true if there are any errors.
func (el ErrorList) HasErrors() bool {
	return len(el) > 0
}
