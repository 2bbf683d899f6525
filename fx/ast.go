package fx

import (
	"fmt"
	"slices"
)

// File is the result of parsing one FX source file.
type File struct {
	Shaders []*ShaderDef `json:"shaders" yaml:"shaders"`
}

// Stage identifies the pipeline stage a function targets.
type Stage uint8

const (
	// StageOther marks a legacy function whose name is neither
	// "vertex" nor "fragment". Such functions are never emitted.
	StageOther Stage = iota
	StageVertex
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Grammar identifies which surface syntax produced a shader.
type Grammar uint8

const (
	// GrammarLegacy is the `shader NAME { ... }` block syntax.
	GrammarLegacy Grammar = iota
	// GrammarStandalone is the `vertex_shader` / `fragment_shader` syntax.
	GrammarStandalone
)

// String returns the grammar name.
func (g Grammar) String() string {
	if g == GrammarStandalone {
		return "standalone"
	}
	return "legacy"
}

// MarshalText implements encoding.TextMarshaler.
func (g Grammar) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// BodyKind tells how a function body was captured.
type BodyKind uint8

const (
	// BodyRaw is a verbatim span of source text.
	BodyRaw BodyKind = iota
	// BodyTranspiled is the output of the body transpiler.
	BodyTranspiled
)

// String returns the body kind name.
func (k BodyKind) String() string {
	if k == BodyTranspiled {
		return "transpiled"
	}
	return "raw"
}

// MarshalText implements encoding.TextMarshaler.
func (k BodyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UniformDecl is a `uniform TYPE NAME;` declaration.
type UniformDecl struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// InputDecl is an `input TYPE NAME;` declaration.
type InputDecl struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// OutputBinding is the `out TYPE NAME` parameter of a legacy fragment().
type OutputBinding struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Param is a standalone shader parameter. Parameters are kept for
// inspection only and never reach code generation.
type Param struct {
	Type     string `json:"type" yaml:"type"`
	Name     string `json:"name" yaml:"name"`
	Semantic string `json:"semantic,omitempty" yaml:"semantic,omitempty"`
}

// FunctionDecl is a shader entry function.
type FunctionDecl struct {
	Name     string         `json:"name" yaml:"name"`
	Stage    Stage          `json:"stage" yaml:"stage"`
	Output   *OutputBinding `json:"output,omitempty" yaml:"output,omitempty"`
	Params   []Param        `json:"params,omitempty" yaml:"params,omitempty"`
	Body     string         `json:"body" yaml:"body"`
	BodyKind BodyKind       `json:"body_kind" yaml:"body_kind"`
	Pos      Position       `json:"pos" yaml:"pos"`
}

// ShaderDef is one shader definition. Declaration order is significant:
// it drives emission order and attribute location numbering.
type ShaderDef struct {
	Name      string          `json:"name" yaml:"name"`
	Grammar   Grammar         `json:"grammar" yaml:"grammar"`
	Uniforms  []UniformDecl   `json:"uniforms" yaml:"uniforms"`
	Inputs    []InputDecl     `json:"inputs" yaml:"inputs"`
	Functions []*FunctionDecl `json:"functions" yaml:"functions"`
	Pos       Position        `json:"pos" yaml:"pos"`
}

// StageSelection is the vertex/fragment pair chosen for code generation.
type StageSelection struct {
	Vertex   *FunctionDecl
	Fragment *FunctionDecl

	// Shadowed lists functions that lost to a later function of the
	// same stage, in declaration order.
	Shadowed []*FunctionDecl
}

// SelectStages scans the function list in order. Every vertex or fragment
// function overwrites the previous choice for its stage, so the last one
// wins.
func (s *ShaderDef) SelectStages() StageSelection {
	var sel StageSelection
	for _, fn := range s.Functions {
		switch fn.Stage {
		case StageVertex:
			if sel.Vertex != nil {
				sel.Shadowed = append(sel.Shadowed, sel.Vertex)
			}
			sel.Vertex = fn
		case StageFragment:
			if sel.Fragment != nil {
				sel.Shadowed = append(sel.Shadowed, sel.Fragment)
			}
			sel.Fragment = fn
		}
	}
	return sel
}

// String returns a short description used in logs.
func (s *ShaderDef) String() string {
	return fmt.Sprintf("%s shader %q (%d uniforms, %d inputs, %d functions)",
		s.Grammar, s.Name, len(s.Uniforms), len(s.Inputs), len(s.Functions))
}

// pendingDecls accumulates top-level declarations for standalone shaders.
type pendingDecls struct {
	uniforms []UniformDecl
	inputs   []InputDecl
}

// snapshot returns value copies of everything accumulated so far.
func (p *pendingDecls) snapshot() ([]UniformDecl, []InputDecl) {
	return slices.Clone(p.uniforms), slices.Clone(p.inputs)
}
