// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/fxc/fx"
)

// Varyings the fragment stage reads. The vertex body is expected to write
// them; nothing checks that it does.
var fragmentVaryings = []struct{ typ, name string }{
	{"vec3", "v_normal"},
	{"vec3", "v_position"},
	{"vec2", "v_texCoord"},
}

// fragmentOutput is the fixed fragment color output.
const fragmentOutput = "fragColor"

// writer generates GLSL stage sources for one shader.
type writer struct {
	shader  *fx.ShaderDef
	options *Options

	// Output buffer, reset per stage
	out strings.Builder
}

// newWriter creates a new GLSL writer.
func newWriter(shader *fx.ShaderDef, options *Options) *writer {
	return &writer{
		shader:  shader,
		options: options,
	}
}

// vertex generates the vertex stage around fn's body.
func (w *writer) vertex(fn *fx.FunctionDecl) string {
	w.out.Reset()
	w.writeHeader()
	w.writeUniforms()
	w.writeVertexInputs()
	w.writeMain(fn)
	return w.out.String()
}

// fragment generates the fragment stage around fn's body.
func (w *writer) fragment(fn *fx.FunctionDecl) string {
	w.out.Reset()
	w.writeHeader()
	w.writeUniforms()
	w.writeVaryings()
	w.writeLine("out vec4 %s;", fragmentOutput)
	w.writeLine("")
	w.writeMain(fn)
	return w.out.String()
}

// writeHeader writes the #version directive and default precision.
func (w *writer) writeHeader() {
	w.writeLine("#version %s", w.options.LangVersion.String())
	w.writeLine("precision highp float;")
	w.writeLine("")
}

// writeUniforms writes uniforms in declaration order.
func (w *writer) writeUniforms() {
	for _, u := range w.shader.Uniforms {
		w.writeLine("uniform %s %s;", u.Type, u.Name)
	}
	if len(w.shader.Uniforms) > 0 {
		w.writeLine("")
	}
}

// writeVertexInputs writes vertex attributes. Locations follow
// declaration order starting at 0.
func (w *writer) writeVertexInputs() {
	for location, in := range w.shader.Inputs {
		w.writeLine("layout(location = %d) in %s %s;", location, in.Type, in.Name)
	}
	if len(w.shader.Inputs) > 0 {
		w.writeLine("")
	}
}

func (w *writer) writeVaryings() {
	for _, v := range fragmentVaryings {
		w.writeLine("in %s %s;", v.typ, v.name)
	}
	w.writeLine("")
}

// writeMain wraps the function body, inlined unmodified, in main().
func (w *writer) writeMain(fn *fx.FunctionDecl) {
	w.writeLine("void main() {")
	w.out.WriteString(fn.Body)
	w.writeLine("}")
}

// writeLine writes a formatted line.
func (w *writer) writeLine(format string, args ...any) {
	if len(args) > 0 {
		fmt.Fprintf(&w.out, format, args...)
	} else {
		w.out.WriteString(format)
	}
	w.out.WriteByte('\n')
}
