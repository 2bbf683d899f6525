// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package meta writes and reads the reflection metadata that accompanies
// the generated GLSL stages.
//
// The format is line oriented with whitespace separated fields:
//
//	shader Basic
//	uniforms 0
//	uniform float intensity
//	inputs 0
//	input vec3 pos
//
// Runtime loaders read the uniform and input lines to resolve locations
// after linking, so the layout must stay byte-stable.
package meta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/fxc/fx"
)

// Options configures metadata generation.
type Options struct {
	// EmitCounts writes the real number of uniforms and inputs on the
	// count lines. When false both lines carry 0, which is what existing
	// loaders expect.
	EmitCounts bool
}

// Generate returns the metadata file content for shader.
func Generate(shader *fx.ShaderDef, options Options) []byte {
	var buf bytes.Buffer
	uniforms, inputs := 0, 0
	if options.EmitCounts {
		uniforms, inputs = len(shader.Uniforms), len(shader.Inputs)
	}

	fmt.Fprintf(&buf, "shader %s\n", shader.Name)
	fmt.Fprintf(&buf, "uniforms %d\n", uniforms)
	for _, u := range shader.Uniforms {
		fmt.Fprintf(&buf, "uniform %s %s\n", u.Type, u.Name)
	}
	fmt.Fprintf(&buf, "inputs %d\n", inputs)
	for _, in := range shader.Inputs {
		fmt.Fprintf(&buf, "input %s %s\n", in.Type, in.Name)
	}
	return buf.Bytes()
}

// Entry is one uniform or input line.
type Entry struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Metadata is the parsed content of a metadata file.
type Metadata struct {
	Shader       string  `json:"shader" yaml:"shader"`
	UniformCount int     `json:"uniform_count" yaml:"uniform_count"`
	InputCount   int     `json:"input_count" yaml:"input_count"`
	Uniforms     []Entry `json:"uniforms" yaml:"uniforms"`
	Inputs       []Entry `json:"inputs" yaml:"inputs"`
}

// AttributeLocation returns the vertex attribute location of the named
// input. Locations follow input order.
func (m *Metadata) AttributeLocation(name string) (int, bool) {
	for i, in := range m.Inputs {
		if in.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Parse reads a metadata file. Blank and unknown lines are skipped; extra
// fields after the name are ignored. A uniform or input line without both
// a type and a name is an error.
func Parse(r io.Reader) (*Metadata, error) {
	m := &Metadata{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "shader":
			if len(fields) < 2 {
				return nil, fmt.Errorf("meta: line %d: shader line without a name", lineNum)
			}
			m.Shader = fields[1]
		case "uniforms", "inputs":
			if len(fields) < 2 {
				return nil, fmt.Errorf("meta: line %d: %s line without a count", lineNum, fields[0])
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("meta: line %d: invalid %s count: %w", lineNum, fields[0], err)
			}
			if fields[0] == "uniforms" {
				m.UniformCount = n
			} else {
				m.InputCount = n
			}
		case "uniform", "input":
			if len(fields) < 3 {
				return nil, fmt.Errorf("meta: line %d: expected '%s TYPE NAME'", lineNum, fields[0])
			}
			e := Entry{Type: fields[1], Name: fields[2]}
			if fields[0] == "uniform" {
				m.Uniforms = append(m.Uniforms, e)
			} else {
				m.Inputs = append(m.Inputs, e)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}
	return m, nil
}
