// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/fxc/fx"
)

// =============================================================================
// Version Tests
// =============================================================================

func TestVersion_String(t *testing.T) {
	tests := []struct {
		version Version
		want    string
	}{
		{Version330, "330 core"},
		{Version400, "400 core"},
		{Version410, "410 core"},
		{Version450, "450 core"},
		{Version460, "460 core"},
		{VersionES300, "300 es"},
		{VersionES310, "310 es"},
		{VersionES320, "320 es"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.version.String()
			if got != tt.want {
				t.Errorf("Version.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"330 core", Version330, false},
		{"330", Version330, false},
		{"  450   core ", Version450, false},
		{"300 es", VersionES300, false},
		{"320 es", VersionES320, false},
		{"", Version{}, true},
		{"core", Version{}, true},
		{"330 compat", Version{}, true},
		{"330 es", Version{}, true},
		{"999 core", Version{}, true},
		{"330 core extra", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Compile Tests
// =============================================================================

func basicShader() *fx.ShaderDef {
	return &fx.ShaderDef{
		Name:     "Basic",
		Uniforms: []fx.UniformDecl{{Type: "float", Name: "intensity"}},
		Inputs:   []fx.InputDecl{{Type: "vec3", Name: "pos"}},
		Functions: []*fx.FunctionDecl{
			{Name: "vertex", Stage: fx.StageVertex, Body: "gl_Position = vec4(pos, 1.0); "},
			{Name: "fragment", Stage: fx.StageFragment},
		},
	}
}

func TestCompile_Vertex(t *testing.T) {
	src, err := Compile(basicShader(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !src.HasVertex {
		t.Fatal("expected vertex source")
	}

	want := "#version 330 core\n" +
		"precision highp float;\n" +
		"\n" +
		"uniform float intensity;\n" +
		"\n" +
		"layout(location = 0) in vec3 pos;\n" +
		"\n" +
		"void main() {\n" +
		"gl_Position = vec4(pos, 1.0); }\n"
	if src.Vertex != want {
		t.Errorf("vertex source:\n%s\nwant:\n%s", src.Vertex, want)
	}
}

func TestCompile_Fragment(t *testing.T) {
	src, err := Compile(basicShader(), DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !src.HasFragment {
		t.Fatal("expected fragment source")
	}

	want := "#version 330 core\n" +
		"precision highp float;\n" +
		"\n" +
		"uniform float intensity;\n" +
		"\n" +
		"in vec3 v_normal;\n" +
		"in vec3 v_position;\n" +
		"in vec2 v_texCoord;\n" +
		"\n" +
		"out vec4 fragColor;\n" +
		"\n" +
		"void main() {\n" +
		"}\n"
	if src.Fragment != want {
		t.Errorf("fragment source:\n%s\nwant:\n%s", src.Fragment, want)
	}
	if strings.Contains(src.Fragment, "layout(location") {
		t.Error("fragment source must not declare vertex attributes")
	}
}

func TestCompile_NoDeclarations(t *testing.T) {
	shader := &fx.ShaderDef{
		Name:      "Bare",
		Functions: []*fx.FunctionDecl{{Stage: fx.StageVertex, Body: "gl_Position = vec4(0.0);\n"}},
	}
	src, err := Compile(shader, Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	want := "#version 330 core\nprecision highp float;\n\nvoid main() {\ngl_Position = vec4(0.0);\n}\n"
	if src.Vertex != want {
		t.Errorf("got %q", src.Vertex)
	}
	if src.HasFragment || src.Fragment != "" {
		t.Error("unexpected fragment source")
	}
}

func TestCompile_AttributeLocations(t *testing.T) {
	shader := &fx.ShaderDef{
		Name: "Mesh",
		Uniforms: []fx.UniformDecl{
			{Type: "mat4", Name: "model"},
			{Type: "mat4", Name: "view"},
			{Type: "sampler2D", Name: "albedo"},
		},
		Inputs: []fx.InputDecl{
			{Type: "vec3", Name: "position"},
			{Type: "vec3", Name: "normal"},
			{Type: "vec2", Name: "uv"},
			{Type: "vec4", Name: "color"},
		},
		Functions: []*fx.FunctionDecl{{Stage: fx.StageVertex}},
	}
	src, err := Compile(shader, Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	wantLines := []string{
		"uniform mat4 model;",
		"uniform mat4 view;",
		"uniform sampler2D albedo;",
		"layout(location = 0) in vec3 position;",
		"layout(location = 1) in vec3 normal;",
		"layout(location = 2) in vec2 uv;",
		"layout(location = 3) in vec4 color;",
	}
	last := -1
	for _, line := range wantLines {
		idx := strings.Index(src.Vertex, line+"\n")
		if idx < 0 {
			t.Fatalf("missing %q in:\n%s", line, src.Vertex)
		}
		if idx < last {
			t.Errorf("%q is out of order", line)
		}
		last = idx
	}
}

func TestCompile_LangVersion(t *testing.T) {
	src, err := Compile(basicShader(), Options{LangVersion: VersionES300})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for _, s := range []string{src.Vertex, src.Fragment} {
		if !strings.HasPrefix(s, "#version 300 es\nprecision highp float;\n") {
			t.Errorf("unexpected header in:\n%s", s)
		}
	}
}

func TestCompile_StageSelection(t *testing.T) {
	shader := &fx.ShaderDef{
		Name: "Twice",
		Functions: []*fx.FunctionDecl{
			{Name: "vertex", Stage: fx.StageVertex, Body: "first();", Pos: fx.Position{Line: 2, Column: 5}},
			{Name: "helper", Stage: fx.StageOther, Body: "helper();"},
			{Name: "vertex", Stage: fx.StageVertex, Body: "second();", Pos: fx.Position{Line: 4, Column: 5}},
		},
	}

	t.Run("last match wins", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		src, err := Compile(shader, Options{Logger: logger})
		if err != nil {
			t.Fatalf("Compile failed: %v", err)
		}
		if !strings.Contains(src.Vertex, "second();") || strings.Contains(src.Vertex, "first();") {
			t.Errorf("expected the last vertex function, got:\n%s", src.Vertex)
		}
		if strings.Contains(src.Vertex, "helper();") {
			t.Error("functions of no stage must not be emitted")
		}
		if src.HasFragment {
			t.Error("unexpected fragment source")
		}
		if !strings.Contains(logs.String(), "duplicate stage function") {
			t.Errorf("expected a warning, got %q", logs.String())
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, err := Compile(shader, Options{StrictStages: true})
		var fxErr *fx.Error
		if !errors.As(err, &fxErr) {
			t.Fatalf("expected *fx.Error, got %v", err)
		}
		if fxErr.Kind != fx.ErrDuplicateStage || fxErr.Pos.Line != 4 {
			t.Errorf("unexpected error: %v", fxErr)
		}
	})
}

func TestCompile_ReservedNameWarning(t *testing.T) {
	shader := &fx.ShaderDef{
		Name:      "Reserved",
		Uniforms:  []fx.UniformDecl{{Type: "float", Name: "gl_Time"}},
		Inputs:    []fx.InputDecl{{Type: "vec3", Name: "sample_pos"}},
		Functions: []*fx.FunctionDecl{{Stage: fx.StageVertex}},
	}
	var logs bytes.Buffer
	src, err := Compile(shader, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(src.Vertex, "uniform float gl_Time;") {
		t.Error("reserved names must be emitted unchanged")
	}
	if strings.Count(logs.String(), "reserved in GLSL") != 1 {
		t.Errorf("expected exactly one warning, got %q", logs.String())
	}
}

func TestCompile_ParsedStandalone(t *testing.T) {
	file, err := fx.Parse("uniform mat4 mvp; vertex_shader(vec3 pos:POSITION){ out vec3 v_position; v_position = pos; }")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	src, err := Compile(file.Shaders[0], DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := "#version 330 core\n" +
		"precision highp float;\n" +
		"\n" +
		"uniform mat4 mvp;\n" +
		"\n" +
		"void main() {\n" +
		"out vec3 v_position;\n" +
		"v_position = pos;\n" +
		"    }\n"
	if src.Vertex != want {
		t.Errorf("vertex source:\n%q\nwant:\n%q", src.Vertex, want)
	}
}

func TestIsReserved(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"float", true},
		{"in", true},
		{"fragColor", true},
		{"gl_Position", true},
		{"intensity", false},
		{"pos", false},
		{"glow", false},
	}
	for _, tt := range tests {
		if got := isReserved(tt.name); got != tt.want {
			t.Errorf("isReserved(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
