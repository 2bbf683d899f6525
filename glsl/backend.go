// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gogpu/fxc/fx"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	// Desktop OpenGL versions
	Version330 = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version400 = Version{Major: 4, Minor: 0, ES: false}  // OpenGL 4.0
	Version410 = Version{Major: 4, Minor: 10, ES: false} // OpenGL 4.1
	Version420 = Version{Major: 4, Minor: 20, ES: false} // OpenGL 4.2
	Version430 = Version{Major: 4, Minor: 30, ES: false} // OpenGL 4.3
	Version450 = Version{Major: 4, Minor: 50, ES: false} // OpenGL 4.5
	Version460 = Version{Major: 4, Minor: 60, ES: false} // OpenGL 4.6

	// OpenGL ES / WebGL versions
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}  // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true} // ES 3.1
	VersionES320 = Version{Major: 3, Minor: 20, ES: true} // ES 3.2
)

var knownVersions = []Version{
	Version330, Version400, Version410, Version420, Version430, Version450, Version460,
	VersionES300, VersionES310, VersionES320,
}

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// ParseVersion parses a version directive value such as "330 core",
// "300 es" or a bare "450". A bare number selects the desktop profile.
func ParseVersion(s string) (Version, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Version{}, fmt.Errorf("glsl: invalid version %q", s)
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return Version{}, fmt.Errorf("glsl: invalid version %q: %w", s, err)
	}

	es := false
	if len(fields) == 2 {
		switch fields[1] {
		case "core":
		case "es":
			es = true
		default:
			return Version{}, fmt.Errorf("glsl: unknown profile %q in version %q", fields[1], s)
		}
	}

	for _, v := range knownVersions {
		if v.ES == es && int(v.Major)*100+int(v.Minor) == number {
			return v, nil
		}
	}
	return Version{}, fmt.Errorf("glsl: unsupported version %q", s)
}

// Options configures GLSL code generation.
type Options struct {
	// LangVersion is the target GLSL version.
	// Defaults to Version330 if zero.
	LangVersion Version

	// StrictStages rejects a shader that defines more than one function for
	// the same stage. When false the last definition wins and a warning is
	// logged.
	StrictStages bool

	// Logger receives warnings. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the options matching the fixed FX output format.
func DefaultOptions() Options {
	return Options{
		LangVersion: Version330,
	}
}

// Sources holds the generated stage sources for one shader.
// A stage without a selected function has an empty source.
type Sources struct {
	Vertex   string
	Fragment string

	HasVertex   bool
	HasFragment bool
}

// Compile generates GLSL stage sources for one shader definition.
func Compile(shader *fx.ShaderDef, options Options) (Sources, error) {
	// Apply defaults for zero values
	if options.LangVersion.Major == 0 {
		options.LangVersion = Version330
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sel := shader.SelectStages()
	if len(sel.Shadowed) > 0 {
		if options.StrictStages {
			return Sources{}, fmt.Errorf("glsl: %w", duplicateStage(shader))
		}
		for _, fn := range sel.Shadowed {
			logger.Warn("duplicate stage function, last definition wins",
				"shader", shader.Name, "stage", fn.Stage.String(), "line", fn.Pos.Line)
		}
	}
	warnReserved(logger, shader)

	w := newWriter(shader, &options)
	var src Sources
	if sel.Vertex != nil {
		src.Vertex = w.vertex(sel.Vertex)
		src.HasVertex = true
	}
	if sel.Fragment != nil {
		src.Fragment = w.fragment(sel.Fragment)
		src.HasFragment = true
	}
	return src, nil
}

// duplicateStage reports the second function declared for an
// already-defined stage.
func duplicateStage(shader *fx.ShaderDef) *fx.Error {
	seen := make(map[fx.Stage]bool)
	for _, fn := range shader.Functions {
		if fn.Stage == fx.StageOther {
			continue
		}
		if seen[fn.Stage] {
			return &fx.Error{
				Kind:    fx.ErrDuplicateStage,
				Message: fmt.Sprintf("shader %q defines more than one %s function", shader.Name, fn.Stage),
				Pos:     fn.Pos,
			}
		}
		seen[fn.Stage] = true
	}
	return fx.NewErrorf(fx.ErrDuplicateStage, "shader %q defines a stage twice", shader.Name)
}

// warnReserved logs declarations whose names GLSL reserves. Names are
// emitted unchanged because the metadata file refers to them verbatim.
func warnReserved(logger *slog.Logger, shader *fx.ShaderDef) {
	for _, u := range shader.Uniforms {
		if isReserved(u.Name) {
			logger.Warn("uniform name is reserved in GLSL", "shader", shader.Name, "name", u.Name)
		}
	}
	for _, in := range shader.Inputs {
		if isReserved(in.Name) {
			logger.Warn("input name is reserved in GLSL", "shader", shader.Name, "name", in.Name)
		}
	}
}
