// Package fxc provides a Pure Go compiler for the FX shader language.
//
// fxc compiles FX source into GLSL stage sources plus a reflection metadata
// file per shader:
//   - P_S.vert.glsl: vertex stage, if the shader defines one
//   - P_S.frag.glsl: fragment stage, if the shader defines one
//   - P_S.meta: uniforms and vertex inputs in declaration order
//
// where P is the input path and S the shader name.
//
// The package provides a simple, high-level API as well as access to the
// individual stages.
//
// Example usage:
//
//	source := `
//	shader Basic {
//	    uniform float intensity;
//	    input vec3 pos;
//	    void vertex() { gl_Position = vec4(pos, 1.0); }
//	    void fragment() { }
//	}
//	`
//	shaders, err := fxc.Compile(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(shaders[0].Sources.Vertex)
//
// To write artifact files with all-or-nothing semantics, use CompileFile.
package fxc

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/fxc/artifact"
	"github.com/gogpu/fxc/config"
	"github.com/gogpu/fxc/fx"
	"github.com/gogpu/fxc/glsl"
	"github.com/gogpu/fxc/meta"
)

// CompileOptions configures shader compilation.
type CompileOptions struct {
	// GLSL configures stage source generation.
	GLSL glsl.Options

	// Meta configures metadata generation.
	Meta meta.Options

	// MaxBodyBytes caps transpiled standalone bodies (0 = unlimited).
	MaxBodyBytes int

	// OutputDir places artifacts in a directory instead of next to the input.
	OutputDir string

	// Logger receives progress and warnings. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options that reproduce the fixed FX output format.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		GLSL: glsl.DefaultOptions(),
	}
}

// OptionsFromConfig converts a loaded configuration into compile options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) (CompileOptions, error) {
	version, err := cfg.LangVersion()
	if err != nil {
		return CompileOptions{}, err
	}
	return CompileOptions{
		GLSL: glsl.Options{
			LangVersion:  version,
			StrictStages: cfg.Compiler.StrictStages,
			Logger:       logger,
		},
		Meta:         meta.Options{EmitCounts: cfg.Meta.EmitCounts},
		MaxBodyBytes: cfg.Compiler.MaxBodyBytes,
		OutputDir:    cfg.Output.Dir,
		Logger:       logger,
	}, nil
}

func (o *CompileOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Shader holds the generated output of one shader definition.
type Shader struct {
	Def     *fx.ShaderDef
	Sources glsl.Sources
	Meta    []byte
}

// Compile compiles FX source using default options.
func Compile(source string) ([]Shader, error) {
	return CompileWithOptions(source, DefaultOptions())
}

// CompileWithOptions compiles FX source with custom options.
//
// The compilation pipeline is:
//  1. Parse FX source to AST (bodies are transpiled here)
//  2. Generate GLSL stages and metadata for every shader
func CompileWithOptions(source string, opts CompileOptions) ([]Shader, error) {
	file, err := Parse(source, opts)
	if err != nil {
		return nil, err
	}
	if len(file.Shaders) == 0 {
		return nil, fx.NewError(fx.ErrNoShaders, "no shaders found")
	}
	return Generate(file, opts)
}

// Parse parses FX source code to AST.
//
// On failure the error is an fx.ErrorList holding every diagnostic.
func Parse(source string, opts CompileOptions) (*fx.File, error) {
	parser := fx.NewParser(source, fx.Options{
		MaxBodyBytes: opts.MaxBodyBytes,
		Logger:       opts.Logger,
	})
	file, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// Generate produces stage sources and metadata for every shader in file,
// in declaration order.
func Generate(file *fx.File, opts CompileOptions) ([]Shader, error) {
	logger := opts.logger()
	glslOpts := opts.GLSL
	if glslOpts.Logger == nil {
		glslOpts.Logger = logger
	}

	seen := make(map[string]bool, len(file.Shaders))
	shaders := make([]Shader, 0, len(file.Shaders))
	for _, def := range file.Shaders {
		if seen[def.Name] {
			logger.Warn("duplicate shader name, later artifacts replace earlier ones", "shader", def.Name)
		}
		seen[def.Name] = true

		logger.Debug("generating shader", "shader", def.String())
		sources, err := glsl.Compile(def, glslOpts)
		if err != nil {
			return nil, fmt.Errorf("shader %q: %w", def.Name, err)
		}
		shaders = append(shaders, Shader{
			Def:     def,
			Sources: sources,
			Meta:    meta.Generate(def, opts.Meta),
		})
	}
	return shaders, nil
}

// Files lays out the artifact files for shaders compiled from input.
// Each shader contributes its vertex and fragment stages, when present,
// followed by its metadata file.
func Files(input, outDir string, shaders []Shader) []artifact.File {
	files := make([]artifact.File, 0, 3*len(shaders))
	for _, s := range shaders {
		prefix := artifact.Prefix(input, outDir, s.Def.Name)
		if s.Sources.HasVertex {
			files = append(files, artifact.File{Path: prefix + artifact.VertexExt, Data: []byte(s.Sources.Vertex)})
		}
		if s.Sources.HasFragment {
			files = append(files, artifact.File{Path: prefix + artifact.FragmentExt, Data: []byte(s.Sources.Fragment)})
		}
		files = append(files, artifact.File{Path: prefix + artifact.MetaExt, Data: s.Meta})
	}
	return files
}

// CompileFile compiles the FX file at path and writes its artifacts.
// Either every artifact is written or none is. It returns the written
// paths in generation order.
func CompileFile(path string, opts CompileOptions) ([]string, error) {
	logger := opts.logger()
	logger.Info("compiling", "input", path)

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fx.NewErrorf(fx.ErrIO, "cannot read %s: %v", path, unwrapPath(err))
	}

	shaders, err := CompileWithOptions(string(source), opts)
	if err != nil {
		return nil, err
	}

	files := Files(path, opts.OutputDir, shaders)
	if err := artifact.Commit(files); err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
		logger.Info("generated", "path", f.Path)
	}
	logger.Info("compilation completed", "input", path, "shaders", len(shaders), "files", len(files))
	return paths, nil
}

func unwrapPath(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
