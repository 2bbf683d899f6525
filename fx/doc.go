// Package fx provides FX shader source parsing.
//
// FX is a small shader-authoring language that describes vertex and
// fragment stages together with their uniforms and vertex inputs. A file
// may mix two surface grammars.
//
// # Legacy grammar
//
// A shader block names the shader and holds its declarations. Function
// bodies are kept as verbatim source text:
//
//	shader Basic {
//	    uniform float intensity;
//	    input vec3 pos;
//	    void vertex() { gl_Position = vec4(pos, 1.0); }
//	    void fragment(out vec4 color) { }
//	}
//
// # Standalone grammar
//
// Top-level uniform and input declarations are copied into every
// standalone shader that follows them. Bodies are re-emitted token by
// token by the body transpiler:
//
//	uniform mat4 mvp;
//	input vec3 pos;
//	vertex_shader(vec3 pos : POSITION) {
//	    out vec3 v_position;
//	    v_position = pos;
//	}
//
// # Usage
//
//	file, err := fx.Parse(source)
//	if err != nil {
//	    var list fx.ErrorList
//	    if errors.As(err, &list) {
//	        fmt.Println(list.FormatAll())
//	    }
//	    return err
//	}
//	for _, shader := range file.Shaders {
//	    sel := shader.SelectStages()
//	    ...
//	}
//
// # Diagnostics
//
// Missing tokens inside a legacy shader block are recoverable: the parser
// records them and resumes at the next shader. Errors on the standalone
// path stop the parse. Characters outside the FX alphabet are reported as
// ErrUnrecognizedChar except inside legacy bodies, which are not
// interpreted.
package fx
