package glsl

import (
	"fmt"
	"testing"

	"github.com/gogpu/fxc/fx"
)

// benchShader builds a shader with n uniforms and n inputs.
func benchShader(n int) *fx.ShaderDef {
	s := &fx.ShaderDef{Name: "Bench"}
	for i := 0; i < n; i++ {
		s.Uniforms = append(s.Uniforms, fx.UniformDecl{Type: "vec4", Name: fmt.Sprintf("u%d", i)})
		s.Inputs = append(s.Inputs, fx.InputDecl{Type: "vec3", Name: fmt.Sprintf("a%d", i)})
	}
	s.Functions = []*fx.FunctionDecl{
		{Stage: fx.StageVertex, Body: "gl_Position = vec4(a0, 1.0);\n"},
		{Stage: fx.StageFragment, Body: "fragColor = u0;\n"},
	}
	return s
}

func BenchmarkCompile(b *testing.B) {
	for _, n := range []int{1, 16, 128} {
		shader := benchShader(n)
		b.Run(fmt.Sprintf("decls=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Compile(shader, DefaultOptions()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
