package fx

import "testing"

func transpile(t *testing.T, source string) string {
	t.Helper()
	file, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return file.Shaders[0].Functions[0].Body
}

func TestTranspileSpacing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"assignment", "x=y;", "x = y;\n    "},
		{"declaration", "float   x = 1.0;", "float x = 1.0;\n    "},
		{"call arguments", "vec4(pos,1.0)", "vec4(pos, 1.0)"},
		{"arithmetic", "a*b+c/d-e", "a * b + c / d - e"},
		{"compound assignment", "x += 1.0; y -= 2.0; z *= w; q /= 2.0;",
			"x += 1.0;\n    y -= 2.0;\n    z *= w;\n    q /= 2.0;\n    "},
		{"comparison", "a<b", "a < b"},
		{"equality", "a == b", "a == b"},
		{"inequality", "a <= b", "a <= b"},
		{"member access", "v . xyz", "v.xyz"},
		{"return", "return color;", "return color;\n    "},
		{"negation", "x = -y;", "x = - y;\n    "},
		{"logical", "a && b", "a&&b"},
		{"nested block", "if (a > b) { x = 1.0; }", "if(a > b){x = 1.0;\n    }"},
		{"not equal", "a != b", "a != b"},
		{"not equal in condition", "if (a != b) { x = 1.0; }", "if(a != b){x = 1.0;\n    }"},
		{"logical not", "x = !flag;", "x = !flag;\n    "},
		{"double not", "x = !!flag;", "x = !!flag;\n    "},
		{"not before paren", "if (!(a < b)) { }", "if(!(a < b)){}"},
		{"return number", "return 1.0;", "return 1.0;\n    "},
		{"greater equal", "a >= b", "a >= b"},
		{"else block", "if (a) { x = 1.0; } else { y = 2.0; }", "if(a){x = 1.0;\n    }else{y = 2.0;\n    }"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transpile(t, "vertex_shader() { "+tt.body+" }")
			if got != tt.want {
				t.Errorf("\nwant %q\ngot  %q", tt.want, got)
			}
		})
	}
}

func TestTranspileOutDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "vertex out",
			source: "vertex_shader(vec3 pos) { out vec3 v_position; v_position = pos; }",
			want:   "out vec3 v_position;\nv_position = pos;\n    ",
		},
		{
			name:   "vertex out with semantic",
			source: "vertex_shader() { out vec2 v_texCoord : TEXCOORD0; v_texCoord = uv; }",
			want:   "out vec2 v_texCoord;\nv_texCoord = uv;\n    ",
		},
		{
			name:   "vertex out mid-body",
			source: "vertex_shader() { gl_Position = p; out vec3 v_normal; v_normal = n; }",
			want:   "gl_Position = p;\n    out vec3 v_normal;\nv_normal = n;\n    ",
		},
		{
			name:   "fragment out dropped",
			source: "fragment_shader(vec3 n) { out vec4 color : SV_Target; color = vec4(n, 1.0); }",
			want:   "color = vec4(n, 1.0);\n    ",
		},
		{
			name:   "fragment out without semicolon",
			source: "fragment_shader() { out vec4 color fragColor = vec4(1.0); }",
			want:   "fragColor = vec4(1.0);\n    ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transpile(t, tt.source); got != tt.want {
				t.Errorf("\nwant %q\ngot  %q", tt.want, got)
			}
		})
	}
}

func TestNeedSpace(t *testing.T) {
	tests := []struct {
		prev, cur TokenKind
		want      bool
	}{
		{TokenEOF, TokenIdent, false},
		{TokenIdent, TokenIdent, true},
		{TokenFloat, TokenIdent, true},
		{TokenIdent, TokenNumber, true},
		{TokenNumber, TokenIdent, false},
		{TokenIdent, TokenEqual, true},
		{TokenEqual, TokenIdent, true},
		{TokenPlus, TokenEqual, false},
		{TokenMinus, TokenEqual, false},
		{TokenStar, TokenEqual, false},
		{TokenSlash, TokenEqual, false},
		{TokenEqual, TokenEqual, false},
		{TokenLess, TokenEqual, false},
		{TokenGreater, TokenEqual, false},
		{TokenEqual, TokenBang, true},
		{TokenBang, TokenIdent, false},
		{TokenRightBrace, TokenIdent, false},
		{TokenLeftBrace, TokenIdent, false},
		{TokenComma, TokenIdent, true},
		{TokenIdent, TokenComma, false},
		{TokenIdent, TokenLeftParen, false},
		{TokenIdent, TokenDot, false},
		{TokenDot, TokenIdent, false},
		{TokenRightParen, TokenSemicolon, false},
	}
	for _, tt := range tests {
		if got := needSpace(tt.prev, tt.cur); got != tt.want {
			t.Errorf("needSpace(%v, %v) = %v, want %v", tt.prev, tt.cur, got, tt.want)
		}
	}
}
