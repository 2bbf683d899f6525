package fx

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIllegal

	// Literals
	TokenIdent
	TokenNumber

	// Punctuation
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenLeftParen  // (
	TokenRightParen // )
	TokenSemicolon  // ;
	TokenComma      // ,
	TokenEqual      // =
	TokenStar       // *
	TokenDot        // .
	TokenColon      // :
	TokenMinus      // -
	TokenPlus       // +
	TokenSlash      // /
	TokenLess       // <
	TokenGreater    // >
	TokenAmpersand  // &
	TokenPipe       // |
	TokenBang       // !

	// Keywords
	TokenShader
	TokenUniform
	TokenInput
	TokenVoid
	TokenOut
	TokenVertexShader
	TokenFragmentShader

	// Type keywords
	TokenFloat
	TokenVec2
	TokenVec3
	TokenVec4
	TokenMat4
	TokenSampler2D
	TokenSamplerCube
)

var tokenNames = [...]string{
	TokenEOF:            "EOF",
	TokenIllegal:        "Illegal",
	TokenIdent:          "Ident",
	TokenNumber:         "Number",
	TokenLeftBrace:      "{",
	TokenRightBrace:     "}",
	TokenLeftParen:      "(",
	TokenRightParen:     ")",
	TokenSemicolon:      ";",
	TokenComma:          ",",
	TokenEqual:          "=",
	TokenStar:           "*",
	TokenDot:            ".",
	TokenColon:          ":",
	TokenMinus:          "-",
	TokenPlus:           "+",
	TokenSlash:          "/",
	TokenLess:           "<",
	TokenGreater:        ">",
	TokenAmpersand:      "&",
	TokenPipe:           "|",
	TokenBang:           "!",
	TokenShader:         "shader",
	TokenUniform:        "uniform",
	TokenInput:          "input",
	TokenVoid:           "void",
	TokenOut:            "out",
	TokenVertexShader:   "vertex_shader",
	TokenFragmentShader: "fragment_shader",
	TokenFloat:          "float",
	TokenVec2:           "vec2",
	TokenVec3:           "vec3",
	TokenVec4:           "vec4",
	TokenMat4:           "mat4",
	TokenSampler2D:      "sampler2D",
	TokenSamplerCube:    "samplerCube",
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "Unknown"
}

// IsType reports whether k is one of the seven type keywords.
func (k TokenKind) IsType() bool {
	return k >= TokenFloat && k <= TokenSamplerCube
}

// IsKeyword reports whether k is a fixed keyword or a type keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenShader && k <= TokenSamplerCube
}

// isWord reports whether k is spelled like an identifier.
func (k TokenKind) isWord() bool {
	return k == TokenIdent || k.IsKeyword()
}

// isOperator reports whether k is an assignment, arithmetic or comparison
// operator for body spacing purposes.
func (k TokenKind) isOperator() bool {
	switch k {
	case TokenEqual, TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenLess, TokenGreater:
		return true
	}
	return false
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
	Offset int // byte offset of Lexeme in the source
}

// Pos returns the token's source position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// Position represents a position in source code.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}
