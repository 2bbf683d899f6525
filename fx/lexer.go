package fx

import "unicode/utf8"

// Lexer tokenizes FX source code on demand.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
	}
}

// Next returns the next token and advances past it. Once the input is
// exhausted every call returns a TokenEOF token.
//
// A character outside the FX alphabet is consumed and returned as a
// one-character TokenIllegal token; the lexer itself never fails.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.isAtEnd() {
		return Token{Kind: TokenEOF, Line: l.line, Column: l.column, Offset: l.pos}
	}

	start, line, column := l.pos, l.line, l.column
	c := l.source[l.pos]

	var kind TokenKind
	switch {
	case isIdentStart(c):
		for !l.isAtEnd() && isIdentContinue(l.source[l.pos]) {
			l.advance()
		}
		kind = lookupKeyword(l.source[start:l.pos])
	case isDigit(c):
		l.number()
		kind = TokenNumber
	default:
		k, ok := punctuation[c]
		if ok {
			l.advance()
			kind = k
		} else {
			// Consume a whole rune so the lexeme is printable.
			_, size := utf8.DecodeRuneInString(l.source[l.pos:])
			l.pos += size
			l.column++
			kind = TokenIllegal
		}
	}

	return Token{
		Kind:   kind,
		Lexeme: l.source[start:l.pos],
		Line:   line,
		Column: column,
		Offset: start,
	}
}

// Tokenize returns all tokens from the source, ending with TokenEOF.
func (l *Lexer) Tokenize() []Token {
	// Estimate ~1 token per 5 characters of source.
	tokens := make([]Token, 0, len(l.source)/5+1)
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		c := l.source[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
			l.advance()
		case c == '\n':
			l.pos++
			l.line++
			l.column = 1
		case c == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.source[l.pos] != '\n' {
				l.advance()
			}
		case c == '/' && l.peekNext() == '*':
			l.blockComment()
		default:
			return
		}
	}
}

// blockComment skips a /* */ comment. An unterminated comment runs to the
// end of input.
func (l *Lexer) blockComment() {
	l.advance()
	l.advance()
	for !l.isAtEnd() {
		if l.source[l.pos] == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.source[l.pos] == '\n' {
			l.pos++
			l.line++
			l.column = 1
			continue
		}
		l.advance()
	}
}

// number scans digits, optionally followed by '.' and more digits.
// There is no sign and no exponent.
func (l *Lexer) number() {
	for !l.isAtEnd() && isDigit(l.source[l.pos]) {
		l.advance()
	}
	if !l.isAtEnd() && l.source[l.pos] == '.' {
		l.advance()
		for !l.isAtEnd() && isDigit(l.source[l.pos]) {
			l.advance()
		}
	}
}

var punctuation = map[byte]TokenKind{
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	'(': TokenLeftParen,
	')': TokenRightParen,
	';': TokenSemicolon,
	',': TokenComma,
	'=': TokenEqual,
	'*': TokenStar,
	'.': TokenDot,
	':': TokenColon,
	'-': TokenMinus,
	'+': TokenPlus,
	'/': TokenSlash,
	'<': TokenLess,
	'>': TokenGreater,
	'&': TokenAmpersand,
	'|': TokenPipe,
	'!': TokenBang,
}

var keywords = map[string]TokenKind{
	"shader":          TokenShader,
	"uniform":         TokenUniform,
	"input":           TokenInput,
	"void":            TokenVoid,
	"out":             TokenOut,
	"vertex_shader":   TokenVertexShader,
	"fragment_shader": TokenFragmentShader,

	// Types
	"float":       TokenFloat,
	"vec2":        TokenVec2,
	"vec3":        TokenVec3,
	"vec4":        TokenVec4,
	"mat4":        TokenMat4,
	"sampler2D":   TokenSampler2D,
	"samplerCube": TokenSamplerCube,
}

func lookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return TokenIdent
}

func (l *Lexer) advance() {
	l.pos++
	l.column++
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
