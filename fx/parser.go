package fx

import (
	"fmt"
	"log/slog"
)

// Options configures parsing.
type Options struct {
	// MaxBodyBytes caps the size of a transpiled standalone body.
	// Zero means unlimited.
	MaxBodyBytes int

	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// Parser is a recursive-descent parser for both FX grammars. It pulls
// tokens from the lexer one at a time.
//
// Failures in the legacy block grammar that amount to a missing token are
// recoverable: the diagnostic is recorded and parsing resumes at the next
// shader. Everything on the standalone path, unexpected tokens inside a
// shader block and unexpected top-level tokens stop the parse.
type Parser struct {
	lexer  *Lexer
	source string
	opts   Options
	logger *slog.Logger

	tok    Token
	errors ErrorList
	halted bool

	// raw is set while a legacy body is captured verbatim; illegal
	// characters are then part of the captured text.
	raw bool
}

// NewParser creates a new parser for the given source.
func NewParser(source string, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		lexer:  NewLexer(source),
		source: source,
		opts:   opts,
		logger: logger,
	}
}

// Parse parses FX source with default options.
func Parse(source string) (*File, error) {
	return NewParser(source, Options{}).Parse()
}

// Parse parses the whole source and returns the shaders it defines.
// On failure the returned error is an ErrorList and the partial File must
// not be used for code generation.
func (p *Parser) Parse() (*File, error) {
	p.logger.Debug("starting to parse shader file")
	p.advance()

	file := &File{}
	var pending pendingDecls

	for !p.halted && !p.check(TokenEOF) {
		switch p.tok.Kind {
		case TokenShader:
			p.logger.Debug("found shader block", "line", p.tok.Line)
			shader, err := p.shaderBlock()
			if err != nil {
				p.resync(err)
				continue
			}
			file.Shaders = append(file.Shaders, shader)

		case TokenUniform:
			p.logger.Debug("found top-level uniform", "line", p.tok.Line)
			u, err := p.uniformDecl()
			if err != nil {
				p.fail(err)
				continue
			}
			pending.uniforms = append(pending.uniforms, u)

		case TokenInput:
			p.logger.Debug("found top-level input", "line", p.tok.Line)
			in, err := p.inputDecl()
			if err != nil {
				p.fail(err)
				continue
			}
			pending.inputs = append(pending.inputs, in)

		case TokenVertexShader, TokenFragmentShader:
			p.logger.Debug("found standalone shader", "line", p.tok.Line)
			shader, err := p.standaloneShader(&pending)
			if err != nil {
				p.fail(err)
				continue
			}
			file.Shaders = append(file.Shaders, shader)

		default:
			p.fail(p.errorf(ErrSyntax, p.tok, "unexpected token %s at top level", describe(p.tok)))
		}
	}

	p.logger.Debug("finished parsing shader file", "shaders", len(file.Shaders), "errors", len(p.errors))
	if p.errors.HasErrors() {
		return file, p.errors
	}
	return file, nil
}

// shaderBlock parses `shader NAME { (uniform | input | void-function)* }`.
func (p *Parser) shaderBlock() (*ShaderDef, *Error) {
	start := p.tok
	if err := p.expect(TokenShader, "'shader'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("shader name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLeftBrace, "'{' after shader name"); err != nil {
		return nil, err
	}

	shader := &ShaderDef{
		Name:    name.Lexeme,
		Grammar: GrammarLegacy,
		Pos:     start.Pos(),
	}

	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		switch p.tok.Kind {
		case TokenUniform:
			p.logger.Debug("parsing uniform", "line", p.tok.Line)
			u, err := p.uniformDecl()
			if err != nil {
				return nil, err
			}
			shader.Uniforms = append(shader.Uniforms, u)
		case TokenInput:
			p.logger.Debug("parsing input", "line", p.tok.Line)
			in, err := p.inputDecl()
			if err != nil {
				return nil, err
			}
			shader.Inputs = append(shader.Inputs, in)
		case TokenVoid:
			p.logger.Debug("parsing void function", "line", p.tok.Line)
			fn, err := p.voidFunction()
			if err != nil {
				return nil, err
			}
			shader.Functions = append(shader.Functions, fn)
		default:
			return nil, p.fail(p.errorf(ErrSyntax, p.tok,
				"unexpected token %s in shader block %q", describe(p.tok), shader.Name))
		}
	}

	if err := p.expect(TokenRightBrace, fmt.Sprintf("'}' to close shader %q", shader.Name)); err != nil {
		return nil, err
	}

	p.logger.Debug("parsed shader", "name", shader.Name)
	return shader, nil
}

// uniformDecl parses `uniform TYPE IDENT ;`.
func (p *Parser) uniformDecl() (UniformDecl, *Error) {
	typ, name, err := p.typedDecl(TokenUniform)
	return UniformDecl{Type: typ, Name: name}, err
}

// inputDecl parses `input TYPE IDENT ;`.
func (p *Parser) inputDecl() (InputDecl, *Error) {
	typ, name, err := p.typedDecl(TokenInput)
	return InputDecl{Type: typ, Name: name}, err
}

func (p *Parser) typedDecl(keyword TokenKind) (typ, name string, err *Error) {
	if err := p.expect(keyword, "'"+keyword.String()+"'"); err != nil {
		return "", "", err
	}
	if !p.tok.Kind.IsType() {
		return "", "", p.errorf(ErrSemantic, p.tok,
			"expected type after '%s', got %s", keyword, describe(p.tok))
	}
	typ = p.tok.Lexeme
	p.advance()

	ident, err := p.expectIdent(fmt.Sprintf("identifier after type in %s declaration", keyword))
	if err != nil {
		return "", "", err
	}
	if err := p.expect(TokenSemicolon, "';'"); err != nil {
		return "", "", err
	}
	return typ, ident.Lexeme, nil
}

// voidFunction parses `void NAME ( [out TYPE IDENT] ) { BODY }`. The body
// is kept as the verbatim source text between the braces.
func (p *Parser) voidFunction() (*FunctionDecl, *Error) {
	start := p.tok
	if err := p.expect(TokenVoid, "'void'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}

	fn := &FunctionDecl{
		Name:     name.Lexeme,
		Stage:    legacyStage(name.Lexeme),
		BodyKind: BodyRaw,
		Pos:      start.Pos(),
	}
	p.logger.Debug("function", "name", fn.Name, "stage", fn.Stage)

	if err := p.expect(TokenLeftParen, "'('"); err != nil {
		return nil, err
	}
	if fn.Stage == StageFragment && p.match(TokenOut) {
		if !isOutputType(p.tok.Kind) {
			return nil, p.fail(p.errorf(ErrSemantic, p.tok,
				"expected type after 'out' in fragment(), got %s", describe(p.tok)))
		}
		typ := p.tok.Lexeme
		p.advance()
		ident, err := p.expectIdent("output parameter name")
		if err != nil {
			return nil, err
		}
		fn.Output = &OutputBinding{Type: typ, Name: ident.Lexeme}
		p.logger.Debug("fragment output", "type", typ, "name", ident.Lexeme)
	}
	if err := p.expect(TokenRightParen, "')'"); err != nil {
		return nil, err
	}

	// Switch to raw mode before '{' is consumed so the first body token is
	// already lexed leniently.
	p.raw = true
	if err := p.expect(TokenLeftBrace, "'{' to open function body"); err != nil {
		p.raw = false
		return nil, err
	}
	body, err := p.rawBody(fn.Name)
	p.raw = false
	if err != nil {
		return nil, err
	}
	fn.Body = body
	if err := p.expect(TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}

	return fn, nil
}

// rawBody returns the source text from the current token up to, but not
// including, the brace that closes the function. Nested braces are
// tracked. The closing brace is left as the current token.
func (p *Parser) rawBody(fnName string) (string, *Error) {
	start := p.tok.Offset
	depth := 0
	for {
		switch p.tok.Kind {
		case TokenEOF:
			return "", p.errorf(ErrSyntax, p.tok, "expected '}' to close body of %s(), got EOF", fnName)
		case TokenLeftBrace:
			depth++
		case TokenRightBrace:
			if depth == 0 {
				return p.source[start:p.tok.Offset], nil
			}
			depth--
		}
		p.advance()
	}
}

// standaloneShader parses
// `(vertex_shader | fragment_shader) [IDENT] ( params ) { BODY }`.
// The resulting shader receives copies of the pending declarations.
func (p *Parser) standaloneShader(pending *pendingDecls) (*ShaderDef, *Error) {
	start := p.tok
	stage := StageVertex
	if start.Kind == TokenFragmentShader {
		stage = StageFragment
	}
	p.advance()

	name := stage.String()
	if p.check(TokenIdent) {
		name = p.tok.Lexeme
		p.advance()
	}
	p.logger.Debug("standalone shader", "name", name, "stage", stage)

	if err := p.expect(TokenLeftParen, "'('"); err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightParen, "')'"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenLeftBrace, "'{' to open shader body"); err != nil {
		return nil, err
	}
	body, err := p.transpileBody(stage)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}

	uniforms, inputs := pending.snapshot()
	shader := &ShaderDef{
		Name:     name,
		Grammar:  GrammarStandalone,
		Uniforms: uniforms,
		Inputs:   inputs,
		Functions: []*FunctionDecl{{
			Name:     name,
			Stage:    stage,
			Params:   params,
			Body:     body,
			BodyKind: BodyTranspiled,
			Pos:      start.Pos(),
		}},
		Pos: start.Pos(),
	}
	p.logger.Debug("parsed standalone shader", "name", name)
	return shader, nil
}

// paramList parses `(TYPE IDENT [: IDENT]) (, ...)*` up to but not
// including ')'. A trailing comma is accepted.
func (p *Parser) paramList() ([]Param, *Error) {
	var params []Param
	for !p.check(TokenRightParen) && !p.check(TokenEOF) {
		if !p.tok.Kind.IsType() && !p.check(TokenIdent) {
			return nil, p.errorf(ErrSyntax, p.tok, "expected parameter type, got %s", describe(p.tok))
		}
		param := Param{Type: p.tok.Lexeme}
		p.advance()

		name, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		param.Name = name.Lexeme

		if p.match(TokenColon) {
			semantic, err := p.expectIdent("semantic")
			if err != nil {
				return nil, err
			}
			param.Semantic = semantic.Lexeme
		}
		params = append(params, param)

		if p.match(TokenComma) {
			continue
		}
		if !p.check(TokenRightParen) {
			return nil, p.errorf(ErrSyntax, p.tok, "expected ',' or ')' in parameter list, got %s", describe(p.tok))
		}
	}
	return params, nil
}

// Token helpers

func (p *Parser) advance() {
	for {
		p.tok = p.lexer.Next()
		if p.tok.Kind != TokenIllegal || p.raw {
			return
		}
		p.errors.Add(p.errorf(ErrUnrecognizedChar, p.tok, "unrecognized character %q", p.tok.Lexeme))
	}
}

func (p *Parser) check(kind TokenKind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind, what string) *Error {
	if p.match(kind) {
		return nil
	}
	return p.errorf(ErrSyntax, p.tok, "expected %s, got %s", what, describe(p.tok))
}

func (p *Parser) expectIdent(what string) (Token, *Error) {
	tok := p.tok
	if err := p.expect(TokenIdent, what); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// resync records a legacy-grammar failure and skips to the next place a
// top-level construct can start. A halted parser is left alone. Skipped
// text is lexed in raw mode: it is usually the GLSL of a broken body.
func (p *Parser) resync(err *Error) {
	if p.halted {
		return
	}
	p.errors.Add(err)
	raw := p.raw
	p.raw = true
	defer func() { p.raw = raw }()
	for !p.check(TokenEOF) {
		switch p.tok.Kind {
		case TokenShader, TokenVertexShader, TokenFragmentShader:
			return
		}
		p.advance()
	}
}

// fail records err and stops the parse.
func (p *Parser) fail(err *Error) *Error {
	if !p.halted {
		p.errors.Add(err)
		p.halted = true
	}
	return err
}

func (p *Parser) errorf(kind ErrorKind, tok Token, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     tok.Pos(),
		Source:  p.source,
	}
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "EOF"
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Lexeme)
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

func legacyStage(name string) Stage {
	switch name {
	case "vertex":
		return StageVertex
	case "fragment":
		return StageFragment
	}
	return StageOther
}

// isOutputType reports whether a fragment output may have this type.
// Samplers cannot be written by a fragment shader.
func isOutputType(kind TokenKind) bool {
	return kind.IsType() && kind != TokenSampler2D && kind != TokenSamplerCube
}
