package fx

import "strings"

// statementBreak follows every ';' written by the transpiler.
const statementBreak = "\n    "

// bodyTranspiler re-emits a standalone shader body as GLSL statements.
// It consumes tokens from the parser up to, but not including, the brace
// that closes the body.
type bodyTranspiler struct {
	p     *Parser
	stage Stage
	out   strings.Builder

	// prev is the kind of the last token written; TokenEOF means none.
	prev TokenKind

	// bang holds a '!' until the next token shows whether it starts "!=".
	bang *Token
}

// transpileBody runs the body transpiler on the current token stream.
func (p *Parser) transpileBody(stage Stage) (string, *Error) {
	t := &bodyTranspiler{p: p, stage: stage, prev: TokenEOF}
	return t.run()
}

func (t *bodyTranspiler) run() (string, *Error) {
	p := t.p
	depth := 0
	for {
		tok := p.tok
		if limit := p.opts.MaxBodyBytes; limit > 0 && t.out.Len() > limit {
			return "", p.errorf(ErrResourceLimit, tok, "shader body exceeds %d bytes", limit)
		}
		switch tok.Kind {
		case TokenEOF:
			return "", p.errorf(ErrSyntax, tok, "expected '}' to close shader body, got EOF")
		case TokenRightBrace:
			if depth == 0 {
				t.flushBang()
				return t.out.String(), nil
			}
			depth--
			t.writeBrace(tok)
		case TokenLeftBrace:
			depth++
			t.writeBrace(tok)
		case TokenOut:
			t.flushBang()
			if err := t.outDecl(); err != nil {
				return "", err
			}
			continue
		default:
			t.write(tok)
		}
		p.advance()
	}
}

// outDecl handles `out TYPE IDENT [: SEMANTIC] [;]`. A vertex body gets a
// varying output declaration in place; a fragment body drops it because
// the fragment output is always fragColor.
func (t *bodyTranspiler) outDecl() *Error {
	p := t.p
	p.advance()

	if !p.tok.Kind.IsType() {
		return p.errorf(ErrSemantic, p.tok, "expected type after 'out', got %s", describe(p.tok))
	}
	typ := p.tok.Lexeme
	p.advance()

	if t.stage == StageVertex {
		if !p.check(TokenIdent) {
			return p.errorf(ErrSyntax, p.tok,
				"expected identifier after type in out declaration, got %s", describe(p.tok))
		}
		name := p.tok.Lexeme
		p.advance()
		t.skipSemantic()

		t.out.WriteString("out ")
		t.out.WriteString(typ)
		t.out.WriteByte(' ')
		t.out.WriteString(name)
		t.out.WriteString(";\n")
	} else {
		p.match(TokenIdent)
		t.skipSemantic()
	}

	p.match(TokenSemicolon)
	t.prev = TokenEOF
	return nil
}

func (t *bodyTranspiler) skipSemantic() {
	if t.p.match(TokenColon) {
		t.p.match(TokenIdent)
	}
}

func (t *bodyTranspiler) writeBrace(tok Token) {
	t.flushBang()
	t.out.WriteString(tok.Lexeme)
	t.prev = tok.Kind
}

func (t *bodyTranspiler) write(tok Token) {
	if t.bang != nil && tok.Kind == TokenEqual {
		// "!=" is spaced like the other comparison operators.
		t.bang = nil
		if needSpace(t.prev, TokenEqual) {
			t.out.WriteByte(' ')
		}
		t.out.WriteString("!=")
		t.prev = TokenEqual
		return
	}
	t.flushBang()
	if tok.Kind == TokenBang {
		t.bang = &tok
		return
	}
	t.emit(tok)
}

// flushBang writes a held '!' as a plain token.
func (t *bodyTranspiler) flushBang() {
	if t.bang != nil {
		tok := *t.bang
		t.bang = nil
		t.emit(tok)
	}
}

func (t *bodyTranspiler) emit(tok Token) {
	if needSpace(t.prev, tok.Kind) {
		t.out.WriteByte(' ')
	}
	t.out.WriteString(tok.Lexeme)
	if tok.Kind == TokenSemicolon {
		t.out.WriteString(statementBreak)
	}
	t.prev = tok.Kind
}

// needSpace decides whether a space separates two adjacent body tokens.
func needSpace(prev, cur TokenKind) bool {
	if prev == TokenEOF {
		return false
	}
	// '=' glued to a preceding operator spells +=, -=, *=, /=, ==, <=, >=.
	if cur == TokenEqual && prev.isOperator() {
		return false
	}
	if cur.isOperator() || prev.isOperator() {
		return true
	}
	if prev.isWord() && (cur.isWord() || cur == TokenNumber) {
		return true
	}
	return prev == TokenComma
}
