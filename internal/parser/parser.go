// Package parser implements the DreamBerd recursive-descent parser
// described in spec.md §4.2. Unlike a conventional Pratt parser, operator
// precedence here is whitespace-weighted (see precedence.go): the parser
// keeps the whole token slice and the raw source string around so it can
// measure the literal gap between any two tokens, counting both real
// whitespace and any parenthesis/bracket characters in between as
// "spacing" for that measurement (spec.md §4.2, §9).
package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// Parser holds the full token stream for a source string plus the
// source itself, consumed by recursive-descent with one token of
// lookahead (cur/peek), falling back to direct indexing when a rule
// needs to look further ahead (number-word runs, call-vs-binary
// disambiguation).
type Parser struct {
	source string
	tokens []lexer.Token
	pos    int
	errors []*langerror.Error

	loopDepth int
	ifDepth   int
}

// New tokenizes source in full and returns a ready-to-use Parser.
func New(source string) *Parser {
	l := lexer.New(source)
	p := &Parser{source: source}
	for {
		tok := l.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	p.errors = append(p.errors, l.Errors()...)
	return p
}

// Errors returns every lex+parse error accumulated so far.
func (p *Parser) Errors() []*langerror.Error { return p.errors }

func (p *Parser) errorf(offset int, format string, args ...any) {
	p.errors = append(p.errors, langerror.New(langerror.Parse, offset, format, args...))
}

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek() lexer.Token { return p.at(p.pos + 1) }

func (p *Parser) at(i int) lexer.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(t lexer.Type) bool { return p.cur().Type == t }

func (p *Parser) expect(t lexer.Type) (lexer.Token, bool) {
	if p.curIs(t) {
		return p.advance(), true
	}
	tok := p.cur()
	p.errorf(tok.Offset, "expected %s, got %s", t, tok.Type)
	return tok, false
}

// identLike reports whether t can stand in for an identifier: a keyword
// may be reused as an identifier where the grammar allows it (spec.md
// §4.1).
func identLike(t lexer.Type) bool {
	switch t {
	case lexer.IDENT, lexer.CONST, lexer.VAR, lexer.TRUE, lexer.FALSE, lexer.MAYBE, lexer.UNDEFINED, lexer.NULL,
		lexer.DELETE, lexer.REVERSE, lexer.FORWARD, lexer.WHEN, lexer.IF, lexer.ELSE, lexer.IDK, lexer.RETURN,
		lexer.FUNCTION, lexer.CLASS, lexer.IS, lexer.A, lexer.STATIC, lexer.FALLBACK, lexer.WHILE, lexer.BREAK,
		lexer.CONTINUE, lexer.MATCHES, lexer.WHERE, lexer.TRY, lexer.AGAIN, lexer.CLAMP, lexer.WRAP:
		return true
	}
	return false
}

// expectIdent consumes the current token as a name, accepting IDENT or
// any reusable keyword spelling.
func (p *Parser) expectIdent() (string, int, bool) {
	tok := p.cur()
	if identLike(tok.Type) {
		p.advance()
		return tok.Lexeme, tok.Offset, true
	}
	p.errorf(tok.Offset, "expected identifier, got %s", tok.Type)
	return "", tok.Offset, false
}

// ParseProgram parses the whole token stream into an *ast.Program. The
// parser does not attempt recovery: spec.md §4.2 specifies a fatal parse
// error on any unexpected token, so once errors is non-empty the caller
// should not trust the returned Program.
func ParseProgram(source string) (*ast.Program, []*langerror.Error) {
	p := New(source)
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) && len(p.errors) == 0 {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, p.errors
}
