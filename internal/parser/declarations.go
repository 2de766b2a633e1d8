package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
)

// mutabilityOf maps the two mutability keywords to spec.md §3's four
// variants.
func mutabilityOf(first, second lexer.Type) (ast.Mutability, bool) {
	switch {
	case first == lexer.VAR && second == lexer.VAR:
		return ast.VarVar, true
	case first == lexer.VAR && second == lexer.CONST:
		return ast.VarConst, true
	case first == lexer.CONST && second == lexer.VAR:
		return ast.ConstVar, true
	case first == lexer.CONST && second == lexer.CONST:
		return ast.ConstConst, true
	}
	return 0, false
}

// parseVarDecl parses `<const|var> <const|var> [const] TARGET [<lifetime>]
// = EXPR TERMINATOR` (spec.md §4.2). The first two mutability keywords
// have already been confirmed present by the caller's lookahead.
func (p *Parser) parseVarDecl() ast.Statement {
	startOffset := p.cur().Offset
	first := p.advance().Type
	second := p.advance().Type
	mutability, ok := mutabilityOf(first, second)
	if !ok {
		p.errorf(startOffset, "invalid mutability combination")
	}

	elevated := false
	if mutability == ast.ConstConst && p.curIs(lexer.CONST) {
		p.advance()
		elevated = true
	}

	target := p.parsePattern()

	var lifetime *ast.Lifetime
	if p.curIs(lexer.LT) {
		lifetime = p.parseLifetime()
	}

	p.expect(lexer.ASSIGN)
	value := p.parseExpression(noMinPrec)

	priority, debug := p.parseTerminator()

	return &ast.VarDecl{
		Base: ast.Base{Offset: startOffset}, Mutability: mutability, Elevated: elevated,
		Target: target, Lifetime: lifetime, Value: value, Priority: priority, Debug: debug,
	}
}

// parsePattern parses the declaration target: a plain identifier, an
// array-destructuring pattern `[a, b=default, ...rest]`, or an
// object-destructuring pattern `{name, name: alias, name=default}`
// (spec.md §4.2).
func (p *Parser) parsePattern() ast.Pattern {
	switch {
	case p.curIs(lexer.LBRACK):
		return p.parseArrayPattern()
	case p.curIs(lexer.LBRACE):
		return p.parseObjectPattern()
	default:
		name, offset, _ := p.expectIdent()
		return &ast.Identifier{Base: ast.Base{Offset: offset}, Name: name}
	}
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	open := p.advance() // '['
	pat := &ast.ArrayPattern{Base: ast.Base{Offset: open.Offset}}
	for !p.curIs(lexer.RBRACK) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.ELLIPSIS) {
			p.advance()
			name, _, _ := p.expectIdent()
			pat.Rest = name
		} else {
			name, _, _ := p.expectIdent()
			elem := ast.ArrayPatternElement{Name: name}
			if p.curIs(lexer.ASSIGN) {
				p.advance()
				elem.Default = p.parseExpression(noMinPrec)
			}
			pat.Elements = append(pat.Elements, elem)
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACK)
	return pat
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	open := p.advance() // '{'
	pat := &ast.ObjectPattern{Base: ast.Base{Offset: open.Offset}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		name, _, _ := p.expectIdent()
		field := ast.ObjectPatternField{Name: name}
		if p.curIs(lexer.COLON) && p.cur().Count == 1 {
			p.advance()
			field.Alias, _, _ = p.expectIdent()
		}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			field.Default = p.parseExpression(noMinPrec)
		}
		pat.Fields = append(pat.Fields, field)
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return pat
}

// parseLifetime parses `<N>` (Lines), `<Ns>` (Seconds), or `<Infinity>`,
// reusing the LT/GT tokens as angle brackets in this declaration-only
// context (spec.md §4.2).
func (p *Parser) parseLifetime() *ast.Lifetime {
	p.advance() // '<'
	var lt ast.Lifetime
	switch {
	case p.curIs(lexer.IDENT) && p.cur().Lexeme == "Infinity":
		p.advance()
		lt.Kind = ast.LifetimeInfinity
	case p.curIs(lexer.NUMBER):
		n := p.advance()
		lt.Value = n.Literal
		if p.curIs(lexer.IDENT) && p.cur().Lexeme == "s" {
			p.advance()
			lt.Kind = ast.LifetimeSeconds
		} else {
			lt.Kind = ast.LifetimeLines
		}
	default:
		p.errorf(p.cur().Offset, "expected lifetime value")
	}
	p.expect(lexer.GT)
	return &lt
}

// parseTerminator reads the trailing run of `!` (priority, default 1)
// and `?`/`??` (debug) markers closing a statement (spec.md §4.2). `??`
// is accepted here too since the lexer collapses exactly two `?` into a
// single QQ token regardless of statement-terminator context.
func (p *Parser) parseTerminator() (int, bool) {
	priority := 0
	debug := false
	for {
		switch p.cur().Type {
		case lexer.BANG:
			priority++
			p.advance()
		case lexer.QUESTION:
			debug = true
			p.advance()
		case lexer.QQ:
			debug = true
			p.advance()
		default:
			if priority == 0 {
				priority = 1
			}
			return priority, debug
		}
	}
}
