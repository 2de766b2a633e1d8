package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
)

// parseClassDecl parses the body of `NAME is a class { ... }` after the
// caller has already consumed `NAME is a class`; the opening `{` is
// expected here (spec.md §4.2). Contents are partitioned into methods and
// properties as they're read.
func (p *Parser) parseClassDecl(name string, offset int) ast.Statement {
	p.expect(lexer.LBRACE)
	decl := &ast.ClassDecl{Base: ast.Base{Offset: offset}, Name: name}

	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		static := false
		if p.curIs(lexer.STATIC) {
			static = true
			p.advance()
		}
		fallback := false
		if p.curIs(lexer.FALLBACK) {
			fallback = true
			p.advance()
		}

		memberOffset := p.cur().Offset
		memberName, _, _ := p.expectIdent()

		if p.curIs(lexer.COLON) && p.cur().Count == 1 {
			p.advance()
			if ident, _, ok := p.expectIdent(); !ok || ident != "default" {
				p.errorf(p.cur().Offset, "expected 'default' in property declaration")
			}
			value := p.parseExpression(noMinPrec)
			p.parseTerminator()
			decl.Properties = append(decl.Properties, &ast.PropertyDecl{
				Base: ast.Base{Offset: memberOffset}, Name: memberName, Static: static, Fallback: fallback, Default: value,
			})
			continue
		}

		params := p.parseParamList()
		p.expect(lexer.ARROW)
		body := p.parseFunctionBody()
		decl.Methods = append(decl.Methods, &ast.MethodDecl{
			Base: ast.Base{Offset: memberOffset}, Name: memberName, Static: static, Params: params, Body: body,
		})
	}
	p.expect(lexer.RBRACE)
	return decl
}
