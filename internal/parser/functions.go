package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
)

// parseFunctionDecl parses `function NAME params => BODY` (spec.md
// §4.2). The FUNCTION token already covers every accepted spelling
// (func/fun/fn/functi/f) via the lexer's keyword table.
func (p *Parser) parseFunctionDecl() ast.Statement {
	offset := p.advance().Offset // 'function'
	name, _, _ := p.expectIdent()
	params := p.parseParamList()
	p.expect(lexer.ARROW)
	body := p.parseFunctionBody()
	return &ast.FunctionDecl{Base: ast.Base{Offset: offset}, Name: name, Params: params, Body: body}
}

// parseParamList reads a comma-separated identifier list, with or
// without enclosing parens (parens are whitespace, so both spellings
// are accepted identically — spec.md §4.2).
func (p *Parser) parseParamList() []string {
	var params []string
	wrapped := p.curIs(lexer.LPAREN)
	if wrapped {
		p.advance()
	}
	for identLike(p.cur().Type) {
		name, _, _ := p.expectIdent()
		params = append(params, name)
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if wrapped {
		p.expect(lexer.RPAREN)
	}
	return params
}

// parseFunctionBody parses either an explicit block or a single
// expression desugared into `return EXPR` (spec.md §4.2).
func (p *Parser) parseFunctionBody() *ast.BlockStatement {
	if p.curIs(lexer.LBRACE) {
		return p.parseBlock()
	}
	offset := p.cur().Offset
	expr := p.parseExpression(noMinPrec)
	p.parseTerminator()
	return &ast.BlockStatement{
		Base:       ast.Base{Offset: offset},
		Statements: []ast.Statement{&ast.ReturnStatement{Base: ast.Base{Offset: offset}, Value: expr}},
	}
}
