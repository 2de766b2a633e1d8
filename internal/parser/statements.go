package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
)

func isMutabilityTok(t lexer.Type) bool { return t == lexer.CONST || t == lexer.VAR }

// parseStatement dispatches on the current token to one of the
// statement forms of spec.md §4.2.
func (p *Parser) parseStatement() ast.Statement {
	tok := p.cur()

	switch {
	case tok.Type == lexer.LBRACE:
		return p.parseBlock()
	case isMutabilityTok(tok.Type) && isMutabilityTok(p.peek().Type):
		return p.parseVarDecl()
	case tok.Type == lexer.DELETE:
		return p.parseDelete()
	case tok.Type == lexer.REVERSE:
		p.advance()
		p.parseTerminator()
		return &ast.ReverseStatement{Base: ast.Base{Offset: tok.Offset}}
	case tok.Type == lexer.FORWARD:
		p.advance()
		p.parseTerminator()
		return &ast.ForwardStatement{Base: ast.Base{Offset: tok.Offset}}
	case tok.Type == lexer.WHEN:
		return p.parseWhen()
	case tok.Type == lexer.IF:
		return p.parseIf()
	case tok.Type == lexer.WHILE:
		return p.parseWhile()
	case tok.Type == lexer.BREAK:
		p.advance()
		p.parseTerminator()
		return &ast.BreakStatement{Base: ast.Base{Offset: tok.Offset}}
	case tok.Type == lexer.CONTINUE:
		p.advance()
		p.parseTerminator()
		return &ast.ContinueStatement{Base: ast.Base{Offset: tok.Offset}}
	case tok.Type == lexer.TRY:
		p.advance()
		p.expect(lexer.AGAIN)
		p.parseTerminator()
		return &ast.TryAgainStatement{Base: ast.Base{Offset: tok.Offset}}
	case tok.Type == lexer.RETURN:
		return p.parseReturn()
	case tok.Type == lexer.FUNCTION:
		return p.parseFunctionDecl()
	default:
		return p.parseExprClassOrUpdate()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	open, _ := p.expect(lexer.LBRACE)
	block := &ast.BlockStatement{Base: ast.Base{Offset: open.Offset}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.expect(lexer.RBRACE)
	return block
}

func (p *Parser) parseDelete() ast.Statement {
	offset := p.advance().Offset // 'delete'
	target := p.parseExpression(noMinPrec)
	p.parseTerminator()
	return &ast.DeleteStatement{Base: ast.Base{Offset: offset}, Target: target}
}

// parseWhen parses the condition-form `when COND BODY` or the
// pattern-form `when TARGET matches PATTERN [where GUARD] BODY`
// (spec.md §3, §4.2). Both forms start with a plain expression; the
// following `matches` keyword (or its absence) decides which form it is.
func (p *Parser) parseWhen() ast.Statement {
	offset := p.advance().Offset // 'when'
	expr := p.parseExpression(noMinPrec)

	if p.curIs(lexer.MATCHES) {
		p.advance()
		pattern := p.parseExpression(noMinPrec)
		var guard ast.Expression
		if p.curIs(lexer.WHERE) {
			p.advance()
			guard = p.parseExpression(noMinPrec)
		}
		body := p.parseBlock()
		return &ast.WhenStatement{Base: ast.Base{Offset: offset}, Target: expr, Pattern: pattern, Guard: guard, Body: body}
	}

	body := p.parseBlock()
	return &ast.WhenStatement{Base: ast.Base{Offset: offset}, Condition: expr, Body: body}
}

// parseIf parses `if COND THEN [idk IDKB] [else ELSEB]`, with `idk` and
// `else` optional and in either order (spec.md §4.2).
func (p *Parser) parseIf() ast.Statement {
	offset := p.advance().Offset // 'if'
	cond := p.parseExpression(noMinPrec)
	then := p.parseBlock()
	stmt := &ast.IfStatement{Base: ast.Base{Offset: offset}, Cond: cond, Then: then}

	for i := 0; i < 2; i++ {
		switch {
		case p.curIs(lexer.IDK) && stmt.Idk == nil:
			p.advance()
			stmt.Idk = p.parseBlock()
		case p.curIs(lexer.ELSE) && stmt.Else == nil:
			p.advance()
			stmt.Else = p.parseBlock()
		default:
			return stmt
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	offset := p.advance().Offset // 'while'
	cond := p.parseExpression(noMinPrec)
	body := p.parseBlock()
	return &ast.WhileStatement{Base: ast.Base{Offset: offset}, Cond: cond, Body: body}
}

// bareReturnFollows reports whether the current token can only be a
// statement terminator or block close, meaning a preceding `return` has
// no value expression (spec.md §4.2: "return [EXPR] TERMINATOR").
func (p *Parser) bareReturnFollows() bool {
	switch p.cur().Type {
	case lexer.BANG, lexer.QUESTION, lexer.QQ, lexer.RBRACE, lexer.EOF:
		return true
	}
	return false
}

func (p *Parser) parseReturn() ast.Statement {
	offset := p.advance().Offset // 'return'
	var value ast.Expression
	if !p.bareReturnFollows() {
		value = p.parseExpression(noMinPrec)
	}
	p.parseTerminator()
	return &ast.ReturnStatement{Base: ast.Base{Offset: offset}, Value: value}
}

// parseExprClassOrUpdate handles every statement form that starts with
// a plain expression: a class declaration (`NAME is a class { ... }`),
// an update statement (`target :OP ...`), a plain assignment
// (`target = value`), or a bare expression statement.
func (p *Parser) parseExprClassOrUpdate() ast.Statement {
	offset := p.cur().Offset
	expr := p.parseExpression(noMinPrec)

	if ident, ok := expr.(*ast.Identifier); ok && p.curIs(lexer.IS) && p.peek().Type == lexer.A && p.at(p.pos+2).Type == lexer.CLASS {
		p.advance() // is
		p.advance() // a
		p.advance() // class
		return p.parseClassDecl(ident.Name, offset)
	}

	if p.curIs(lexer.COLON) {
		return p.parseUpdateStatement(expr, offset)
	}

	if p.curIs(lexer.ASSIGN) {
		p.advance()
		value := p.parseExpression(noMinPrec)
		priority, debug := p.parseTerminator()
		assign := &ast.AssignExpr{Base: ast.Base{Offset: offset}, Target: expr, Value: value}
		return &ast.ExpressionStatement{Base: ast.Base{Offset: offset}, Expr: assign, Priority: priority, Debug: debug}
	}

	priority, debug := p.parseTerminator()
	return &ast.ExpressionStatement{Base: ast.Base{Offset: offset}, Expr: expr, Priority: priority, Debug: debug}
}

// parseUpdateStatement parses `target :OP [value]` (spec.md §4.2),
// where OP is read directly off the token following the single `:`.
func (p *Parser) parseUpdateStatement(target ast.Expression, offset int) ast.Statement {
	p.advance() // ':'
	opTok := p.cur()

	stmt := &ast.UpdateStmt{Base: ast.Base{Offset: offset}, Target: target}

	switch opTok.Type {
	case lexer.PLUS:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdAdd, p.parseExpression(noMinPrec)
	case lexer.MINUS:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdSub, p.parseExpression(noMinPrec)
	case lexer.ASTERISK:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdMul, p.parseExpression(noMinPrec)
	case lexer.SLASH:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdDiv, p.parseExpression(noMinPrec)
	case lexer.PERCENT:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdMod, p.parseExpression(noMinPrec)
	case lexer.STAR_RUN:
		stmt.Op, stmt.Count = ast.UpdPower, opTok.Count
		p.advance()
	case lexer.ROOT:
		stmt.Op, stmt.Count = ast.UpdRoot, opTok.Count
		p.advance()
	case lexer.AMP:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdBitAnd, p.parseExpression(noMinPrec)
	case lexer.PIPE:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdBitOr, p.parseExpression(noMinPrec)
	case lexer.CARET:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdBitXor, p.parseExpression(noMinPrec)
	case lexer.SHL:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdShl, p.parseExpression(noMinPrec)
	case lexer.SHR:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdShr, p.parseExpression(noMinPrec)
	case lexer.QQ:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdNullish, p.parseExpression(noMinPrec)
	case lexer.LT:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdMin, p.parseExpression(noMinPrec)
	case lexer.GT:
		p.advance()
		stmt.Op, stmt.Value = ast.UpdMax, p.parseExpression(noMinPrec)
	case lexer.TILDE:
		stmt.Op, stmt.Count = ast.UpdTrig, opTok.Count
		p.advance()
	case lexer.CLAMP:
		p.advance()
		stmt.Op = ast.UpdClamp
		stmt.Range = p.parseRangeLiteral()
	case lexer.WRAP:
		p.advance()
		stmt.Op = ast.UpdWrap
		if !p.curIs(lexer.LBRACK) && !p.curIs(lexer.LPAREN) {
			stmt.Value = p.parseExpression(noMinPrec)
		}
		stmt.Range = p.parseRangeLiteral()
	default:
		p.errorf(opTok.Offset, "unrecognised update operator %s", opTok.Type)
		p.advance()
	}

	p.parseTerminator()
	return stmt
}

// parseRangeLiteral parses a `[lo..hi]`-family literal where one is
// required (after `clamp`/`wrap` in an update statement).
func (p *Parser) parseRangeLiteral() *ast.RangeLiteral {
	expr := p.parsePrefix()
	r, ok := expr.(*ast.RangeLiteral)
	if !ok {
		p.errorf(p.cur().Offset, "expected a range literal")
		return &ast.RangeLiteral{}
	}
	return r
}
