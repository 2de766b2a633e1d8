package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
	"github.com/dreamberd-lang/dreamberd/internal/numword"
)

// parseExpression is the whitespace-weighted Pratt loop (spec.md §4.2,
// §9). minPrec is an *effective* precedence value already scaled by
// gapWeight, so callers that want "no lower bound" pass noMinPrec.
const noMinPrec = -1 << 30

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	left = p.parsePostfixAndCall(left)

	for {
		opIdx := p.pos
		opTok := p.cur()

		negated := false
		if opTok.Type == lexer.SEMICOLON && isInfixOperator(p.peek().Type) {
			// Prefix `;` immediately before an equality/comparison operator
			// negates the result (spec.md §4.2).
			negated = true
			opIdx = p.pos + 1
			opTok = p.peek()
		}

		if !isInfixOperator(opTok.Type) {
			break
		}
		eff := p.effectivePrecedence(opIdx)
		if eff <= minPrec {
			break
		}

		offset := left.Pos()
		if negated {
			p.advance() // consume ';'
		}
		p.advance() // consume operator

		right := p.parseExpression(eff)
		if right == nil {
			p.errorf(opTok.Offset, "expected expression after %s", opTok.Type)
			return left
		}
		left = &ast.InfixExpr{
			Base:    ast.Base{Offset: offset},
			Left:    left,
			Op:      infixOps[opTok.Type],
			Negated: negated,
			Right:   right,
		}
		left = p.parsePostfixAndCall(left)
	}
	return left
}

// parsePrefix dispatches on the current token for every prefix
// production: literals, identifiers/number-words, unary operators,
// grouping, array/range literals.
func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Base: ast.Base{Offset: tok.Offset}, Value: tok.Literal}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Base: ast.Base{Offset: tok.Offset}, Value: tok.Lexeme}
	case lexer.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Base: ast.Base{Offset: tok.Offset}, State: ast.True}
	case lexer.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Base: ast.Base{Offset: tok.Offset}, State: ast.False}
	case lexer.MAYBE:
		p.advance()
		return &ast.BooleanLiteral{Base: ast.Base{Offset: tok.Offset}, State: ast.Maybe}
	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{Base: ast.Base{Offset: tok.Offset}}
	case lexer.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Base: ast.Base{Offset: tok.Offset}}
	case lexer.MINUS:
		p.advance()
		right := p.parseExpression(noMinPrec)
		return &ast.PrefixExpr{Base: ast.Base{Offset: tok.Offset}, Op: ast.PrefixNegate, Right: right}
	case lexer.SEMICOLON:
		p.advance()
		right := p.parseExpression(noMinPrec)
		return &ast.PrefixExpr{Base: ast.Base{Offset: tok.Offset}, Op: ast.PrefixNot, Right: right}
	case lexer.PIPE2:
		p.advance()
		right := p.parseExpression(noMinPrec)
		return &ast.PrefixExpr{Base: ast.Base{Offset: tok.Offset}, Op: ast.PrefixAbs, Right: right}
	case lexer.TILDE:
		count := tok.Count
		p.advance()
		right := p.parseExpression(noMinPrec)
		return &ast.PrefixExpr{Base: ast.Base{Offset: tok.Offset}, Op: ast.PrefixTrig, Count: count, Right: right}
	case lexer.ROOT:
		count := tok.Count
		p.advance()
		right := p.parseExpression(precRoot * gapWeight)
		return &ast.PrefixExpr{Base: ast.Base{Offset: tok.Offset}, Op: ast.PrefixRoot, Count: count, Right: right}
	case lexer.LPAREN:
		return p.parseParenOrRange()
	case lexer.LBRACK:
		return p.parseArrayOrRange()
	case lexer.IDENT:
		return p.parseIdentOrNumberWords()
	default:
		if identLike(tok.Type) {
			p.advance()
			return &ast.Identifier{Base: ast.Base{Offset: tok.Offset}, Name: tok.Lexeme}
		}
		p.errorf(tok.Offset, "unexpected token %s in expression", tok.Type)
		p.advance()
		return nil
	}
}

// parseIdentOrNumberWords recognises a run of number words (spec.md
// §4.2) greedily; the run is kept as a NumberWordsExpr rather than
// folded to a plain NumberLiteral so the evaluator can apply the
// "first word shadows a declared name" rule against live scope state.
func (p *Parser) parseIdentOrNumberWords() ast.Expression {
	start := p.pos
	tok := p.cur()
	if !numword.IsWord(tok.Lexeme) {
		p.advance()
		return &ast.Identifier{Base: ast.Base{Offset: tok.Offset}, Name: tok.Lexeme}
	}

	words := []string{tok.Lexeme}
	end := p.pos + 1
	for p.at(end).Type == lexer.IDENT && numword.IsWord(p.at(end).Lexeme) {
		words = append(words, p.at(end).Lexeme)
		end++
	}
	if val, ok := numword.Parse(words); ok {
		p.pos = end
		return &ast.NumberWordsExpr{Base: ast.Base{Offset: tok.Offset}, Words: words, Value: val}
	}
	p.pos = start + 1
	return &ast.Identifier{Base: ast.Base{Offset: tok.Offset}, Name: tok.Lexeme}
}

// parseArrayOrRange parses `[...]`, disambiguating an array literal from
// a range literal by the presence of a top-level `..` before the
// balancing close token (spec.md §4.2, §4.5). `[` opens an
// inclusive-low range; the close token (`]` or `)`) selects the
// high-end inclusivity.
func (p *Parser) parseArrayOrRange() ast.Expression {
	open := p.advance() // '['
	if p.curIs(lexer.RBRACK) {
		p.advance()
		return &ast.ArrayLiteral{Base: ast.Base{Offset: open.Offset}}
	}

	first := p.parseExpression(noMinPrec)

	if p.curIs(lexer.DOTDOT) {
		p.advance()
		high := p.parseExpression(noMinPrec)
		r := &ast.RangeLiteral{Base: ast.Base{Offset: open.Offset}, Low: first, High: high, LowInclusive: true}
		r.HighInclusive = p.curIs(lexer.RBRACK)
		if !p.expectCloser() {
			p.errorf(p.cur().Offset, "expected ] or ) to close range")
		}
		return r
	}

	elems := []ast.Expression{first}
	for p.curIs(lexer.COMMA) {
		p.advance()
		elems = append(elems, p.parseExpression(noMinPrec))
	}
	p.expect(lexer.RBRACK)
	return &ast.ArrayLiteral{Base: ast.Base{Offset: open.Offset}, Elements: elems}
}

// parseParenOrRange parses `(...)`, which is either plain grouping or an
// exclusive-low range `(lo..hi]` / `(lo..hi)` (spec.md §4.2).
func (p *Parser) parseParenOrRange() ast.Expression {
	open := p.advance() // '('
	first := p.parseExpression(noMinPrec)

	if p.curIs(lexer.DOTDOT) {
		p.advance()
		high := p.parseExpression(noMinPrec)
		r := &ast.RangeLiteral{Base: ast.Base{Offset: open.Offset}, Low: first, High: high, LowInclusive: false}
		r.HighInclusive = p.curIs(lexer.RBRACK)
		if !p.expectCloser() {
			p.errorf(p.cur().Offset, "expected ] or ) to close range")
		}
		return r
	}

	p.expect(lexer.RPAREN)
	return first
}

// expectCloser consumes a `]` or `)` closing a range literal, whichever
// is present, reporting whether one was found.
func (p *Parser) expectCloser() bool {
	if p.curIs(lexer.RBRACK) || p.curIs(lexer.RPAREN) {
		p.advance()
		return true
	}
	return false
}

// callArgStart is the set of token types that can open a paren-less
// call argument list. Anything that also doubles as a binary operator
// (+, -, *, the comparison/equality family, …) is deliberately excluded
// so `a - b` keeps parsing as subtraction rather than a call `a(-b)`
// (spec.md §4.2: "not itself a binary operator continuation").
func callArgStart(t lexer.Type) bool {
	switch t {
	case lexer.IDENT, lexer.A, lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.MAYBE,
		lexer.UNDEFINED, lexer.NULL, lexer.LBRACK, lexer.SEMICOLON, lexer.PIPE2, lexer.AT:
		return true
	}
	return false
}

// debugMarkerEnd reports whether t, following a `?`, means that `?` is a
// debug-marker terminator rather than the start of a conditional.
func debugMarkerEnd(t lexer.Type) bool {
	switch t {
	case lexer.BANG, lexer.QUESTION, lexer.QQ, lexer.RBRACE, lexer.EOF:
		return true
	}
	return false
}

// parsePostfixAndCall applies index/call/postfix-operator productions to
// an already-parsed primary, left to right, repeatedly — so
// `a[0](x)++` chains naturally.
func (p *Parser) parsePostfixAndCall(left ast.Expression) ast.Expression {
	for {
		switch {
		case p.curIs(lexer.LBRACK) && p.pos > 0 && p.glued(p.at(p.pos-1), p.cur()):
			open := p.advance()
			idx := p.parseExpression(noMinPrec)
			p.expect(lexer.RBRACK)
			left = &ast.IndexExpr{Base: ast.Base{Offset: open.Offset}, Target: left, Index: idx}

		case p.curIs(lexer.LPAREN):
			open := p.advance()
			var args []ast.Expression
			if !p.curIs(lexer.RPAREN) {
				args = append(args, p.parseExpression(noMinPrec))
				for p.curIs(lexer.COMMA) {
					p.advance()
					args = append(args, p.parseExpression(noMinPrec))
				}
			}
			p.expect(lexer.RPAREN)
			left = &ast.CallExpr{Base: ast.Base{Offset: open.Offset}, Callee: left, Args: args}

		case callArgStart(p.cur().Type) && !(p.curIs(lexer.SEMICOLON) && isInfixOperator(p.peek().Type)):
			offset := p.cur().Offset
			args := []ast.Expression{p.parseExpression(noMinPrec)}
			for p.curIs(lexer.COMMA) {
				p.advance()
				args = append(args, p.parseExpression(noMinPrec))
			}
			left = &ast.CallExpr{Base: ast.Base{Offset: offset}, Callee: left, Args: args}

		case p.curIs(lexer.INCR) || p.curIs(lexer.DECR) || p.curIs(lexer.STAR_RUN):
			var ops []ast.PostfixOp
			for p.curIs(lexer.INCR) || p.curIs(lexer.DECR) || p.curIs(lexer.STAR_RUN) {
				switch p.cur().Type {
				case lexer.INCR:
					ops = append(ops, ast.PostfixOp{Kind: ast.PostfixIncr})
					p.advance()
				case lexer.DECR:
					ops = append(ops, ast.PostfixOp{Kind: ast.PostfixDecr})
					p.advance()
				case lexer.STAR_RUN:
					ops = append(ops, ast.PostfixOp{Kind: ast.PostfixPower, Count: p.cur().Count})
					p.advance()
				}
			}
			left = &ast.PostfixExpr{Base: ast.Base{Offset: left.Pos()}, Target: left, Ops: ops}

		case p.curIs(lexer.QUESTION) && !debugMarkerEnd(p.peek().Type):
			left = p.parseConditional(left)

		default:
			return left
		}
	}
}

// parseConditional parses `cond ? true [: false] [:: maybe] [::: undefined]`.
// The colon branches are lexed as a single COLON run (spec.md §4.2 reuses
// the same run-collapsing the update statement uses for its own `:`), so
// the branch is selected directly from the token's Count.
func (p *Parser) parseConditional(cond ast.Expression) ast.Expression {
	offset := p.cur().Offset
	p.advance() // '?'
	c := &ast.ConditionalExpr{Base: ast.Base{Offset: offset}, Cond: cond}
	c.WhenTrue = p.parseExpression(noMinPrec)

	for p.curIs(lexer.COLON) {
		count := p.cur().Count
		p.advance()
		val := p.parseExpression(noMinPrec)
		switch count {
		case 1:
			c.WhenFalse = val
		case 2:
			c.WhenMaybe = val
		default:
			c.WhenUndefined = val
		}
	}
	return c
}
