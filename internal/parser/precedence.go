package parser

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/lexer"
)

// Base precedence tiers, lowest to highest (spec.md §4.2: "equality <
// comparison < additive < multiplicative < root < power"). These are
// only a tie-breaker: gapWeight below dominates the comparison, so two
// operators written with different surrounding whitespace never fall
// back on base precedence to decide which binds tighter.
const (
	precEquality = iota + 1
	precComparison
	precAdditive
	precMultiplicative
	precRoot
)

// gapWeight dominates basePrec: even a single extra space (or an
// enclosing paren/bracket, which counts the same as a space for this
// purpose — spec.md §9) outweighs the entire base precedence spread.
const gapWeight = 1000

var basePrec = map[lexer.Type]int{
	lexer.EQ: precEquality, lexer.STRICT_EQ: precEquality, lexer.VSTRICT_EQ: precEquality,

	lexer.LT: precComparison, lexer.LE: precComparison, lexer.GT: precComparison, lexer.GE: precComparison,
	lexer.MIN: precComparison, lexer.MAX: precComparison,

	lexer.PLUS: precAdditive, lexer.MINUS: precAdditive,

	lexer.ASTERISK: precMultiplicative, lexer.SLASH: precMultiplicative, lexer.PERCENT: precMultiplicative,
	lexer.AMP: precMultiplicative, lexer.PIPE: precMultiplicative, lexer.CARET: precMultiplicative,
	lexer.SHL: precMultiplicative, lexer.SHR: precMultiplicative,

	lexer.ROOT: precRoot,
}

var infixOps = map[lexer.Type]ast.InfixOp{
	lexer.EQ: ast.OpLooseEq, lexer.STRICT_EQ: ast.OpStrictEq, lexer.VSTRICT_EQ: ast.OpVeryStrictEq,
	lexer.LT: ast.OpLt, lexer.LE: ast.OpLe, lexer.GT: ast.OpGt, lexer.GE: ast.OpGe,
	lexer.MIN: ast.OpMin, lexer.MAX: ast.OpMax,
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub,
	lexer.ASTERISK: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpMod,
	lexer.AMP: ast.OpBitAnd, lexer.PIPE: ast.OpBitOr, lexer.CARET: ast.OpBitXor,
	lexer.SHL: ast.OpShl, lexer.SHR: ast.OpShr,
	lexer.ROOT: ast.OpRoot,
}

// isInfixOperator reports whether t can appear as a binary operator —
// used both by the Pratt loop and to keep paren-less call arguments
// from swallowing a following binary expression (spec.md §4.2).
func isInfixOperator(t lexer.Type) bool {
	_, ok := basePrec[t]
	return ok
}

// gap measures the "spacing" between two adjacent tokens by re-scanning
// the raw source between them (spec.md §9: parens/brackets count as
// whitespace for this purpose, even though they still delimit real
// grouping/call/index syntax elsewhere in the grammar).
func (p *Parser) gap(a, b lexer.Token) int {
	lo := a.Offset + a.Length
	hi := b.Offset
	if hi <= lo || lo < 0 || hi > len(p.source) {
		return 0
	}
	n := 0
	for _, r := range p.source[lo:hi] {
		switch r {
		case ' ', '\t', '\n', '\r', '(', ')', '[', ']', '{', '}':
			n++
		}
	}
	return n
}

// effectivePrecedence computes the whitespace-weighted precedence of the
// operator token at index opIdx, using the token immediately before it
// (the last token of the left operand) and immediately after it (the
// first token of the right operand) to measure spacing.
func (p *Parser) effectivePrecedence(opIdx int) int {
	op := p.at(opIdx)
	left := p.at(opIdx - 1)
	right := p.at(opIdx + 1)
	spacing := p.gap(left, op) + p.gap(op, right)
	return basePrec[op.Type] - gapWeight*spacing
}

// tokenGapText returns the raw source text between two tokens, using the
// same bounds as gap; no parser rule calls it.
func (p *Parser) tokenGapText(a, b lexer.Token) string {
	lo := a.Offset + a.Length
	hi := b.Offset
	if hi <= lo || lo < 0 || hi > len(p.source) {
		return ""
	}
	return p.source[lo:hi]
}

// glued reports whether b immediately follows a with zero bytes between
// them — used for index-expression recognition (`target[i]` only when
// `[` is glued to the preceding token, spec.md §4.2).
func (p *Parser) glued(a, b lexer.Token) bool {
	return a.Offset+a.Length == b.Offset
}
