package ast

import "fmt"

// BoolState mirrors spec.md §3's four-state boolean at the AST level
// (kept here, not in the evaluator's value package, so ast has no
// dependency on interp).
type BoolState int

const (
	False BoolState = iota
	True
	Maybe
)

func (b BoolState) String() string {
	switch b {
	case True:
		return "true"
	case Maybe:
		return "maybe"
	default:
		return "false"
	}
}

type Identifier struct {
	Base
	Name string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name }

type NumberLiteral struct {
	Base
	Value float64
}

func (n *NumberLiteral) expressionNode() {}
func (n *NumberLiteral) String() string  { return fmt.Sprintf("%g", n.Value) }

type StringLiteral struct {
	Base
	Value string
}

func (s *StringLiteral) expressionNode() {}
func (s *StringLiteral) String() string  { return fmt.Sprintf("%q", s.Value) }

type BooleanLiteral struct {
	Base
	State BoolState
}

func (b *BooleanLiteral) expressionNode() {}
func (b *BooleanLiteral) String() string  { return b.State.String() }

// NumberWordsExpr is a run of identifier tokens recognised as an
// English/Polish number-word literal (spec.md §4.2). Value is the
// precomputed numeric value; Words is kept so the evaluator can apply
// the "first word shadows a declared name" rule, which depends on
// runtime scope state the parser does not have.
type NumberWordsExpr struct {
	Base
	Words []string
	Value float64
}

func (n *NumberWordsExpr) expressionNode() {}
func (n *NumberWordsExpr) String() string  { return fmt.Sprintf("%g", n.Value) }

type NullLiteral struct{ Base }

func (n *NullLiteral) expressionNode() {}
func (n *NullLiteral) String() string  { return "null" }

type UndefinedLiteral struct{ Base }

func (u *UndefinedLiteral) expressionNode() {}
func (u *UndefinedLiteral) String() string  { return "undefined" }

// ArrayLiteral is `[a, b, c]`; the evaluator assigns keys starting at -1
// per spec.md §4.5.
type ArrayLiteral struct {
	Base
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode() {}
func (a *ArrayLiteral) String() string  { return "[array literal]" }

// RangeLiteral is `[lo..hi]` and its inclusive/exclusive bracket variants.
type RangeLiteral struct {
	Base
	Low, High               Expression
	LowInclusive            bool
	HighInclusive           bool
}

func (r *RangeLiteral) expressionNode() {}
func (r *RangeLiteral) String() string  { return "[range]" }

// PrefixOp enumerates the unary prefix operator kinds of spec.md §4.2.
type PrefixOp int

const (
	PrefixNegate PrefixOp = iota // -x
	PrefixNot                   // ;x
	PrefixAbs                   // ||x
	PrefixTrig                  // ~ / ~~ / ~~~ (Count selects sin/cos/tan)
	PrefixRoot                  // \-run (Count+1 is the degree)
)

type PrefixExpr struct {
	Base
	Op    PrefixOp
	Count int // run length, meaningful for PrefixTrig/PrefixRoot
	Right Expression
}

func (p *PrefixExpr) expressionNode() {}
func (p *PrefixExpr) String() string  { return fmt.Sprintf("(prefix %d %s)", p.Op, p.Right) }

// InfixOp enumerates the binary operator kinds.
type InfixOp int

const (
	OpAdd InfixOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpVeryLooseEq // =
	OpLooseEq     // ==
	OpStrictEq    // ===
	OpVeryStrictEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpMin // <> or ⌊⌋
	OpMax // >< or ⌈⌉
	OpRoot // a \ b : b-th root of a
)

// InfixExpr is a binary expression. Negated records a prefix `;` applied
// to an equality/comparison operator (spec.md §4.2: "Prefix `;`
// immediately before an equality/comparison operator negates the
// resulting boolean").
type InfixExpr struct {
	Base
	Left    Expression
	Op      InfixOp
	Negated bool
	Right   Expression
}

func (e *InfixExpr) expressionNode() {}
func (e *InfixExpr) String() string  { return fmt.Sprintf("(%s %d %s)", e.Left, e.Op, e.Right) }

// PostfixKind enumerates the postfix operator applied to an assignable
// target (spec.md §4.2).
type PostfixKind int

const (
	PostfixIncr PostfixKind = iota
	PostfixDecr
	PostfixPower // run length encodes exponent = 1 + run/2
)

type PostfixOp struct {
	Kind  PostfixKind
	Count int
}

// PostfixExpr applies a sequence of postfix operators, in order, to an
// assignable Target (spec.md §4.2: "any interleaving; applied in order").
type PostfixExpr struct {
	Base
	Target Expression
	Ops    []PostfixOp
}

func (p *PostfixExpr) expressionNode() {}
func (p *PostfixExpr) String() string  { return fmt.Sprintf("(postfix %s)", p.Target) }

// ConditionalExpr is `cond ? true [: false] [:: maybe] [::: undefined]`.
// A nil branch evaluates to Undefined (spec.md §4.2).
type ConditionalExpr struct {
	Base
	Cond                             Expression
	WhenTrue, WhenFalse, WhenMaybe   Expression
	WhenUndefined                    Expression
}

func (c *ConditionalExpr) expressionNode() {}
func (c *ConditionalExpr) String() string  { return fmt.Sprintf("(%s ? ...)", c.Cond) }

// CallExpr covers both paren-less (`foo a, b`) and paren-ed (`foo(a, b)`)
// call syntax — the parser desugars both into the same node.
type CallExpr struct {
	Base
	Callee Expression
	Args   []Expression
}

func (c *CallExpr) expressionNode() {}
func (c *CallExpr) String() string  { return fmt.Sprintf("%s(...)", c.Callee) }

// IndexExpr is `target[expr]`, taken only when `[` is glued to the
// preceding token (spec.md §4.2).
type IndexExpr struct {
	Base
	Target Expression
	Index  Expression
}

func (x *IndexExpr) expressionNode() {}
func (x *IndexExpr) String() string  { return fmt.Sprintf("%s[%s]", x.Target, x.Index) }

// AssignExpr is `target = value`.
type AssignExpr struct {
	Base
	Target Expression
	Value  Expression
}

func (a *AssignExpr) expressionNode() {}
func (a *AssignExpr) String() string  { return fmt.Sprintf("%s = %s", a.Target, a.Value) }

// UpdateOp enumerates the operators accepted after `target :` in an
// update statement (spec.md §4.2).
type UpdateOp int

const (
	UpdAdd UpdateOp = iota
	UpdSub
	UpdMul
	UpdDiv
	UpdMod
	UpdPower // Count is the run length (exponent = 1 + count/2)
	UpdRoot  // Count is the run length (degree = count+1)
	UpdBitAnd
	UpdBitOr
	UpdBitXor
	UpdShl
	UpdShr
	UpdNullish // ??
	UpdMin     // <
	UpdMax     // >
	UpdTrig    // ~-run, Count selects sin/cos/tan
	UpdClamp
	UpdWrap
)

// UpdateStmt is `target :OP [value]`.
type UpdateStmt struct {
	Base
	Target Expression
	Op     UpdateOp
	Count  int
	Value  Expression  // nil when the operator needs no operand (e.g. clamp/wrap with only a range)
	Range  *RangeLiteral // set for UpdClamp / UpdWrap
}

func (u *UpdateStmt) statementNode() {}
func (u *UpdateStmt) String() string { return fmt.Sprintf("%s :%d", u.Target, u.Op) }

// ClampExpr is `value ▷ [lo..hi]` / `value clamp [lo..hi]`.
type ClampExpr struct {
	Base
	Value Expression
	Range *RangeLiteral
}

func (c *ClampExpr) expressionNode() {}
func (c *ClampExpr) String() string  { return fmt.Sprintf("(%s clamp)", c.Value) }

// WrapExpr is `value ↻ [lo..hi)` / `value wrap [lo..hi)`.
type WrapExpr struct {
	Base
	Value Expression
	Range *RangeLiteral
}

func (w *WrapExpr) expressionNode() {}
func (w *WrapExpr) String() string  { return fmt.Sprintf("(%s wrap)", w.Value) }
