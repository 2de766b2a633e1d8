// Package ast defines the DreamBerd abstract syntax tree produced by the
// parser and walked by the evaluator. Every node carries the byte offset
// of the token that introduced it so the evaluator can attach it to a
// langerror.Error.
package ast

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the byte offset of the token this node starts at.
	Pos() int
	String() string
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: the top-level statement list executed
// by the evaluator's bidirectional statement loop (spec.md §4.5).
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

// Base is embedded by every node to supply Pos().
type Base struct {
	Offset int
}

func (b Base) Pos() int { return b.Offset }
