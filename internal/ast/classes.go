package ast

import "fmt"

// MethodDecl is a method declaration inside a ClassDecl body, optionally
// prefixed `static` (spec.md §4.2).
type MethodDecl struct {
	Base
	Name   string
	Static bool
	Params []string
	Body   *BlockStatement
}

// PropertyDecl is `[static] [fallback] NAME : default EXPR` inside a
// ClassDecl body.
type PropertyDecl struct {
	Base
	Name     string
	Static   bool
	Fallback bool
	Default  Expression
}

// ClassDecl is `NAME is a class { ... }` (spec.md §4.2). Contents are
// partitioned into methods and properties by the parser; the evaluator
// further splits methods into static/instance tables (spec.md §4.5).
type ClassDecl struct {
	Base
	Name       string
	Methods    []*MethodDecl
	Properties []*PropertyDecl
}

func (c *ClassDecl) statementNode() {}
func (c *ClassDecl) String() string { return fmt.Sprintf("class %s", c.Name) }
