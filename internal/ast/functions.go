package ast

import "fmt"

// FunctionDecl is `function NAME params => BODY` (spec.md §4.2), with
// every `function|func|fun|fn|functi|f` spelling accepted identically by
// the lexer's keyword table.
type FunctionDecl struct {
	Base
	Name   string
	Params []string
	Body   *BlockStatement
}

func (f *FunctionDecl) statementNode() {}
func (f *FunctionDecl) String() string { return fmt.Sprintf("function %s(...)", f.Name) }
