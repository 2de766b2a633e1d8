package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dreamberd-lang/dreamberd/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseProgram(src)
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	return prog
}

func TestBasicVarDecl(t *testing.T) {
	prog := mustParse(t, `var var x = 1!`)
	require.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, ast.VarVar, decl.Mutability)
	require.Equal(t, 1, decl.Priority)
	ident, ok := decl.Target.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)
	num, ok := decl.Value.(*ast.NumberLiteral)
	require.True(t, ok)
	require.Equal(t, float64(1), num.Value)
}

func TestElevatedConstDecl(t *testing.T) {
	prog := mustParse(t, `const const const PI = 3!!!`)
	decl := prog.Statements[0].(*ast.VarDecl)
	require.Equal(t, ast.ConstConst, decl.Mutability)
	require.True(t, decl.Elevated)
	require.Equal(t, 3, decl.Priority)
}

func TestLifetimeSuffixes(t *testing.T) {
	prog := mustParse(t, `var var a<5> = 1!`)
	decl := prog.Statements[0].(*ast.VarDecl)
	require.NotNil(t, decl.Lifetime)
	require.Equal(t, ast.LifetimeLines, decl.Lifetime.Kind)
	require.Equal(t, float64(5), decl.Lifetime.Value)

	prog = mustParse(t, `var var b<5s> = 1!`)
	decl = prog.Statements[0].(*ast.VarDecl)
	require.Equal(t, ast.LifetimeSeconds, decl.Lifetime.Kind)

	prog = mustParse(t, `var var c<Infinity> = 1!`)
	decl = prog.Statements[0].(*ast.VarDecl)
	require.Equal(t, ast.LifetimeInfinity, decl.Lifetime.Kind)
}

func TestWhitespaceWeightedPrecedence(t *testing.T) {
	// Equal (zero) spacing around both operators: base tiers break the
	// tie as usual, '*' binds tighter -> 1 + (2*3).
	prog := mustParse(t, `x = 1+2*3!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	add, ok := assign.Value.(*ast.InfixExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, add.Op)
	mul, ok := add.Right.(*ast.InfixExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, mul.Op)

	// Tight '+' but loosely spaced '*' inverts the usual binding ->
	// (1+2) * 3, since fewer spaces always wins regardless of base tier.
	prog = mustParse(t, `x = 1+2 * 3!`)
	assign = prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	mul2, ok := assign.Value.(*ast.InfixExpr)
	require.True(t, ok, "expected top-level * due to its wider spacing, got %T", assign.Value)
	require.Equal(t, ast.OpMul, mul2.Op)
	add2, ok := mul2.Left.(*ast.InfixExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, add2.Op)
}

func TestParensGroupWhileStillCountingAsWhitespace(t *testing.T) {
	// (1 + 2)*3: the parens still group "1 + 2" as a real sub-expression,
	// but contribute zero extra spacing around the glued '*3', so the
	// result is Mul(Add(1,2), 3) rather than the '+' leaking out to the
	// top level.
	prog := mustParse(t, `x = (1 + 2)*3!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	mul, ok := assign.Value.(*ast.InfixExpr)
	require.True(t, ok, "expected top-level *, got %T", assign.Value)
	require.Equal(t, ast.OpMul, mul.Op)
	add, ok := mul.Left.(*ast.InfixExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, add.Op)
}

func TestPrefixNegationOfEquality(t *testing.T) {
	prog := mustParse(t, `x = a ;== b!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	eq, ok := assign.Value.(*ast.InfixExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpLooseEq, eq.Op)
	require.True(t, eq.Negated)
}

func TestParenlessCall(t *testing.T) {
	prog := mustParse(t, `print a, b!`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "print", callee.Name)
	require.Len(t, call.Args, 2)
}

func TestParenedCall(t *testing.T) {
	prog := mustParse(t, `print(a, b)!`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestGluedIndexingVsArrayLiteral(t *testing.T) {
	prog := mustParse(t, `x = arr[0]!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	idx, ok := assign.Value.(*ast.IndexExpr)
	require.True(t, ok)
	target, ok := idx.Target.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "arr", target.Name)
}

func TestArrayLiteral(t *testing.T) {
	prog := mustParse(t, `x = [1, 2, 3]!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	lit, ok := assign.Value.(*ast.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, lit.Elements, 3)
}

func TestRangeLiteral(t *testing.T) {
	prog := mustParse(t, `x = [1..5)!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	r, ok := assign.Value.(*ast.RangeLiteral)
	require.True(t, ok)
	require.True(t, r.LowInclusive)
	require.False(t, r.HighInclusive)
}

func TestConditionalExpression(t *testing.T) {
	prog := mustParse(t, `x = cond ? 1 : 2 :: 3 ::: 4!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	c, ok := assign.Value.(*ast.ConditionalExpr)
	require.True(t, ok)
	require.NotNil(t, c.WhenTrue)
	require.NotNil(t, c.WhenFalse)
	require.NotNil(t, c.WhenMaybe)
	require.NotNil(t, c.WhenUndefined)
}

func TestUpdateStatementArithmetic(t *testing.T) {
	prog := mustParse(t, `x :+ 1!`)
	stmt, ok := prog.Statements[0].(*ast.UpdateStmt)
	require.True(t, ok)
	require.Equal(t, ast.UpdAdd, stmt.Op)
	require.NotNil(t, stmt.Value)
}

func TestUpdateStatementPowerRun(t *testing.T) {
	prog := mustParse(t, `x :**!`)
	stmt := prog.Statements[0].(*ast.UpdateStmt)
	require.Equal(t, ast.UpdPower, stmt.Op)
	require.Equal(t, 2, stmt.Count)
}

func TestUpdateStatementClamp(t *testing.T) {
	prog := mustParse(t, `x :clamp [0..10]!`)
	stmt := prog.Statements[0].(*ast.UpdateStmt)
	require.Equal(t, ast.UpdClamp, stmt.Op)
	require.NotNil(t, stmt.Range)
}

func TestPostfixIncrDecrChain(t *testing.T) {
	prog := mustParse(t, `x++--++!`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	p, ok := stmt.Expr.(*ast.PostfixExpr)
	require.True(t, ok)
	require.Equal(t, []ast.PostfixKind{ast.PostfixIncr, ast.PostfixDecr, ast.PostfixIncr},
		[]ast.PostfixKind{p.Ops[0].Kind, p.Ops[1].Kind, p.Ops[2].Kind})
}

func TestWhenConditionForm(t *testing.T) {
	prog := mustParse(t, `when x > 5 { print x! }`)
	w, ok := prog.Statements[0].(*ast.WhenStatement)
	require.True(t, ok)
	require.NotNil(t, w.Condition)
	require.Nil(t, w.Target)
}

func TestWhenPatternForm(t *testing.T) {
	prog := mustParse(t, `when x matches y where y > 0 { print y! }`)
	w := prog.Statements[0].(*ast.WhenStatement)
	require.NotNil(t, w.Target)
	require.NotNil(t, w.Pattern)
	require.NotNil(t, w.Guard)
}

func TestIfIdkElseAnyOrder(t *testing.T) {
	prog := mustParse(t, `if x { a! } else { b! } idk { c! }`)
	stmt := prog.Statements[0].(*ast.IfStatement)
	require.NotNil(t, stmt.Then)
	require.NotNil(t, stmt.Else)
	require.NotNil(t, stmt.Idk)
}

func TestFunctionDeclSingleExprBody(t *testing.T) {
	prog := mustParse(t, `function double x => x * 2!`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Equal(t, "double", fn.Name)
	require.Equal(t, []string{"x"}, fn.Params)
	require.Len(t, fn.Body.Statements, 1)
	_, ok = fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
}

func TestFunctionAliasSpellings(t *testing.T) {
	for _, kw := range []string{"function", "func", "fun", "fn", "functi", "f"} {
		prog := mustParse(t, kw+` double x => x * 2!`)
		_, ok := prog.Statements[0].(*ast.FunctionDecl)
		require.True(t, ok, "keyword %q should parse as a function decl", kw)
	}
}

func TestClassDecl(t *testing.T) {
	prog := mustParse(t, `
Point is a class {
	x : default 0!
	static count : default 0!
	reset => 0!
}`)
	cls, ok := prog.Statements[0].(*ast.ClassDecl)
	require.True(t, ok)
	require.Equal(t, "Point", cls.Name)
	require.Len(t, cls.Properties, 2)
	require.True(t, cls.Properties[1].Static)
	require.Len(t, cls.Methods, 1)
}

func TestDestructuringArrayPattern(t *testing.T) {
	prog := mustParse(t, `var var [a, b=2, ...rest] = [1, 2, 3]!`)
	decl := prog.Statements[0].(*ast.VarDecl)
	pat, ok := decl.Target.(*ast.ArrayPattern)
	require.True(t, ok)
	require.Len(t, pat.Elements, 2)
	require.Equal(t, "rest", pat.Rest)
}

func TestNumberWordLiteral(t *testing.T) {
	prog := mustParse(t, `x = twenty one!`)
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	n, ok := assign.Value.(*ast.NumberWordsExpr)
	require.True(t, ok)
	require.Equal(t, float64(21), n.Value)
}

func TestDebugTerminator(t *testing.T) {
	prog := mustParse(t, `x?`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	require.True(t, stmt.Debug)
}

func TestDeleteReverseForward(t *testing.T) {
	prog := mustParse(t, `delete x! reverse! forward!`)
	require.Len(t, prog.Statements, 3)
	_, ok := prog.Statements[0].(*ast.DeleteStatement)
	require.True(t, ok)
	_, ok = prog.Statements[1].(*ast.ReverseStatement)
	require.True(t, ok)
	_, ok = prog.Statements[2].(*ast.ForwardStatement)
	require.True(t, ok)
}
