package interp

import (
	"math"

	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

func mapBoolState(s ast.BoolState) BoolState {
	switch s {
	case ast.True:
		return True
	case ast.Maybe:
		return Maybe
	default:
		return False
	}
}

// evalPrefix implements the unary prefix operators of spec.md §4.2/§4.5.
func (i *Interpreter) evalPrefix(e *ast.PrefixExpr) (Value, error) {
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.PrefixNegate:
		return Number{Value: -toNumber(right)}, nil
	case ast.PrefixAbs:
		return Number{Value: math.Abs(toNumber(right))}, nil
	case ast.PrefixNot:
		b, ok := right.(Bool)
		if ok {
			switch b.State {
			case True:
				return Bool{State: False}, nil
			case False:
				return Bool{State: True}, nil
			default:
				return Bool{State: Maybe}, nil
			}
		}
		if isUndefinedValue(right) {
			return Undefined{}, nil
		}
		return nil, langerror.New(langerror.Type, e.Pos(), "cannot negate a %s", right.Type())
	case ast.PrefixTrig:
		idx := (e.Count - 1) % 3
		n := toNumber(right)
		switch idx {
		case 0:
			return Number{Value: math.Sin(n)}, nil
		case 1:
			return Number{Value: math.Cos(n)}, nil
		default:
			return Number{Value: math.Tan(n)}, nil
		}
	case ast.PrefixRoot:
		degree := float64(e.Count + 1)
		return Number{Value: math.Pow(toNumber(right), 1/degree)}, nil
	default:
		return nil, langerror.New(langerror.Type, e.Pos(), "unsupported prefix operator")
	}
}

// evalInfix implements the binary operator table of spec.md §4.5,
// including the prefix-`;` negation carried on InfixExpr.Negated.
func (i *Interpreter) evalInfix(e *ast.InfixExpr) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	result, ok := applyInfix(e.Op, left, right)
	if !ok {
		return nil, langerror.New(langerror.Type, e.Pos(), "unsupported binary operator")
	}

	if e.Negated {
		if b, ok := result.(Bool); ok {
			if b.State == True {
				result = Bool{State: False}
			} else if b.State == False {
				result = Bool{State: True}
			}
		}
	}
	return result, nil
}

func applyInfix(op ast.InfixOp, left, right Value) (Value, bool) {
	switch op {
	case ast.OpAdd:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if lok && rok {
			return Number{Value: ln.Value + rn.Value}, true
		}
		return Str{Value: left.String() + right.String()}, true
	case ast.OpSub:
		return Number{Value: toNumber(left) - toNumber(right)}, true
	case ast.OpMul:
		return Number{Value: toNumber(left) * toNumber(right)}, true
	case ast.OpDiv:
		r := toNumber(right)
		if math.Abs(r) < epsilon {
			return Undefined{}, true
		}
		return Number{Value: toNumber(left) / r}, true
	case ast.OpMod:
		return Number{Value: math.Mod(toNumber(left), toNumber(right))}, true
	case ast.OpBitAnd:
		return Number{Value: float64(int64(toNumber(left)) & int64(toNumber(right)))}, true
	case ast.OpBitOr:
		return Number{Value: float64(int64(toNumber(left)) | int64(toNumber(right)))}, true
	case ast.OpBitXor:
		return Number{Value: float64(int64(toNumber(left)) ^ int64(toNumber(right)))}, true
	case ast.OpShl:
		return Number{Value: float64(int64(toNumber(left)) << uint64(int64(toNumber(right))))}, true
	case ast.OpShr:
		return Number{Value: float64(int64(toNumber(left)) >> uint64(int64(toNumber(right))))}, true
	case ast.OpVeryLooseEq:
		return Bool{State: boolOf(displayEqualValues(left, right))}, true
	case ast.OpLooseEq:
		return Bool{State: boolOf(looseEqual(left, right))}, true
	case ast.OpStrictEq:
		return Bool{State: boolOf(strictEqual(left, right))}, true
	case ast.OpVeryStrictEq:
		return Bool{State: boolOf(veryStrictEqual(left, right))}, true
	case ast.OpLt:
		return Bool{State: boolOf(toNumber(left) < toNumber(right))}, true
	case ast.OpLe:
		return Bool{State: boolOf(toNumber(left) <= toNumber(right))}, true
	case ast.OpGt:
		return Bool{State: boolOf(toNumber(left) > toNumber(right))}, true
	case ast.OpGe:
		return Bool{State: boolOf(toNumber(left) >= toNumber(right))}, true
	case ast.OpMin:
		return Number{Value: math.Min(toNumber(left), toNumber(right))}, true
	case ast.OpMax:
		return Number{Value: math.Max(toNumber(left), toNumber(right))}, true
	case ast.OpRoot:
		degree := toNumber(right)
		if math.Abs(degree) < epsilon {
			return Undefined{}, true
		}
		return Number{Value: math.Pow(toNumber(left), 1/degree)}, true
	default:
		return nil, false
	}
}

func boolOf(b bool) BoolState {
	if b {
		return True
	}
	return False
}

// displayEqualValues implements the `=` very-loose tier: compare
// display strings of both sides.
func displayEqualValues(a, b Value) bool {
	return a.String() == b.String()
}

// looseEqual implements `==`: same kind compares strict; otherwise
// coerce to number and compare within epsilon (spec.md §4.5).
func looseEqual(a, b Value) bool {
	if sameKind(a, b) {
		return strictEqual(a, b)
	}
	return math.Abs(toNumber(a)-toNumber(b)) < epsilon
}

func sameKind(a, b Value) bool {
	switch a.(type) {
	case Number:
		_, ok := b.(Number)
		return ok
	case Str:
		_, ok := b.(Str)
		return ok
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case *Array:
		_, ok := b.(*Array)
		return ok
	case *Object:
		_, ok := b.(*Object)
		return ok
	default:
		return false
	}
}

// veryStrictEqual implements `====`: strict equality plus, for
// numbers, an exact string round-trip match (spec.md §4.5).
func veryStrictEqual(a, b Value) bool {
	if !strictEqual(a, b) {
		return false
	}
	if _, ok := a.(Number); ok {
		return a.String() == b.String()
	}
	return true
}

// evalPostfix applies Ops, in order, to an assignable Target, writing
// back after each step and returning the value from before the chain
// began (the classic postfix-increment convention), per spec.md §4.2/
// §4.5's "desugared into an update that returns the pre-value".
func (i *Interpreter) evalPostfix(e *ast.PostfixExpr) (Value, error) {
	current, err := i.eval(e.Target)
	if err != nil {
		return nil, err
	}
	preValue := current

	for _, op := range e.Ops {
		n := toNumber(current)
		switch op.Kind {
		case ast.PostfixIncr:
			current = Number{Value: n + 1}
		case ast.PostfixDecr:
			current = Number{Value: n - 1}
		case ast.PostfixPower:
			exp := 1 + float64(op.Count)/2
			current = Number{Value: math.Pow(n, exp)}
		}
		if err := i.writeTarget(e.Target, current); err != nil {
			return nil, err
		}
	}
	return preValue, nil
}

// evalConditional dispatches `cond ? ... : ... :: ... ::: ...` on the
// condition's boolean state, falling back to Undefined's branch, else
// truthiness (spec.md §4.5). A nil branch evaluates to Undefined.
func (i *Interpreter) evalConditional(e *ast.ConditionalExpr) (Value, error) {
	cond, err := i.eval(e.Cond)
	if err != nil {
		return nil, err
	}

	var branch ast.Expression
	switch {
	case isTrue(cond):
		branch = e.WhenTrue
	case isMaybe(cond):
		branch = e.WhenMaybe
	case isUndefinedValue(cond):
		branch = e.WhenUndefined
	default:
		branch = e.WhenFalse
	}
	if branch == nil {
		return Undefined{}, nil
	}
	return i.eval(branch)
}

// writeTarget resolves an assignable expression (an Identifier or an
// IndexExpr) for writes shared by postfix, assignment, and
// update-statement evaluation; reads go through the ordinary eval path
// (spec.md §4.5).
func (i *Interpreter) writeTarget(target ast.Expression, value Value) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return i.writeIdentifier(t, value)
	case *ast.IndexExpr:
		return i.writeIndex(t, value)
	default:
		return langerror.New(langerror.Type, target.Pos(), "target is not assignable")
	}
}

func (i *Interpreter) writeIdentifier(ident *ast.Identifier, value Value) error {
	if i.consts.Has(ident.Name) {
		return langerror.New(langerror.Name, ident.Pos(), "%q is write-once and cannot be reassigned", ident.Name)
	}
	if frame := i.calls.Top(); frame != nil {
		if _, ok := frame.Locals[ident.Name]; ok {
			frame.Locals[ident.Name] = value
			return i.notifyMutation(ident.Name)
		}
	}
	if err := i.vars.Assign(ident.Name, value); err != nil {
		return langerror.New(langerror.Name, ident.Pos(), "%s", err.Error())
	}
	return i.notifyMutation(ident.Name)
}

func (i *Interpreter) writeIndex(idx *ast.IndexExpr, value Value) error {
	target, err := i.eval(idx.Target)
	if err != nil {
		return err
	}
	switch t := target.(type) {
	case *Array:
		key, err := i.evalNumber(idx.Index)
		if err != nil {
			return err
		}
		next := t.WithSet(key, value)
		return i.writeTarget(idx.Target, next)
	case *Object:
		name, err := i.indexKeyName(idx.Index)
		if err != nil {
			return err
		}
		if _, isStatic := t.Class.StaticFields[name]; isStatic {
			t.Class.StaticFields[name] = value
			i.fields.Record(t.Class.Name, name, true, value)
			return nil
		}
		t.Fields[name] = value
		i.fields.Record(t.Class.Name, name, false, value)
		return nil
	default:
		return langerror.New(langerror.Type, idx.Pos(), "cannot index-assign a %s", target.Type())
	}
}

// rangeBounds evaluates a RangeLiteral's Low/High expressions into
// concrete numeric bounds alongside their inclusivity flags.
func (i *Interpreter) rangeBounds(r *ast.RangeLiteral) (lo, hi float64, loIncl, hiIncl bool, err error) {
	lv, err := i.eval(r.Low)
	if err != nil {
		return 0, 0, false, false, err
	}
	hv, err := i.eval(r.High)
	if err != nil {
		return 0, 0, false, false, err
	}
	return toNumber(lv), toNumber(hv), r.LowInclusive, r.HighInclusive, nil
}

// clampValue implements spec.md §4.5's clamp: degenerate/NaN interval
// yields Undefined; otherwise pins value into [lo,hi], nudging past an
// exclusive endpoint to its next representable neighbour.
func clampValue(value, lo, hi float64, loIncl, hiIncl bool) Value {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsNaN(value) || hi < lo {
		return Undefined{}
	}
	effLo, effHi := lo, hi
	if !loIncl {
		effLo = math.Nextafter(lo, math.Inf(1))
	}
	if !hiIncl {
		effHi = math.Nextafter(hi, math.Inf(-1))
	}
	if value < effLo {
		return Number{Value: effLo}
	}
	if value > effHi {
		return Number{Value: effHi}
	}
	return Number{Value: value}
}

// wrapValue implements spec.md §4.5's wrap: width must be positive or
// the result is Undefined; exclusive endpoints are nudged first.
func wrapValue(value, lo, hi float64, loIncl, hiIncl bool) Value {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsNaN(value) {
		return Undefined{}
	}
	if !loIncl {
		lo = math.Nextafter(lo, math.Inf(1))
	}
	if !hiIncl {
		hi = math.Nextafter(hi, math.Inf(-1))
	}
	width := hi - lo
	if width <= 0 {
		return Undefined{}
	}
	wrapped := math.Mod(math.Mod(value-lo, width)+width, width) + lo
	return Number{Value: wrapped}
}

func (i *Interpreter) evalClamp(e *ast.ClampExpr) (Value, error) {
	v, err := i.eval(e.Value)
	if err != nil {
		return nil, err
	}
	lo, hi, loIncl, hiIncl, err := i.rangeBounds(e.Range)
	if err != nil {
		return nil, err
	}
	return clampValue(toNumber(v), lo, hi, loIncl, hiIncl), nil
}

func (i *Interpreter) evalWrap(e *ast.WrapExpr) (Value, error) {
	v, err := i.eval(e.Value)
	if err != nil {
		return nil, err
	}
	lo, hi, loIncl, hiIncl, err := i.rangeBounds(e.Range)
	if err != nil {
		return nil, err
	}
	return wrapValue(toNumber(v), lo, hi, loIncl, hiIncl), nil
}

// execUpdateStatement implements `target :OP [value]` (spec.md §4.5).
func (i *Interpreter) execUpdateStatement(s *ast.UpdateStmt) error {
	current, err := i.eval(s.Target)
	if err != nil {
		return err
	}
	cur := toNumber(current)

	var next Value
	switch s.Op {
	case ast.UpdAdd:
		v, err := i.eval(s.Value)
		if err != nil {
			return err
		}
		next, _ = applyInfix(ast.OpAdd, current, v)
	case ast.UpdSub:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: cur - v}
	case ast.UpdMul:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: cur * v}
	case ast.UpdDiv:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		if math.Abs(v) < epsilon {
			next = Undefined{}
		} else {
			next = Number{Value: cur / v}
		}
	case ast.UpdMod:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: math.Mod(cur, v)}
	case ast.UpdPower:
		next = Number{Value: math.Pow(cur, 1+float64(s.Count)/2)}
	case ast.UpdRoot:
		next = Number{Value: math.Pow(cur, 1/float64(s.Count+1))}
	case ast.UpdBitAnd:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: float64(int64(cur) & int64(v))}
	case ast.UpdBitOr:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: float64(int64(cur) | int64(v))}
	case ast.UpdBitXor:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: float64(int64(cur) ^ int64(v))}
	case ast.UpdShl:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: float64(int64(cur) << uint64(int64(v)))}
	case ast.UpdShr:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: float64(int64(cur) >> uint64(int64(v)))}
	case ast.UpdNullish:
		if isUndefinedValue(current) {
			v, err := i.eval(s.Value)
			if err != nil {
				return err
			}
			next = v
		} else {
			next = current
		}
	case ast.UpdMin:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: math.Min(cur, v)}
	case ast.UpdMax:
		v, err := i.evalNumber(s.Value)
		if err != nil {
			return err
		}
		next = Number{Value: math.Max(cur, v)}
	case ast.UpdTrig:
		idx := (s.Count - 1) % 3
		switch idx {
		case 0:
			next = Number{Value: math.Sin(cur)}
		case 1:
			next = Number{Value: math.Cos(cur)}
		default:
			next = Number{Value: math.Tan(cur)}
		}
	case ast.UpdClamp:
		lo, hi, loIncl, hiIncl, err := i.rangeBounds(s.Range)
		if err != nil {
			return err
		}
		next = clampValue(cur, lo, hi, loIncl, hiIncl)
	case ast.UpdWrap:
		delta := 0.0
		if s.Value != nil {
			v, err := i.evalNumber(s.Value)
			if err != nil {
				return err
			}
			delta = v
		}
		lo, hi, loIncl, hiIncl, err := i.rangeBounds(s.Range)
		if err != nil {
			return err
		}
		next = wrapValue(cur+delta, lo, hi, loIncl, hiIncl)
	default:
		return langerror.New(langerror.Type, s.Pos(), "unsupported update operator")
	}

	return i.writeTarget(s.Target, next)
}
