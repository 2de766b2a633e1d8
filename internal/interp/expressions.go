package interp

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// eval evaluates expr and applies the deletion check that runs at the
// end of every expression evaluation (spec.md §4.5: "the check runs at
// the end of every expression evaluation").
func (i *Interpreter) eval(expr ast.Expression) (Value, error) {
	v, err := i.evalInner(expr)
	if err != nil {
		return nil, err
	}
	if i.deleted.IsDeleted(v) {
		return nil, langerror.New(langerror.Deletion, expr.Pos(), "value '%s' has been deleted", v.String())
	}
	return v, nil
}

func (i *Interpreter) evalInner(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return Number{Value: e.Value}, nil
	case *ast.StringLiteral:
		return Str{Value: e.Value}, nil
	case *ast.BooleanLiteral:
		return Bool{State: mapBoolState(e.State)}, nil
	case *ast.NullLiteral:
		return Null{}, nil
	case *ast.UndefinedLiteral:
		return Undefined{}, nil
	case *ast.NumberWordsExpr:
		return i.evalNumberWords(e)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(e)
	case *ast.RangeLiteral:
		return i.evalRangeAsArray(e)
	case *ast.PrefixExpr:
		return i.evalPrefix(e)
	case *ast.InfixExpr:
		return i.evalInfix(e)
	case *ast.PostfixExpr:
		return i.evalPostfix(e)
	case *ast.ConditionalExpr:
		return i.evalConditional(e)
	case *ast.CallExpr:
		return i.evalCall(e)
	case *ast.IndexExpr:
		return i.evalIndex(e)
	case *ast.AssignExpr:
		return i.evalAssign(e)
	case *ast.ClampExpr:
		return i.evalClamp(e)
	case *ast.WrapExpr:
		return i.evalWrap(e)
	case *ast.Identifier:
		return i.resolveIdentifier(e.Name)
	default:
		return nil, langerror.New(langerror.Context, expr.Pos(), "unsupported expression")
	}
}

// evalNumberWords applies spec.md §4.2's "first word shadows a declared
// name" rule at evaluation time, the one rule the parser itself cannot
// decide since it has no runtime scope state. When shadowed, the run
// cannot be un-collapsed back into separate identifier tokens, so this
// falls back to resolving the first word alone; the remaining words of
// the run are dropped.
func (i *Interpreter) evalNumberWords(e *ast.NumberWordsExpr) (Value, error) {
	if len(e.Words) > 0 && i.isDeclaredAnywhere(e.Words[0]) {
		return i.resolveIdentifier(e.Words[0])
	}
	return Number{Value: e.Value}, nil
}

func (i *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral) (Value, error) {
	arr := NewArray()
	for idx, elExpr := range e.Elements {
		v, err := i.eval(elExpr)
		if err != nil {
			return nil, err
		}
		arr.Elements[float64(idx)-1] = v
	}
	return arr, nil
}

// evalRangeAsArray materializes a standalone `[lo..hi]`-family literal
// into an Array of its integer sequence. spec.md §3's Value variants
// list has no dedicated Range kind — Range syntax is otherwise only
// consumed directly by clamp/wrap/update-statement parsing — so a range
// used as a plain expression produces the most natural value: its
// enumerated sequence (documented in DESIGN.md as an Open Question
// resolution).
func (i *Interpreter) evalRangeAsArray(e *ast.RangeLiteral) (Value, error) {
	lo, hi, loIncl, hiIncl, err := i.rangeBounds(e)
	if err != nil {
		return nil, err
	}
	start := lo
	if !loIncl {
		start = lo + 1
	}
	end := hi
	if !hiIncl {
		end = hi - 1
	}
	arr := NewArray()
	idx := 0
	for v := start; v <= end+epsilon; v++ {
		arr.Elements[float64(idx)-1] = Number{Value: v}
		idx++
	}
	return arr, nil
}

// resolveIdentifier implements spec.md §4.5's lookup chain: innermost
// call-frame local → const store → variable store → class registry
// (singleton instance) → fallback to a string literal of the name.
func (i *Interpreter) resolveIdentifier(name string) (Value, error) {
	if frame := i.calls.Top(); frame != nil {
		if v, ok := frame.Locals[name]; ok {
			return v, nil
		}
	}
	if v, ok := i.consts.TryGet(name); ok {
		return v, nil
	}
	if v, ok := i.vars.Get(name); ok {
		return v, nil
	}
	if def, ok := i.classes.Lookup(name); ok {
		return i.classInstance(def)
	}
	return Str{Value: name}, nil
}

// classInstance returns the singleton instance for def, creating it
// (and initializing every declared non-static property) on first
// reference (spec.md §4.5).
func (i *Interpreter) classInstance(def *ClassDefinition) (Value, error) {
	if inst, ok := i.classes.Instance(def.Name); ok {
		return inst, nil
	}
	obj := &Object{Class: def, Fields: make(map[string]Value)}
	for _, p := range def.Properties {
		if p.Static {
			continue
		}
		v, err := i.eval(p.Default)
		if err != nil {
			return nil, err
		}
		obj.Fields[p.Name] = v
		i.fields.Record(def.Name, p.Name, false, v)
	}
	i.classes.SetInstance(def.Name, obj)
	return obj, nil
}

func (i *Interpreter) evalIndex(e *ast.IndexExpr) (Value, error) {
	target, err := i.eval(e.Target)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *Array:
		key, err := i.evalNumber(e.Index)
		if err != nil {
			return nil, err
		}
		return t.Get(key), nil
	case *Object:
		name, err := i.indexKeyName(e.Index)
		if err != nil {
			return nil, err
		}
		if v, ok := t.Fields[name]; ok {
			return v, nil
		}
		if md, ok := t.Class.InstanceMethods[name]; ok {
			return &BoundMethod{Receiver: t, Method: md}, nil
		}
		// Static members are reached off the same singleton, since
		// referencing a class name always yields that one instance
		// (spec.md §4.5).
		if v, ok := t.Class.StaticFields[name]; ok {
			return v, nil
		}
		if md, ok := t.Class.StaticMethods[name]; ok {
			return &BoundMethod{Receiver: t, Method: md}, nil
		}
		if t.Class.InstanceFallback != "" && t.Class.InstanceFallback != name {
			if v, ok := t.Fields[t.Class.InstanceFallback]; ok {
				return v, nil
			}
		}
		if t.Class.StaticFallback != "" && t.Class.StaticFallback != name {
			if v, ok := t.Class.StaticFields[t.Class.StaticFallback]; ok {
				return v, nil
			}
		}
		return Undefined{}, nil
	default:
		return nil, langerror.New(langerror.Type, e.Pos(), "cannot index a %s", target.Type())
	}
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) (Value, error) {
	value, err := i.eval(e.Value)
	if err != nil {
		return nil, err
	}
	if err := i.writeTarget(e.Target, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evalArgs(args []ast.Expression) ([]Value, error) {
	values := make([]Value, len(args))
	for idx, a := range args {
		v, err := i.eval(a)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	return values, nil
}

// evalCall implements spec.md §4.5's call dispatch: a builtin name, a
// user function name, or an expression that yields a BoundMethod.
func (i *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		switch ident.Name {
		case "previous", "next", "history":
			return i.evalHistoryBuiltin(ident.Name, e)
		}
		if isBuiltin(ident.Name) {
			args, err := i.evalArgs(e.Args)
			if err != nil {
				return nil, err
			}
			return i.callBuiltin(ident.Name, args, e.Pos())
		}
		if fn, ok := i.functions[ident.Name]; ok {
			args, err := i.evalArgs(e.Args)
			if err != nil {
				return nil, err
			}
			return i.invokeFunction(fn, args, nil)
		}
	}

	callee, err := i.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	bm, ok := callee.(*BoundMethod)
	if !ok {
		return nil, langerror.New(langerror.Type, e.Pos(), "%s is not callable", callee.Type())
	}
	args, err := i.evalArgs(e.Args)
	if err != nil {
		return nil, err
	}
	return i.invokeMethod(bm, args)
}

// evalHistoryBuiltin handles previous/next/history, which need the raw
// argument expression naming a variable or a class-instance field
// rather than its evaluated value (spec.md §6: "moves variable or field
// x back one step in history").
func (i *Interpreter) evalHistoryBuiltin(name string, e *ast.CallExpr) (Value, error) {
	if len(e.Args) != 1 {
		return nil, langerror.New(langerror.Shape, e.Pos(), "%s expects exactly one argument", name)
	}
	switch arg := e.Args[0].(type) {
	case *ast.Identifier:
		switch name {
		case "previous":
			v, ok := i.vars.TryPrevious(arg.Name)
			if !ok {
				return Undefined{}, nil
			}
			return v, nil
		case "next":
			v, ok := i.vars.TryNext(arg.Name)
			if !ok {
				return Undefined{}, nil
			}
			return v, nil
		default: // history
			hist, _, ok := i.vars.History(arg.Name)
			if !ok {
				return Undefined{}, nil
			}
			return NewArrayFromSlice(hist), nil
		}
	case *ast.IndexExpr:
		return i.fieldHistoryBuiltin(name, arg)
	default:
		return nil, langerror.New(langerror.Shape, e.Pos(), "%s expects a bare variable name or field access", name)
	}
}

// fieldHistoryBuiltin is evalHistoryBuiltin's field-access case: idx
// must evaluate its Target to an Object, whose class name together with
// the resolved field name key the FieldHistoryStore.
func (i *Interpreter) fieldHistoryBuiltin(name string, idx *ast.IndexExpr) (Value, error) {
	target, err := i.eval(idx.Target)
	if err != nil {
		return nil, err
	}
	obj, ok := target.(*Object)
	if !ok {
		return nil, langerror.New(langerror.Type, idx.Pos(), "%s's field argument must index an instance", name)
	}
	fieldName, err := i.indexKeyName(idx.Index)
	if err != nil {
		return nil, err
	}
	_, static := obj.Class.StaticFields[fieldName]
	switch name {
	case "previous":
		v, ok := i.fields.TryPrevious(obj.Class.Name, fieldName, static)
		if !ok {
			return Undefined{}, nil
		}
		if static {
			obj.Class.StaticFields[fieldName] = v
		} else {
			obj.Fields[fieldName] = v
		}
		return v, nil
	case "next":
		v, ok := i.fields.TryNext(obj.Class.Name, fieldName, static)
		if !ok {
			return Undefined{}, nil
		}
		if static {
			obj.Class.StaticFields[fieldName] = v
		} else {
			obj.Fields[fieldName] = v
		}
		return v, nil
	default: // history
		hist, _, ok := i.fields.History(obj.Class.Name, fieldName, static)
		if !ok {
			return Undefined{}, nil
		}
		return NewArrayFromSlice(hist), nil
	}
}

// invokeFunction pushes a call frame binding Params to args (excess
// args dropped, missing args → Undefined), executes the body, and
// catches a Return signal (spec.md §4.5).
func (i *Interpreter) invokeFunction(fn *ast.FunctionDecl, args []Value, receiver *Object) (Value, error) {
	frame := newCallFrame(receiver)
	for idx, p := range fn.Params {
		if idx < len(args) {
			frame.Locals[p] = args[idx]
		} else {
			frame.Locals[p] = Undefined{}
		}
	}
	i.calls.Push(frame)
	defer i.calls.Pop()

	sig, err := i.execBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	if sig.Kind == SigReturn {
		return sig.Value, nil
	}
	return Undefined{}, nil
}

// invokeMethod is invokeFunction with `source` bound to the receiver
// inside the method frame (spec.md §4.5).
func (i *Interpreter) invokeMethod(bm *BoundMethod, args []Value) (Value, error) {
	frame := newCallFrame(bm.Receiver)
	for idx, p := range bm.Method.Params {
		if idx < len(args) {
			frame.Locals[p] = args[idx]
		} else {
			frame.Locals[p] = Undefined{}
		}
	}
	frame.Locals["source"] = bm.Receiver
	i.calls.Push(frame)
	defer i.calls.Pop()

	sig, err := i.execBlock(bm.Method.Body)
	if err != nil {
		return nil, err
	}
	if sig.Kind == SigReturn {
		return sig.Value, nil
	}
	return Undefined{}, nil
}
