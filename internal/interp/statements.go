package interp

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// execStatement evaluates one statement and returns any non-local
// control-flow signal it raised (spec.md §4.5). stmtIndex is this
// statement's position in the list currently executing, needed for
// lifetime declaration bookkeeping.
func (i *Interpreter) execStatement(stmt ast.Statement, stmtIndex int) (Signal, error) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return i.execBlock(s)
	case *ast.VarDecl:
		return noSignal, i.execVarDecl(s, stmtIndex)
	case *ast.ExpressionStatement:
		return noSignal, i.execExpressionStatement(s)
	case *ast.DeleteStatement:
		return noSignal, i.execDelete(s)
	case *ast.WhenStatement:
		i.registerWhen(s)
		return noSignal, nil
	case *ast.IfStatement:
		return i.execIf(s)
	case *ast.WhileStatement:
		return i.execWhile(s)
	case *ast.BreakStatement:
		if i.loopDepth == 0 {
			return noSignal, langerror.New(langerror.Context, s.Pos(), "break used outside a loop")
		}
		return Signal{Kind: SigBreak}, nil
	case *ast.ContinueStatement:
		if i.loopDepth == 0 {
			return noSignal, langerror.New(langerror.Context, s.Pos(), "continue used outside a loop")
		}
		return Signal{Kind: SigContinue}, nil
	case *ast.TryAgainStatement:
		if i.ifDepth == 0 {
			return noSignal, langerror.New(langerror.Context, s.Pos(), "try again used outside if/else/idk")
		}
		return Signal{Kind: SigTryAgain}, nil
	case *ast.ReturnStatement:
		if i.calls.Depth() == 0 {
			return noSignal, langerror.New(langerror.Context, s.Pos(), "return used outside a function")
		}
		var value Value = Undefined{}
		if s.Value != nil {
			v, err := i.eval(s.Value)
			if err != nil {
				return noSignal, err
			}
			value = v
		}
		return Signal{Kind: SigReturn, Value: value}, nil
	case *ast.FunctionDecl:
		i.functions[s.Name] = s
		return noSignal, nil
	case *ast.ClassDecl:
		return noSignal, i.execClassDecl(s)
	case *ast.UpdateStmt:
		return noSignal, i.execUpdateStatement(s)
	case *ast.ReverseStatement, *ast.ForwardStatement:
		// Handled by execList before reaching here.
		return noSignal, nil
	default:
		return noSignal, langerror.New(langerror.Context, stmt.Pos(), "unsupported statement")
	}
}

// execBlock pushes a scope, runs the bidirectional list executor over
// its statements, and guarantees the scope is popped on every exit
// path — normal, signal, or error (spec.md §4.5, §8).
func (i *Interpreter) execBlock(b *ast.BlockStatement) (Signal, error) {
	i.vars.PushScope()
	defer i.vars.PopScope()
	return i.execList(b.Statements)
}

func (i *Interpreter) execExpressionStatement(s *ast.ExpressionStatement) error {
	v, err := i.eval(s.Expr)
	if err != nil {
		return err
	}
	if s.Debug {
		if ident, ok := s.Expr.(*ast.Identifier); ok {
			i.printHistoryOf(ident.Name)
		} else {
			i.writeln(v.String())
		}
	}
	return nil
}

func (i *Interpreter) printHistoryOf(name string) {
	hist, _, ok := i.vars.History(name)
	if !ok {
		i.writeln(Undefined{}.String())
		return
	}
	i.writeln(NewArrayFromSlice(hist).String())
}

// NewArrayFromSlice builds an Array keyed from -1 upward, the same
// convention as an array literal (spec.md §4.5).
func NewArrayFromSlice(values []Value) *Array {
	arr := NewArray()
	for idx, v := range values {
		arr.Elements[float64(idx)-1] = v
	}
	return arr
}

func (i *Interpreter) execVarDecl(s *ast.VarDecl, stmtIndex int) error {
	value, err := i.eval(s.Value)
	if err != nil {
		return err
	}

	bindings, err := i.destructure(s.Target, value)
	if err != nil {
		return err
	}

	if s.Elevated {
		for name, v := range bindings {
			i.consts.Define(name, v)
			if err := i.notifyMutation(name); err != nil {
				return err
			}
		}
		return nil
	}

	var lifetime *LifetimeState
	if s.Lifetime != nil {
		lifetime = &LifetimeState{
			Kind:      s.Lifetime.Kind,
			Value:     s.Lifetime.Value,
			DeclIndex: stmtIndex,
			Created:   i.now(),
		}
	}
	for name, v := range bindings {
		i.vars.Declare(name, s.Mutability, v, s.Priority, lifetime)
		if err := i.notifyMutation(name); err != nil {
			return err
		}
	}
	return nil
}

// destructure binds pat against value, evaluating per-field/per-element
// default expressions against a missing source value (spec.md §4.2's
// destructuring-pattern grammar; the precise binding semantics are not
// spelled out further, so defaults are applied the same way a missing
// array index or object field reads as Undefined elsewhere in §4.5).
func (i *Interpreter) destructure(pat ast.Pattern, value Value) (map[string]Value, error) {
	switch p := pat.(type) {
	case *ast.Identifier:
		return map[string]Value{p.Name: value}, nil
	case *ast.ArrayPattern:
		arr, ok := value.(*Array)
		if !ok {
			return nil, langerror.New(langerror.Type, p.Pos(), "cannot destructure a non-array value")
		}
		result := make(map[string]Value, len(p.Elements)+1)
		for idx, elem := range p.Elements {
			v := arr.Get(float64(idx) - 1)
			if isUndefinedValue(v) && elem.Default != nil {
				dv, err := i.eval(elem.Default)
				if err != nil {
					return nil, err
				}
				v = dv
			}
			result[elem.Name] = v
		}
		if p.Rest != "" {
			rest := NewArray()
			for idx, k := range arr.sortedKeys() {
				if idx < len(p.Elements) {
					continue
				}
				rest.Elements[float64(idx-len(p.Elements))-1] = arr.Elements[k]
			}
			result[p.Rest] = rest
		}
		return result, nil
	case *ast.ObjectPattern:
		obj, ok := value.(*Object)
		if !ok {
			return nil, langerror.New(langerror.Type, p.Pos(), "cannot destructure a non-object value")
		}
		result := make(map[string]Value, len(p.Fields))
		for _, field := range p.Fields {
			v, ok := obj.Fields[field.Name]
			if !ok {
				if field.Default != nil {
					dv, err := i.eval(field.Default)
					if err != nil {
						return nil, err
					}
					v = dv
				} else {
					v = Undefined{}
				}
			}
			name := field.Name
			if field.Alias != "" {
				name = field.Alias
			}
			result[name] = v
		}
		return result, nil
	default:
		return nil, langerror.New(langerror.Context, pat.Pos(), "unsupported declaration target")
	}
}

func (i *Interpreter) execDelete(s *ast.DeleteStatement) error {
	if idx, ok := s.Target.(*ast.IndexExpr); ok {
		return i.deleteIndexed(idx)
	}
	v, err := i.eval(s.Target)
	if err != nil {
		return err
	}
	if !i.deleted.Add(v) {
		return langerror.New(langerror.Type, s.Pos(), "cannot delete a non-primitive value")
	}
	return nil
}

// deleteIndexed removes an array element or object field (and its
// history) rather than deleting the value itself (spec.md §4.5).
func (i *Interpreter) deleteIndexed(idx *ast.IndexExpr) error {
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
		delete(t.Elements, key)
		return nil
	case *Object:
		name, err := i.indexKeyName(idx.Index)
		if err != nil {
			return err
		}
		delete(t.Fields, name)
		if t.Class != nil {
			delete(i.fields.entries, fieldKey(t.Class.Name, name, false))
		}
		return nil
	default:
		return langerror.New(langerror.Type, idx.Pos(), "cannot delete from a non-array non-object value")
	}
}

func (i *Interpreter) evalNumber(expr ast.Expression) (float64, error) {
	v, err := i.eval(expr)
	if err != nil {
		return 0, err
	}
	return toNumber(v), nil
}

// indexKeyName resolves an index expression to a field name: object
// field access via `[...]` uses the index expression's display string
// as the field name (spec.md's index-read rule for objects).
func (i *Interpreter) indexKeyName(expr ast.Expression) (string, error) {
	v, err := i.eval(expr)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// registerWhen builds a WhenSubscription from a WhenStatement and
// registers it keyed by its computed dependency set (spec.md §4.5).
func (i *Interpreter) registerWhen(s *ast.WhenStatement) {
	deps := make(map[string]bool)
	sub := &WhenSubscription{Body: s.Body}
	if s.Condition != nil {
		sub.Condition = s.Condition
		collectDeps(s.Condition, deps)
	} else {
		sub.Target = s.Target
		sub.Pattern = s.Pattern
		sub.Guard = s.Guard
		collectDeps(s.Target, deps)
		collectDeps(s.Pattern, deps)
		collectDeps(s.Guard, deps)
	}
	sub.Deps = deps
	i.when.Register(sub)
}

// execIf dispatches on the condition's boolean state and catches a
// TryAgain signal raised inside the chosen branch by re-evaluating the
// condition in a loop (spec.md §4.5).
func (i *Interpreter) execIf(s *ast.IfStatement) (Signal, error) {
	i.ifDepth++
	defer func() { i.ifDepth-- }()

	for {
		cond, err := i.eval(s.Cond)
		if err != nil {
			return noSignal, err
		}

		var branch *ast.BlockStatement
		switch {
		case isTrue(cond):
			branch = s.Then
		case isMaybe(cond):
			branch = s.Idk
		default: // False or Undefined
			branch = s.Else
		}
		if branch == nil {
			return noSignal, nil
		}

		sig, err := i.execBlock(branch)
		if err != nil {
			return noSignal, err
		}
		if sig.Kind == SigTryAgain {
			continue
		}
		return sig, nil
	}
}

func (i *Interpreter) execWhile(s *ast.WhileStatement) (Signal, error) {
	i.loopDepth++
	defer func() { i.loopDepth-- }()

	for {
		cond, err := i.eval(s.Cond)
		if err != nil {
			return noSignal, err
		}
		if !isTrue(cond) {
			return noSignal, nil
		}
		sig, err := i.execBlock(s.Body)
		if err != nil {
			return noSignal, err
		}
		switch sig.Kind {
		case SigBreak:
			return noSignal, nil
		case SigContinue, SigNone:
			continue
		default:
			return sig, nil
		}
	}
}

// execClassDecl builds a ClassDefinition, partitions methods/properties
// static vs instance, evaluates static-field initializers immediately,
// seeds their field histories, and discards any existing singleton
// instance (spec.md §4.5).
func (i *Interpreter) execClassDecl(s *ast.ClassDecl) error {
	def := newClassDefinition(s.Name)
	i.fields.ClearClass(s.Name)
	for _, m := range s.Methods {
		md := &MethodDefinition{Name: m.Name, Static: m.Static, Params: m.Params, Body: m.Body}
		if m.Static {
			def.StaticMethods[m.Name] = md
		} else {
			def.InstanceMethods[m.Name] = md
		}
	}
	for _, p := range s.Properties {
		pd := &PropertyDefinition{Name: p.Name, Static: p.Static, Fallback: p.Fallback, Default: p.Default}
		def.Properties = append(def.Properties, pd)
		if p.Fallback {
			if p.Static {
				def.StaticFallback = p.Name
			} else {
				def.InstanceFallback = p.Name
			}
		}
		if p.Static {
			v, err := i.eval(p.Default)
			if err != nil {
				return err
			}
			def.StaticFields[p.Name] = v
			i.fields.Record(s.Name, p.Name, true, v)
		}
	}

	i.classes.Define(def)
	return nil
}

