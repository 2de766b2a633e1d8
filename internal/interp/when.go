package interp

import (
	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// WhenSubscription is either the condition-form or the pattern-form of
// spec.md §3's `when` entry. Exactly one of Condition or (Target,
// Pattern) is set.
type WhenSubscription struct {
	Condition ast.Expression
	Target    ast.Expression
	Pattern   ast.Expression
	Guard     ast.Expression
	Body      *ast.BlockStatement
	Deps      map[string]bool // empty means wildcard: fires on every mutation
}

const whenSafetyBound = 100000

// WhenIndex is the mutation-triggered dispatch machinery of spec.md
// §4.5: subscriptions indexed by dependency name, a FIFO mutation
// queue, and a non-reentrant dispatch flag.
type WhenIndex struct {
	byName      map[string][]*WhenSubscription
	wildcard    []*WhenSubscription
	queue       []string
	dispatching bool
}

func NewWhenIndex() *WhenIndex {
	return &WhenIndex{byName: make(map[string][]*WhenSubscription)}
}

// Register indexes sub under every name in its dependency set, or as a
// wildcard subscriber if that set is empty.
func (w *WhenIndex) Register(sub *WhenSubscription) {
	if len(sub.Deps) == 0 {
		w.wildcard = append(w.wildcard, sub)
		return
	}
	for name := range sub.Deps {
		w.byName[name] = append(w.byName[name], sub)
	}
}

// subscribersFor returns the union of subscriptions keyed by name and
// every wildcard subscriber.
func (w *WhenIndex) subscribersFor(name string) []*WhenSubscription {
	subs := make([]*WhenSubscription, 0, len(w.byName[name])+len(w.wildcard))
	subs = append(subs, w.byName[name]...)
	subs = append(subs, w.wildcard...)
	return subs
}

// Notify enqueues name's mutation. Draining happens in Interpreter's
// dispatchWhen, which this index does not itself invoke — it only owns
// the queue and the non-reentrant flag (spec.md §4.5: "dispatches are
// non-reentrant").
func (w *WhenIndex) Notify(name string) {
	w.queue = append(w.queue, name)
}

// collectDeps walks expr and records every Identifier name it
// references, used to build a WhenSubscription's dependency set from
// its condition / pattern-target / guard (spec.md §4.5).
func collectDeps(expr ast.Expression, deps map[string]bool) {
	switch e := expr.(type) {
	case nil:
	case *ast.Identifier:
		deps[e.Name] = true
	case *ast.InfixExpr:
		collectDeps(e.Left, deps)
		collectDeps(e.Right, deps)
	case *ast.PrefixExpr:
		collectDeps(e.Right, deps)
	case *ast.PostfixExpr:
		collectDeps(e.Target, deps)
	case *ast.ConditionalExpr:
		collectDeps(e.Cond, deps)
		collectDeps(e.WhenTrue, deps)
		collectDeps(e.WhenFalse, deps)
		collectDeps(e.WhenMaybe, deps)
		collectDeps(e.WhenUndefined, deps)
	case *ast.CallExpr:
		collectDeps(e.Callee, deps)
		for _, a := range e.Args {
			collectDeps(a, deps)
		}
	case *ast.IndexExpr:
		collectDeps(e.Target, deps)
		collectDeps(e.Index, deps)
	case *ast.AssignExpr:
		collectDeps(e.Target, deps)
		collectDeps(e.Value, deps)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			collectDeps(el, deps)
		}
	case *ast.RangeLiteral:
		collectDeps(e.Low, deps)
		collectDeps(e.High, deps)
	case *ast.ClampExpr:
		collectDeps(e.Value, deps)
	case *ast.WrapExpr:
		collectDeps(e.Value, deps)
	}
}

// notifyMutation enqueues name's mutation and drains the queue unless a
// dispatch is already in progress (spec.md §4.5: "dispatches are
// non-reentrant").
func (i *Interpreter) notifyMutation(name string) error {
	i.when.Notify(name)
	return i.dispatchWhen()
}

// dispatchWhen drains the mutation queue: for each dequeued name it
// collects the union of subscriptions indexed by that name and every
// wildcard subscriber, and fires each whose condition/pattern matches
// (spec.md §4.5). A subscriber's own mutations append to the queue
// rather than recursing, which falls out naturally here since Notify
// only ever appends — a nested dispatchWhen call made from inside a
// subscriber returns at once because of the `i.when.dispatching` guard,
// leaving the queued name to this outer loop.
func (i *Interpreter) dispatchWhen() error {
	if i.when.dispatching {
		return nil
	}
	i.when.dispatching = true
	defer func() { i.when.dispatching = false }()

	iterations := 0
	for len(i.when.queue) > 0 {
		name := i.when.queue[0]
		i.when.queue = i.when.queue[1:]
		for _, sub := range i.when.subscribersFor(name) {
			iterations++
			if iterations > whenSafetyBound {
				i.when.queue = nil
				return langerror.NewNoOffset(langerror.SafetyAbort, "when dispatch exceeded %d iterations", whenSafetyBound)
			}
			if err := i.fireWhen(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// fireWhen evaluates a single subscription's condition or pattern match
// (plus optional guard) and executes its body if triggered.
func (i *Interpreter) fireWhen(sub *WhenSubscription) error {
	if sub.Condition != nil {
		cond, err := i.eval(sub.Condition)
		if err != nil {
			return err
		}
		if !isTrue(cond) {
			return nil
		}
		_, err = i.execBlock(sub.Body)
		return err
	}

	matched, bindName, bindValue, err := i.matchWhenPattern(sub.Target, sub.Pattern)
	if err != nil {
		return err
	}
	if !matched {
		return nil
	}

	i.vars.PushScope()
	defer i.vars.PopScope()
	if bindName != "" {
		i.vars.Declare(bindName, ast.VarVar, bindValue, 1, nil)
	}

	if sub.Guard != nil {
		g, err := i.eval(sub.Guard)
		if err != nil {
			return err
		}
		if !isTrue(g) {
			return nil
		}
	}

	_, err = i.execList(sub.Body.Statements)
	return err
}

// matchWhenPattern implements the pattern-form `when TARGET matches
// PATTERN`: a bare identifier not already declared anywhere is treated
// as a capture, always matching and binding that name to TARGET's
// value inside the body; any other pattern expression is compared to
// TARGET by loose (`==`) equality (spec.md §4.2 leaves the exact match
// semantics unspecified beyond "matches PATTERN"; this is this port's
// resolution, recorded in DESIGN.md).
func (i *Interpreter) matchWhenPattern(target, pattern ast.Expression) (bool, string, Value, error) {
	targetVal, err := i.eval(target)
	if err != nil {
		return false, "", nil, err
	}
	if ident, ok := pattern.(*ast.Identifier); ok && !i.isDeclaredAnywhere(ident.Name) {
		return true, ident.Name, targetVal, nil
	}
	patVal, err := i.eval(pattern)
	if err != nil {
		return false, "", nil, err
	}
	return looseEqual(targetVal, patVal), "", nil, nil
}

func (i *Interpreter) isDeclaredAnywhere(name string) bool {
	return i.vars.Has(name) || i.consts.Has(name)
}
