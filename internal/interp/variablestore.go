package interp

import (
	"fmt"
	"time"

	"github.com/dreamberd-lang/dreamberd/internal/ast"
)

// errUndeclared and errNotAssignable are plain errors: the store has no
// source offset to attach, so the evaluator wraps these in a
// langerror.Error at the call site where the offset is in scope.
func errUndeclared(name string) error    { return fmt.Errorf("undeclared variable %q", name) }
func errNotAssignable(name string) error { return fmt.Errorf("%q is not assignable", name) }

const maxHistory = 100

// LifetimeState tracks a declaration's expiry clock (spec.md §4.3).
type LifetimeState struct {
	Kind      ast.LifetimeKind
	Value     float64
	DeclIndex int
	Created   time.Time
}

// expired reports whether the lifetime has elapsed as of the given
// statement index / wall clock.
func (l *LifetimeState) expired(stmtIndex int, now time.Time) bool {
	if l == nil {
		return false
	}
	switch l.Kind {
	case ast.LifetimeLines:
		return float64(stmtIndex) > float64(l.DeclIndex)+l.Value-1
	case ast.LifetimeSeconds:
		return now.Sub(l.Created).Seconds() >= l.Value
	default: // LifetimeInfinity, LifetimeNone
		return false
	}
}

// VariableEntry is a single declared name's full runtime state (spec.md
// §3's VariableEntry / §4.3).
type VariableEntry struct {
	Value      Value
	Mutability ast.Mutability
	Priority   int
	History    []Value
	Cursor     int
	Lifetime   *LifetimeState
}

func newEntry(value Value, mutability ast.Mutability, priority int, lifetime *LifetimeState) *VariableEntry {
	return &VariableEntry{
		Value:      value,
		Mutability: mutability,
		Priority:   priority,
		History:    []Value{value},
		Cursor:     0,
		Lifetime:   lifetime,
	}
}

// record appends value to history, truncating any forward history past
// the cursor first and trimming the oldest entry once the cap is hit
// (spec.md §4.3). It is a no-op when value is strictly equal to the
// current value.
func (e *VariableEntry) record(value Value) {
	if strictEqual(e.Value, value) {
		return
	}
	e.Value = value
	e.History = e.History[:e.Cursor+1]
	e.History = append(e.History, value)
	if len(e.History) > maxHistory {
		e.History = e.History[len(e.History)-maxHistory:]
	}
	e.Cursor = len(e.History) - 1
}

// scope holds, per name, a priority-ordered stack of entries rather
// than a single slot. spec.md §9 prescribes retention: a redeclaration
// at equal-or-higher priority pushes a new top entry instead of
// discarding the one it shadows, so that a lifetime-backed entry can
// later expire back down to the entry it replaced (spec.md §8's
// Boundaries property: "may later fall back to the previously shadowed
// entry"). The active entry for reads/writes is always the top of the
// stack.
type scope struct {
	entries map[string][]*VariableEntry
}

func newScope() *scope { return &scope{entries: make(map[string][]*VariableEntry)} }

// VariableStore is the scope stack of spec.md §4.3: an ordered stack of
// name→entry maps, innermost wins for reads, declarations always land
// in the innermost scope.
type VariableStore struct {
	scopes []*scope
}

// NewVariableStore creates a store with a single global scope.
func NewVariableStore() *VariableStore {
	return &VariableStore{scopes: []*scope{newScope()}}
}

// PushScope opens a new innermost scope (block/function/method entry).
func (s *VariableStore) PushScope() {
	s.scopes = append(s.scopes, newScope())
}

// PopScope closes the innermost scope. Popping the last remaining
// (global) scope is forbidden and is a programmer error in the
// evaluator, not a language-level failure, so it panics.
func (s *VariableStore) PopScope() {
	if len(s.scopes) <= 1 {
		panic("interp: cannot pop the global scope")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *VariableStore) innermost() *scope { return s.scopes[len(s.scopes)-1] }

// Declare writes name into the innermost scope (spec.md §4.3). A
// same-name entry already present there is kept, untouched, beneath the
// new one if the new declaration's priority is equal or higher
// (spec.md §9's retention rule); a strictly lower-priority declaration
// is rejected outright and the existing entry stays active.
func (s *VariableStore) Declare(name string, mutability ast.Mutability, value Value, priority int, lifetime *LifetimeState) {
	sc := s.innermost()
	stack := sc.entries[name]
	if len(stack) > 0 && stack[len(stack)-1].Priority > priority {
		return
	}
	sc.entries[name] = append(stack, newEntry(value, mutability, priority, lifetime))
}

// findEntry searches the scope stack innermost-outwards, returning the
// active (top-of-stack) entry for name.
func (s *VariableStore) findEntry(name string) (*VariableEntry, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if stack := s.scopes[i].entries[name]; len(stack) > 0 {
			return stack[len(stack)-1], true
		}
	}
	return nil, false
}

// Assign searches scopes innermost-outwards and writes value into the
// first entry found, unless its mutability forbids reassignment
// (spec.md §4.3/§4.5). The const-store write-once rule is enforced by
// the evaluator, not here.
func (s *VariableStore) Assign(name string, value Value) error {
	entry, ok := s.findEntry(name)
	if !ok {
		return errUndeclared(name)
	}
	if entry.Mutability == ast.ConstConst || entry.Mutability == ast.ConstVar {
		return errNotAssignable(name)
	}
	entry.record(value)
	return nil
}

// Get performs innermost-outwards lookup.
func (s *VariableStore) Get(name string) (Value, bool) {
	e, ok := s.findEntry(name)
	if !ok {
		return nil, false
	}
	return e.Value, true
}

// Entry exposes the full VariableEntry for history/lifetime access.
func (s *VariableStore) Entry(name string) (*VariableEntry, bool) {
	return s.findEntry(name)
}

// Has reports whether name is declared in any scope currently on the
// stack, used by the number-word-literal "first word shadows a
// declared name" rule (spec.md §4.2).
func (s *VariableStore) Has(name string) bool {
	_, ok := s.findEntry(name)
	return ok
}

// Delete removes name's entire stack from whichever scope holds it,
// including every shadowed entry beneath the active one.
func (s *VariableStore) Delete(name string) bool {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if _, ok := s.scopes[i].entries[name]; ok {
			delete(s.scopes[i].entries, name)
			return true
		}
	}
	return false
}

// ExpireLifetimes pops the active entry of every name across every
// scope whose lifetime has elapsed as of the given statement index and
// wall clock, repeating until the new top entry is itself still live
// (spec.md §4.3, §9's retention rule). A name whose stack empties out
// entirely is removed, the same as an ordinary declaration that was
// never shadowed.
func (s *VariableStore) ExpireLifetimes(stmtIndex int, now time.Time) {
	for _, sc := range s.scopes {
		for name, stack := range sc.entries {
			for len(stack) > 0 && stack[len(stack)-1].Lifetime.expired(stmtIndex, now) {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				delete(sc.entries, name)
				continue
			}
			sc.entries[name] = stack
		}
	}
}

// TryPrevious moves name's history cursor back one step (clamped) and
// sets its current value to the value at the new cursor. Returns the
// resulting value and whether the cursor actually moved.
func (s *VariableStore) TryPrevious(name string) (Value, bool) {
	e, ok := s.findEntry(name)
	if !ok || e.Cursor == 0 {
		return Undefined{}, false
	}
	e.Cursor--
	e.Value = e.History[e.Cursor]
	return e.Value, true
}

// TryNext is the symmetric forward step.
func (s *VariableStore) TryNext(name string) (Value, bool) {
	e, ok := s.findEntry(name)
	if !ok || e.Cursor >= len(e.History)-1 {
		return Undefined{}, false
	}
	e.Cursor++
	e.Value = e.History[e.Cursor]
	return e.Value, true
}

// History returns name's full history list and current cursor.
func (s *VariableStore) History(name string) ([]Value, int, bool) {
	e, ok := s.findEntry(name)
	if !ok {
		return nil, 0, false
	}
	return e.History, e.Cursor, true
}
