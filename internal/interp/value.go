// Package interp implements the DreamBerd tree-walking evaluator: the
// variable/const stores, class registry, when-machinery, and the
// statement/expression evaluation rules of spec.md §4.3-§4.5.
package interp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dreamberd-lang/dreamberd/internal/numword"
)

// Value is the tagged union every DreamBerd runtime value implements
// (spec.md §9: "a tagged union is the natural representation").
type Value interface {
	// Type returns a short type tag used in diagnostics.
	Type() string
	// String returns the value's display form, used by print and by
	// string-coercion in loose operators.
	String() string
}

// Number is DreamBerd's sole numeric kind.
type Number struct{ Value float64 }

func (n Number) Type() string { return "number" }
func (n Number) String() string {
	if math.IsInf(n.Value, 1) {
		return "Infinity"
	}
	if math.IsInf(n.Value, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Str is a DreamBerd string value (named Str, not String, to avoid
// colliding with the stdlib string/fmt.Stringer vocabulary throughout
// this package).
type Str struct{ Value string }

func (s Str) Type() string   { return "string" }
func (s Str) String() string { return s.Value }

// BoolState is spec.md §3's four-state boolean discriminant.
type BoolState int

const (
	False BoolState = iota
	True
	Maybe
)

// Bool wraps BoolState as a Value. True/False/Maybe are distinct from
// each other and from Undefined.
type Bool struct{ State BoolState }

func (b Bool) Type() string { return "boolean" }
func (b Bool) String() string {
	switch b.State {
	case True:
		return "true"
	case Maybe:
		return "maybe"
	default:
		return "false"
	}
}

// Null is DreamBerd's `null` — distinct from Undefined (spec.md §3).
type Null struct{}

func (Null) Type() string   { return "null" }
func (Null) String() string { return "null" }

// Undefined is the value of an absent lookup, a missing array index, a
// dropped parameter, and the result of most undefined arithmetic.
type Undefined struct{}

func (Undefined) Type() string   { return "undefined" }
func (Undefined) String() string { return "undefined" }

// Array is a DreamBerd array: a sparse map keyed by float64 starting at
// -1 (spec.md §3, §4.5). It is reference-shared; index assignment
// copies the backing map so previously captured snapshots are
// unaffected (spec.md §9's copy-on-write rule).
type Array struct {
	Elements map[float64]Value
}

func NewArray() *Array {
	return &Array{Elements: make(map[float64]Value)}
}

func (a *Array) Type() string { return "array" }

func (a *Array) String() string {
	keys := a.sortedKeys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, a.Elements[k].String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a *Array) sortedKeys() []float64 {
	keys := make([]float64, 0, len(a.Elements))
	for k := range a.Elements {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

// Get returns the element at key, or Undefined if absent (spec.md
// §4.5's "Index read ... returns Undefined for a missing key").
func (a *Array) Get(key float64) Value {
	if v, ok := a.Elements[key]; ok {
		return v
	}
	return Undefined{}
}

// WithSet returns a new Array with key set to value, leaving the
// receiver's backing map untouched (copy-on-write per spec.md §9).
func (a *Array) WithSet(key float64, value Value) *Array {
	next := make(map[float64]Value, len(a.Elements)+1)
	for k, v := range a.Elements {
		next[k] = v
	}
	next[key] = value
	return &Array{Elements: next}
}

// Len reports the number of populated elements, not the key range.
func (a *Array) Len() int { return len(a.Elements) }

// Object is a class instance: named fields plus a back-reference to the
// class definition that created it (spec.md §4.5).
type Object struct {
	Class  *ClassDefinition
	Fields map[string]Value
}

func (o *Object) Type() string   { return o.Class.Name }
func (o *Object) String() string { return fmt.Sprintf("<%s instance>", o.Class.Name) }

// BoundMethod is a method value obtained by indexing an Object by a
// method name; calling it binds `source` to the receiver (spec.md §4.5).
type BoundMethod struct {
	Receiver *Object
	Method   *MethodDefinition
}

func (b *BoundMethod) Type() string   { return "method" }
func (b *BoundMethod) String() string { return fmt.Sprintf("<bound method %s>", b.Method.Name) }

// isTrue reports whether v is the True boolean state. Only True drives
// an if/while condition down the then-branch; Maybe and Undefined each
// have their own dispatch path (spec.md §4.5).
func isTrue(v Value) bool {
	b, ok := v.(Bool)
	return ok && b.State == True
}

func isMaybe(v Value) bool {
	b, ok := v.(Bool)
	return ok && b.State == Maybe
}

func isUndefinedValue(v Value) bool {
	_, ok := v.(Undefined)
	return ok
}

// toNumber coerces a value to a float64 the way arithmetic/comparison
// operators do (spec.md §4.5: "-, *, coerce to number"). Values that
// cannot be coerced yield math.NaN.
func toNumber(v Value) float64 {
	switch val := v.(type) {
	case Number:
		return val.Value
	case Bool:
		switch val.State {
		case True:
			return 1
		case False:
			return 0
		default:
			return math.NaN()
		}
	case Str:
		if n, ok := parseNumberWord(val.Value); ok {
			return n
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// parseNumberWord tries a plain numeric parse first, then falls back to
// the number-words table so toNumber/parseNumber/parseInt accept
// "twenty one" the same way the literal parser does (spec.md §6).
func parseNumberWord(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n, true
	}
	words := strings.Fields(trimmed)
	if len(words) == 0 {
		return 0, false
	}
	for _, w := range words {
		if !numword.IsWord(w) {
			return 0, false
		}
	}
	return numword.Parse(words)
}

const epsilon = 1e-9

// strictEqual implements spec.md §4.5's `===` tier: same kind required,
// numbers compared within epsilon, strings/booleans by value, null/
// undefined equal to themselves, arrays/objects by reference identity.
// assign() reuses it to decide whether a write actually changes history.
func strictEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && math.Abs(av.Value-bv.Value) < epsilon
	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.State == bv.State
	case Null:
		_, ok := b.(Null)
		return ok
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *BoundMethod:
		bv, ok := b.(*BoundMethod)
		return ok && av.Receiver == bv.Receiver && av.Method == bv.Method
	default:
		return false
	}
}
