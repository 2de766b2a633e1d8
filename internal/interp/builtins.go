package interp

import (
	"strings"

	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// builtinNames is the stdlib table of spec.md §6, excluding previous/
// next/history which need their raw argument expression rather than an
// evaluated value and so are handled directly by evalCall.
var builtinNames = map[string]bool{
	"print":       true,
	"toNumber":    true,
	"parseInt":    true,
	"parseNumber": true,
	"lines":       true,
	"trim":        true,
	"split":       true,
	"charAt":      true,
	"slice":       true,
	"readFile":    true,
	"readLines":   true,
	"numArray":    true,
}

func isBuiltin(name string) bool { return builtinNames[name] }

// callBuiltin dispatches a builtin call by name once its arguments have
// already been evaluated (spec.md §6's stdlib table).
func (i *Interpreter) callBuiltin(name string, args []Value, pos int) (Value, error) {
	switch name {
	case "print":
		return i.builtinPrint(args), nil
	case "toNumber", "parseInt", "parseNumber":
		return i.builtinToNumber(name, args, pos)
	case "lines":
		return i.builtinLines(args, pos)
	case "trim":
		return i.builtinTrim(args, pos)
	case "split":
		return i.builtinSplit(args, pos)
	case "charAt":
		return i.builtinCharAt(args, pos)
	case "slice":
		return i.builtinSlice(args, pos)
	case "readFile":
		return i.builtinReadFile(args, pos)
	case "readLines":
		return i.builtinReadLines(args, pos)
	case "numArray":
		return i.builtinNumArray(args, pos)
	default:
		return nil, langerror.New(langerror.Name, pos, "unknown built-in %q", name)
	}
}

// builtinPrint writes each argument's display form on its own line and
// returns Null (spec.md §6).
func (i *Interpreter) builtinPrint(args []Value) Value {
	for _, a := range args {
		i.writeln(a.String())
	}
	return Null{}
}

func (i *Interpreter) builtinToNumber(name string, args []Value, pos int) (Value, error) {
	if len(args) != 1 {
		return nil, langerror.New(langerror.Shape, pos, "%s expects exactly one argument", name)
	}
	n := toNumber(args[0])
	if n != n { // NaN
		return Undefined{}, nil
	}
	return Number{Value: n}, nil
}

// builtinLines splits on \n, \r\n, or \r and drops a trailing empty
// line (spec.md §6).
func (i *Interpreter) builtinLines(args []Value, pos int) (Value, error) {
	if len(args) != 1 {
		return nil, langerror.New(langerror.Shape, pos, "lines expects exactly one argument")
	}
	text, ok := args[0].(Str)
	if !ok {
		return nil, langerror.New(langerror.Type, pos, "lines expects a string argument")
	}
	normalized := strings.ReplaceAll(text.Value, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	parts := strings.Split(normalized, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	values := make([]Value, len(parts))
	for idx, p := range parts {
		values[idx] = Str{Value: p}
	}
	return NewArrayFromSlice(values), nil
}

func (i *Interpreter) builtinTrim(args []Value, pos int) (Value, error) {
	if len(args) != 1 {
		return nil, langerror.New(langerror.Shape, pos, "trim expects exactly one argument")
	}
	text, ok := args[0].(Str)
	if !ok {
		return nil, langerror.New(langerror.Type, pos, "trim expects a string argument")
	}
	return Str{Value: strings.TrimSpace(text.Value)}, nil
}

// builtinSplit splits text by sep; an empty separator yields individual
// characters (spec.md §6, §8's edge case).
func (i *Interpreter) builtinSplit(args []Value, pos int) (Value, error) {
	if len(args) != 2 {
		return nil, langerror.New(langerror.Shape, pos, "split expects exactly two arguments")
	}
	text, ok := args[0].(Str)
	if !ok {
		return nil, langerror.New(langerror.Type, pos, "split expects a string as its first argument")
	}
	sep, ok := args[1].(Str)
	if !ok {
		return nil, langerror.New(langerror.Type, pos, "split expects a string separator")
	}
	var parts []string
	if sep.Value == "" {
		parts = strings.Split(text.Value, "")
	} else {
		parts = strings.Split(text.Value, sep.Value)
	}
	values := make([]Value, len(parts))
	for idx, p := range parts {
		values[idx] = Str{Value: p}
	}
	return NewArrayFromSlice(values), nil
}

// builtinCharAt returns the single character at index i, or Undefined
// if out of range (spec.md §6).
func (i *Interpreter) builtinCharAt(args []Value, pos int) (Value, error) {
	if len(args) != 2 {
		return nil, langerror.New(langerror.Shape, pos, "charAt expects exactly two arguments")
	}
	text, ok := args[0].(Str)
	if !ok {
		return nil, langerror.New(langerror.Type, pos, "charAt expects a string as its first argument")
	}
	runes := []rune(text.Value)
	idx := int(toNumber(args[1]))
	if idx < 0 || idx >= len(runes) {
		return Undefined{}, nil
	}
	return Str{Value: string(runes[idx])}, nil
}

// builtinSlice returns the substring starting at start; a negative
// start counts from the end (spec.md §6).
func (i *Interpreter) builtinSlice(args []Value, pos int) (Value, error) {
	if len(args) != 2 {
		return nil, langerror.New(langerror.Shape, pos, "slice expects exactly two arguments")
	}
	text, ok := args[0].(Str)
	if !ok {
		return nil, langerror.New(langerror.Type, pos, "slice expects a string as its first argument")
	}
	runes := []rune(text.Value)
	start := int(toNumber(args[1]))
	if start < 0 {
		start += len(runes)
	}
	if start < 0 {
		start = 0
	}
	if start >= len(runes) {
		return Str{Value: ""}, nil
	}
	return Str{Value: string(runes[start:])}, nil
}

// builtinNumArray constructs a numeric array of size elements, each
// initialised to init, indexed from −1 (spec.md §6).
func (i *Interpreter) builtinNumArray(args []Value, pos int) (Value, error) {
	if len(args) != 2 {
		return nil, langerror.New(langerror.Shape, pos, "numArray expects exactly two arguments")
	}
	init := toNumber(args[0])
	size := int(toNumber(args[1]))
	arr := NewArray()
	for idx := 0; idx < size; idx++ {
		arr.Elements[float64(idx)-1] = Number{Value: init}
	}
	return arr, nil
}
