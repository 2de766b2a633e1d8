package interp

import (
	"os"
	"strings"

	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// builtinReadFile reads a whole file's text, synchronously and
// blocking, surfacing any OS failure as a language-level IO error
// carrying the call's source position (spec.md §5: "file I/O for the
// readFile/readLines helpers" is the one external collaborator the
// core evaluator depends on).
func (i *Interpreter) builtinReadFile(args []Value, pos int) (Value, error) {
	path, err := ioArgPath("readFile", args, pos)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, langerror.New(langerror.IO, pos, "readFile %q: %s", path, err.Error())
	}
	return Str{Value: string(data)}, nil
}

// builtinReadLines reads a file and splits it the same way the lines
// built-in does (spec.md §6).
func (i *Interpreter) builtinReadLines(args []Value, pos int) (Value, error) {
	path, err := ioArgPath("readLines", args, pos)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, langerror.New(langerror.IO, pos, "readLines %q: %s", path, err.Error())
	}
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
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

func ioArgPath(name string, args []Value, pos int) (string, error) {
	if len(args) != 1 {
		return "", langerror.New(langerror.Shape, pos, "%s expects exactly one argument", name)
	}
	path, ok := args[0].(Str)
	if !ok {
		return "", langerror.New(langerror.Type, pos, "%s expects a string path", name)
	}
	return path.Value, nil
}
