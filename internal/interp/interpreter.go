package interp

import (
	"io"
	"os"
	"time"

	"github.com/dreamberd-lang/dreamberd/internal/ast"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// Interpreter consolidates every piece of runtime state DreamBerd
// programs share into one struct with a mutable receiver (spec.md §9:
// "a port should consolidate the evaluator into a single struct owning
// the variable store, const store, class registry, when index,
// mutation queue, deletion set, call stack, and counters").
type Interpreter struct {
	out    io.Writer
	vars   *VariableStore
	consts *ConstStore
	classes *ClassRegistry
	fields *FieldHistoryStore
	when   *WhenIndex
	deleted *DeletionSet
	calls  *CallStack

	functions map[string]*ast.FunctionDecl

	trace     bool
	now       func() time.Time
	loopDepth int
	ifDepth   int
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput redirects print output away from os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithTrace enables evaluator-side tracing (distinct from the language's
// own `?`/`??` debug markers): each executed `reverse` statement writes a
// `[DEBUG] reverse!` line to the output writer. No other statement is
// traced.
func WithTrace(on bool) Option {
	return func(i *Interpreter) { i.trace = on }
}

// WithClock overrides the wall clock used for `<Ns>` lifetime expiry,
// so tests can drive Seconds-lifetimes deterministically.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// New builds an Interpreter with a fresh global scope and empty
// registries.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		out:       os.Stdout,
		vars:      NewVariableStore(),
		consts:    NewConstStore(),
		classes:   NewClassRegistry(),
		fields:    NewFieldHistoryStore(),
		when:      NewWhenIndex(),
		deleted:   NewDeletionSet(),
		calls:     NewCallStack(),
		functions: make(map[string]*ast.FunctionDecl),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes an entire program's top-level statement list. A Return/
// Break/Continue/TryAgain signal escaping every enclosing construct is
// itself a context error (spec.md §7: "escaping them is itself a
// context error").
func (i *Interpreter) Run(program *ast.Program) error {
	sig, err := i.execList(program.Statements)
	if err != nil {
		return err
	}
	if !sig.isNone() {
		return langerror.NewNoOffset(langerror.Context, "%s used outside its legal context", signalName(sig.Kind))
	}
	return nil
}

func signalName(k SignalKind) string {
	switch k {
	case SigReturn:
		return "return"
	case SigBreak:
		return "break"
	case SigContinue:
		return "continue"
	case SigTryAgain:
		return "try again"
	default:
		return "signal"
	}
}

// execList is the bidirectional statement-list executor of spec.md
// §4.5: an index cursor and a direction flag, both local to this call
// so nested lists (blocks, function bodies, method bodies) each get
// their own independent cursor/direction that is saved and restored by
// virtue of being stack-local rather than a field on Interpreter.
func (i *Interpreter) execList(stmts []ast.Statement) (Signal, error) {
	index := 0
	direction := 1
	n := len(stmts)

	for index >= 0 && index < n {
		i.vars.ExpireLifetimes(index, i.now())
		stmt := stmts[index]

		switch stmt.(type) {
		case *ast.ReverseStatement:
			if i.trace {
				i.writeln("[DEBUG] reverse!")
			}
			direction = -direction
			index += direction
			continue
		case *ast.ForwardStatement:
			direction = 1
			index += direction
			continue
		}

		sig, err := i.execStatement(stmt, index)
		if err != nil {
			return noSignal, err
		}
		if !sig.isNone() {
			return sig, nil
		}
		index += direction
	}
	return noSignal, nil
}

func (i *Interpreter) writeln(s string) {
	io.WriteString(i.out, s)
	io.WriteString(i.out, "\n")
}
