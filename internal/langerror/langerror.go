// Package langerror defines the error value shared by every stage of the
// DreamBerd pipeline (lexer, parser, evaluator). It intentionally carries
// nothing more than spec.md §6/§7 asks for: a kind, a message, and an
// optional byte offset into the source. Translating that offset into a
// line/column and rendering a caret is the host's job, not the core's.
package langerror

import "fmt"

// Kind classifies an Error the way spec.md §7 enumerates error kinds.
type Kind int

const (
	// Lex marks an unrecognised character.
	Lex Kind = iota
	// Parse marks an unexpected token, missing terminator, malformed
	// conditional, etc.
	Parse
	// Name marks an undefined assignment target or assignment to a
	// write-once const-const-const name.
	Name
	// Type marks an arithmetic/coercion failure or bad index-assignment
	// target.
	Type
	// Shape marks a built-in called with the wrong argument count/shape.
	Shape
	// Context marks return/break/continue/try-again used outside their
	// legal scope.
	Context
	// Deletion marks a read of a value that has been `delete`d.
	Deletion
	// SafetyAbort marks a `when` dispatch that exceeded its safety bound.
	SafetyAbort
	// IO marks a failure from an external collaborator such as readFile.
	IO
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Name:
		return "name error"
	case Type:
		return "type error"
	case Shape:
		return "shape error"
	case Context:
		return "context error"
	case Deletion:
		return "deletion error"
	case SafetyAbort:
		return "safety abort"
	case IO:
		return "i/o error"
	default:
		return "error"
	}
}

// Error is the single error type produced anywhere in the DreamBerd core.
type Error struct {
	Kind    Kind
	Message string
	// Offset is the byte offset into the source the error applies to.
	// HasOffset is false when no single source position is meaningful
	// (e.g. a safety-abort raised deep inside `when` dispatch).
	Offset    int
	HasOffset bool
}

// New builds an Error with a source offset attached.
func New(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: offset, HasOffset: true}
}

// NewNoOffset builds an Error with no meaningful single source position.
func NewNoOffset(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
