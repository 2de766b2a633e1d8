// Package diagnostic renders a langerror.Error against the original
// source text as a line/column, caret-annotated message (spec.md §6:
// "the formatting of diagnostic messages with caret pointing" is an
// external collaborator, not part of the core). Grounded on the
// teacher's internal/errors.CompilerError.Format, generalized from a
// fixed lexer.Position to a byte offset computed here.
package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/dreamberd-lang/dreamberd/internal/langerror"
)

// Position is a 1-indexed line/column pair resolved from a byte offset.
type Position struct {
	Line   int
	Column int
}

// Locate walks src and converts a byte offset into a 1-indexed
// line/column, the way the teacher's lexer tracks Position as it scans
// (grounded on internal/lexer.Position bookkeeping; here computed once,
// after the fact, since the core only ever hands back a raw offset).
func Locate(src string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, col := 1, 1
	for idx := 0; idx < offset; idx++ {
		if src[idx] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Format renders err against src (and an optional file name for the
// header) as a caret-annotated, optionally colorized diagnostic
// (grounded on CompilerError.Format's color-bool parameter, generalized
// to auto-detect a TTY via go-isatty the way the teacher's CLI never
// bothered to, since it always took an explicit flag).
func Format(err *langerror.Error, src, file string, useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s:", err.Kind)
	if err.HasOffset {
		pos := Locate(src, err.Offset)
		if file != "" {
			header = fmt.Sprintf("%s in %s:%d:%d", err.Kind, file, pos.Line, pos.Column)
		} else {
			header = fmt.Sprintf("%s at %d:%d", err.Kind, pos.Line, pos.Column)
		}
		sb.WriteString(header)
		sb.WriteString("\n")

		if line := sourceLine(src, pos.Line); line != "" {
			prefix := fmt.Sprintf("%4d | ", pos.Line)
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(prefix)+pos.Column-1))
			caret := "^"
			if useColor {
				caret = color.New(color.FgRed, color.Bold).Sprint(caret)
			}
			sb.WriteString(caret)
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(header)
		sb.WriteString("\n")
	}

	msg := err.Message
	if useColor {
		msg = color.New(color.Bold).Sprint(msg)
	}
	sb.WriteString(msg)
	return sb.String()
}

// Print writes Format's rendering of err to w, auto-detecting color
// support the way the teacher's CLI tests gate colorized output on
// whether stderr is a terminal.
func Print(w io.Writer, err *langerror.Error, src, file string) {
	useColor := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	fmt.Fprintln(w, Format(err, src, file, useColor))
}
