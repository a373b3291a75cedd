// Package interp implements the turtle script execution engine: line
// classification, the variable store, condition evaluation, block
// resolution and command dispatch, driven by the Executor.
package interp

import (
	"strings"

	"github.com/zurustar/kame/pkg/command"
)

// LineKind is the category of a script line.
type LineKind int

const (
	KindNoOp LineKind = iota
	KindAssignment
	KindLoopStart
	KindLoopEnd
	KindConditionalStart
	KindConditionalEnd
	KindDrawingCommand
)

// String returns a readable name for the kind.
func (k LineKind) String() string {
	switch k {
	case KindAssignment:
		return "assignment"
	case KindLoopStart:
		return "loop-start"
	case KindLoopEnd:
		return "loop-end"
	case KindConditionalStart:
		return "conditional-start"
	case KindConditionalEnd:
		return "conditional-end"
	case KindDrawingCommand:
		return "drawing-command"
	default:
		return "no-op"
	}
}

// Block keywords. They are matched case-sensitively.
const (
	keywordWhile   = "While"
	keywordEndloop = "Endloop"
	keywordIf      = "If"
	keywordEndif   = "Endif"
)

// Classify categorizes a line that has already been trimmed.
//
// A line containing "=" is an assignment unless it opens a block with
// "While " or "If ", so that == and != conditions stay reachable.
func Classify(line string) LineKind {
	switch {
	case strings.Contains(line, "=") && !opensBlock(line):
		return KindAssignment
	case strings.HasPrefix(line, keywordWhile):
		return KindLoopStart
	case line == keywordEndloop:
		return KindLoopEnd
	case strings.HasPrefix(line, keywordIf):
		return KindConditionalStart
	case line == keywordEndif:
		return KindConditionalEnd
	case isDrawingCommand(line):
		return KindDrawingCommand
	default:
		return KindNoOp
	}
}

func opensBlock(line string) bool {
	return strings.HasPrefix(line, keywordWhile+" ") || strings.HasPrefix(line, keywordIf+" ")
}

func isDrawingCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return command.IsKeyword(fields[0])
}
