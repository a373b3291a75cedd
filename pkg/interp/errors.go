package interp

import (
	"fmt"
)

// ErrorKind classifies a script error.
type ErrorKind string

const (
	// Fatal: the run halts because there is no safe place to resume.
	ErrorMissingBlockTerminator ErrorKind = "MISSING_BLOCK_TERMINATOR"

	// Non-fatal: the offending line is skipped.
	ErrorMalformedAssignment       ErrorKind = "MALFORMED_ASSIGNMENT"
	ErrorMalformedCommandArguments ErrorKind = "MALFORMED_COMMAND_ARGUMENTS"
	ErrorCommandFailed             ErrorKind = "COMMAND_FAILED"

	// Never reported. A malformed condition, or one naming an unknown
	// variable, evaluates to false.
	ErrorMalformedCondition ErrorKind = "MALFORMED_CONDITION"
	ErrorUnknownIdentifier  ErrorKind = "UNKNOWN_IDENTIFIER"
)

// ScriptError is an error raised while interpreting one script line.
type ScriptError struct {
	Kind    ErrorKind
	Message string
	Line    int    // 1-based line number, 0 when unknown
	Text    string // the offending line
	Err     error  // underlying cause, if any
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s at line %d", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the run must halt after this error.
func (e *ScriptError) IsFatal() bool {
	return e.Kind == ErrorMissingBlockTerminator
}

// atLine returns a copy of e carrying the given 0-based line index.
func (e *ScriptError) atLine(index int, text string) *ScriptError {
	c := *e
	c.Line = index + 1
	c.Text = text
	return &c
}

// NewMalformedAssignmentError creates an error for an assignment line that
// could not be applied.
func NewMalformedAssignmentError(line, reason string) *ScriptError {
	return &ScriptError{
		Kind:    ErrorMalformedAssignment,
		Message: fmt.Sprintf("%s: %s", reason, line),
		Text:    line,
	}
}

// NewMissingTerminatorError creates an error for a block whose terminator
// could not be found. start is the 0-based index of the opening line.
func NewMissingTerminatorError(terminator, opener string, start int) *ScriptError {
	return &ScriptError{
		Kind:    ErrorMissingBlockTerminator,
		Message: fmt.Sprintf("%s not found for the %s starting at line %d", terminator, opener, start+1),
		Line:    start + 1,
	}
}

// NewCommandError wraps an error returned by a drawing command.
func NewCommandError(kind ErrorKind, keyword string, err error) *ScriptError {
	return &ScriptError{
		Kind:    kind,
		Message: fmt.Sprintf("%s failed: %v", keyword, err),
		Err:     err,
	}
}
