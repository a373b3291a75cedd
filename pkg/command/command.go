package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrArguments is wrapped by every error a command returns when its
// arguments are malformed. The surface is left untouched in that case.
var ErrArguments = errors.New("malformed command arguments")

// DrawingCommand is one variant of the closed drawing command set.
// Execute validates args before it mutates s.
type DrawingCommand interface {
	Name() string
	Execute(s Surface, args []string) error
}

// Table maps a lowercase keyword to its command. It is built once and
// only read afterwards.
type Table struct {
	commands map[string]DrawingCommand
}

// NewTable builds the keyword table for the nine drawing commands.
// home is the state restored by the reset command.
func NewTable(home State) *Table {
	t := &Table{commands: make(map[string]DrawingCommand)}
	for _, cmd := range []DrawingCommand{
		MoveTo{},
		DrawTo{},
		Fill{},
		Reset{Home: home},
		Clear{},
		Pen{},
		Rectangle{},
		Circle{},
		Triangle{},
	} {
		t.commands[cmd.Name()] = cmd
	}
	return t
}

// Lookup returns the command registered for keyword. The keyword is
// matched case-insensitively.
func (t *Table) Lookup(keyword string) (DrawingCommand, bool) {
	cmd, ok := t.commands[strings.ToLower(keyword)]
	return cmd, ok
}

// Keywords returns the registered keywords in sorted order.
func (t *Table) Keywords() []string {
	keys := make([]string, 0, len(t.commands))
	for k := range t.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var keywords = map[string]struct{}{
	"moveto":    {},
	"drawto":    {},
	"fill":      {},
	"reset":     {},
	"clear":     {},
	"pen":       {},
	"rectangle": {},
	"circle":    {},
	"triangle":  {},
}

// IsKeyword reports whether word names a drawing command, ignoring case.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToLower(word)]
	return ok
}

// argError builds an ErrArguments-wrapping error for command name.
func argError(name, format string, a ...any) error {
	return fmt.Errorf("%s: %s: %w", name, fmt.Sprintf(format, a...), ErrArguments)
}

func expectArgs(name string, args []string, n int) error {
	if len(args) != n {
		return argError(name, "expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func parseInts(name string, args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, argError(name, "argument %d %q is not an integer", i+1, a)
		}
		values[i] = v
	}
	return values, nil
}

func parsePositive(name string, args []string, n int) ([]int, error) {
	if err := expectArgs(name, args, n); err != nil {
		return nil, err
	}
	values, err := parseInts(name, args)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v <= 0 {
			return nil, argError(name, "argument %d must be positive, got %d", i+1, v)
		}
	}
	return values, nil
}
