package interp

import (
	"strconv"
	"strings"
)

// Operator is a comparison operator of a condition.
type Operator string

const (
	OpLess     Operator = "<"
	OpGreater  Operator = ">"
	OpEqual    Operator = "=="
	OpNotEqual Operator = "!="
)

// operatorOrder is the order in which operator symbols are searched for
// in the condition text. The first symbol present wins.
var operatorOrder = []Operator{OpLess, OpGreater, OpEqual, OpNotEqual}

// Condition is a single comparison between a variable and an integer.
type Condition struct {
	Left  string
	Op    Operator
	Right int
}

// ParseCondition parses text such as "x < 3". It reports false when the
// text does not split into exactly one identifier and one integer
// literal, or contains none of the supported operators.
func ParseCondition(text string) (Condition, bool) {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune("<>=!", r)
	})
	if len(parts) != 2 {
		return Condition{}, false
	}
	right, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Condition{}, false
	}
	for _, op := range operatorOrder {
		if strings.Contains(text, string(op)) {
			return Condition{
				Left:  strings.TrimSpace(parts[0]),
				Op:    op,
				Right: right,
			}, true
		}
	}
	return Condition{}, false
}

// Eval evaluates c against store. A variable that has never been
// assigned makes the condition false.
func (c Condition) Eval(store *Store) bool {
	left, ok := store.Get(c.Left)
	if !ok {
		return false
	}
	switch c.Op {
	case OpLess:
		return left < c.Right
	case OpGreater:
		return left > c.Right
	case OpEqual:
		return left == c.Right
	case OpNotEqual:
		return left != c.Right
	default:
		return false
	}
}

// Evaluate parses and evaluates text against store. Malformed text is
// false, never an error.
func Evaluate(text string, store *Store) bool {
	c, ok := ParseCondition(text)
	if !ok {
		return false
	}
	return c.Eval(store)
}
