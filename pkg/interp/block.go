package interp

import "strings"

// NotFound is returned by the block resolvers when no terminator exists.
// It must never be used as a line index.
const NotFound = -1

// FindLoopEnd returns the index of the first "Endloop" line after start.
func FindLoopEnd(lines []string, start int) (int, bool) {
	return findTerminator(lines, start, keywordEndloop)
}

// FindConditionalEnd returns the index of the first "Endif" line after
// start.
func FindConditionalEnd(lines []string, start int) (int, bool) {
	return findTerminator(lines, start, keywordEndif)
}

func findTerminator(lines []string, start int, terminator string) (int, bool) {
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == terminator {
			return i, true
		}
	}
	return NotFound, false
}

// NestedBlock describes a block opened inside another block of the same
// kind before the outer block's first terminator.
type NestedBlock struct {
	Outer int // 0-based index of the outer opening line
	Inner int // 0-based index of the nested opening line
}

// CheckNesting lists same-kind nested blocks. Blocks are resolved by the
// first terminator after the opening line, so a nested block closes its
// outer block early. The result is diagnostic only.
func CheckNesting(lines []string) []NestedBlock {
	var nested []NestedBlock
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		var opener LineKind
		var end int
		var ok bool
		switch Classify(line) {
		case KindLoopStart:
			opener = KindLoopStart
			end, ok = FindLoopEnd(lines, i)
		case KindConditionalStart:
			opener = KindConditionalStart
			end, ok = FindConditionalEnd(lines, i)
		default:
			continue
		}
		if !ok {
			continue
		}
		for j := i + 1; j < end; j++ {
			if Classify(strings.TrimSpace(lines[j])) == opener {
				nested = append(nested, NestedBlock{Outer: i, Inner: j})
				break
			}
		}
	}
	return nested
}
