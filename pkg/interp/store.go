package interp

import (
	"sort"
	"strconv"
	"strings"
)

// Store is the flat variable store of one script run. Names are
// case-sensitive; entries are never deleted.
type Store struct {
	vars map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{vars: make(map[string]int)}
}

// Assign applies an assignment line of the form "name = value". The store
// is left unchanged when the line is malformed.
func (s *Store) Assign(line string) error {
	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		return NewMalformedAssignmentError(line, "invalid assignment format")
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return NewMalformedAssignmentError(line, "missing variable name in assignment")
	}
	value, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return NewMalformedAssignmentError(line, "invalid number format in assignment")
	}
	s.vars[name] = value
	return nil
}

// Get returns the value of name and whether it exists.
func (s *Store) Get(name string) (int, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set creates or overwrites name.
func (s *Store) Set(name string, value int) {
	s.vars[name] = value
}

// Len returns the number of variables.
func (s *Store) Len() int {
	return len(s.vars)
}

// Names returns the variable names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the variables.
func (s *Store) Snapshot() map[string]int {
	result := make(map[string]int, len(s.vars))
	for k, v := range s.vars {
		result[k] = v
	}
	return result
}
