package interp

import (
	"log/slog"
	"sync"
)

// ErrorSink receives every error the executor reports. Reporting never
// aborts the run by itself.
type ErrorSink interface {
	Report(err *ScriptError)
}

// SinkFunc adapts a function to ErrorSink.
type SinkFunc func(err *ScriptError)

// Report calls f(err).
func (f SinkFunc) Report(err *ScriptError) {
	f(err)
}

// LogSink reports errors to a structured logger.
type LogSink struct {
	Log *slog.Logger
}

// Report logs err at error level.
func (s LogSink) Report(err *ScriptError) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.Error("Script error", "kind", string(err.Kind), "line", err.Line, "text", err.Text, "message", err.Message)
}

// Collector keeps every reported error. It is safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	errors []*ScriptError
}

// Report appends err.
func (c *Collector) Report(err *ScriptError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns a copy of the collected errors in report order.
func (c *Collector) Errors() []*ScriptError {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]*ScriptError, len(c.errors))
	copy(result, c.errors)
	return result
}

// Kinds returns the kinds of the collected errors in report order.
func (c *Collector) Kinds() []ErrorKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	kinds := make([]ErrorKind, len(c.errors))
	for i, e := range c.errors {
		kinds[i] = e.Kind
	}
	return kinds
}

// MultiSink fans a report out to several sinks.
type MultiSink []ErrorSink

// Report forwards err to every sink in order.
func (m MultiSink) Report(err *ScriptError) {
	for _, s := range m {
		if s != nil {
			s.Report(err)
		}
	}
}
