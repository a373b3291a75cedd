package interp

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/zurustar/kame/pkg/command"
	"github.com/zurustar/kame/pkg/logger"
	"github.com/zurustar/kame/pkg/script"
)

// Status is the final state of a script run.
type Status int

const (
	// StatusCompleted means the program counter reached the end of the
	// script.
	StatusCompleted Status = iota
	// StatusHalted means a block terminator was missing.
	StatusHalted
	// StatusCanceled means the context was done before the script ended.
	StatusCanceled
)

// String returns a readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusHalted:
		return "halted"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	Status    Status
	PC        int            // program counter when the run ended
	Lines     int            // number of script lines
	Steps     int            // lines executed, loop body passes included
	Passes    int            // completed While body passes
	Variables map[string]int // final variable store
	Reported  int            // errors sent to the sink
	Err       error          // context error for StatusCanceled, fatal ScriptError for StatusHalted
}

// Executor runs turtle scripts against a drawing surface.
// An Executor may run several scripts one after another; every run gets
// a fresh variable store and program counter.
type Executor struct {
	dispatcher *Dispatcher
	sink       ErrorSink
	passHook   PassHook
	log        *slog.Logger
}

// PassHook is called after every completed While body pass, before the
// loop condition is evaluated again. pass counts from 1 for each loop.
type PassHook func(ctx context.Context, pass int, store *Store)

type settings struct {
	owner    Owner
	sink     ErrorSink
	home     command.State
	passHook PassHook
	log      *slog.Logger
}

// Option is a functional option for configuring the Executor.
type Option func(*settings)

// WithOwner sets the owner through which every surface mutation is made.
func WithOwner(owner Owner) Option {
	return func(s *settings) {
		s.owner = owner
	}
}

// WithErrorSink sets the sink that receives script errors.
func WithErrorSink(sink ErrorSink) Option {
	return func(s *settings) {
		s.sink = sink
	}
}

// WithHome sets the state the reset command restores.
func WithHome(home command.State) Option {
	return func(s *settings) {
		s.home = home
	}
}

// WithPassHook sets a function called after every While body pass.
func WithPassHook(hook PassHook) Option {
	return func(s *settings) {
		s.passHook = hook
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// New creates an Executor bound to surface.
func New(surface command.Surface, opts ...Option) *Executor {
	s := &settings{
		owner: DirectOwner{},
		home:  command.DefaultState(),
		log:   logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = LogSink{Log: s.log}
	}
	return &Executor{
		dispatcher: NewDispatcher(command.NewTable(s.home), surface, s.owner),
		sink:       s.sink,
		passHook:   s.passHook,
		log:        s.log,
	}
}

// Run splits source into lines and runs them.
func (e *Executor) Run(ctx context.Context, source string) Result {
	return e.RunLines(ctx, script.SplitLines(source))
}

// RunLines runs an already split script to completion, until a fatal
// error, or until ctx is done.
func (e *Executor) RunLines(ctx context.Context, lines []string) Result {
	r := &run{
		ctx:   ctx,
		e:     e,
		lines: lines,
		store: NewStore(),
	}
	for _, n := range CheckNesting(lines) {
		e.log.Warn("Nested block of the same kind closes its outer block early",
			"outer", n.Outer+1, "inner", n.Inner+1)
	}
	e.log.Debug("Script run started", "lines", len(lines))
	res := r.exec()
	e.log.Debug("Script run finished",
		"status", res.Status.String(),
		"pc", res.PC,
		"steps", res.Steps,
		"reported", res.Reported)
	return res
}

// run holds the state of a single script run.
type run struct {
	ctx      context.Context
	e        *Executor
	lines    []string
	store    *Store
	pc       int
	steps    int
	passes   int
	reported int
}

func (r *run) exec() Result {
	for r.pc < len(r.lines) {
		if err := r.ctx.Err(); err != nil {
			return r.result(StatusCanceled, err)
		}

		line := strings.TrimSpace(r.lines[r.pc])
		kind := Classify(line)
		r.e.log.Debug("Line", "pc", r.pc, "kind", kind.String(), "text", line)

		switch kind {
		case KindAssignment:
			r.assign(r.pc, line)
			r.pc++

		case KindLoopStart:
			next, status, err := r.while(line)
			if status != StatusCompleted {
				return r.result(status, err)
			}
			r.pc = next

		case KindConditionalStart:
			next, status, err := r.ifBlock(line)
			if status != StatusCompleted {
				return r.result(status, err)
			}
			r.pc = next

		case KindDrawingCommand:
			if err := r.draw(r.pc, line); err != nil {
				return r.result(StatusCanceled, err)
			}
			r.pc++

		default:
			// stray Endif/Endloop and unrecognized lines
			r.steps++
			r.pc++
		}
	}
	return r.result(StatusCompleted, nil)
}

// while runs a While block starting at r.pc and returns the index after
// its Endloop.
func (r *run) while(line string) (int, Status, error) {
	start := r.pc
	r.steps++
	end, ok := FindLoopEnd(r.lines, start)
	if !ok {
		err := NewMissingTerminatorError(keywordEndloop, "While loop", start)
		r.report(err)
		return NotFound, StatusHalted, err
	}

	cond := conditionText(line, len(keywordWhile)+1)
	pass := 0
	for Evaluate(cond, r.store) {
		if err := r.ctx.Err(); err != nil {
			return NotFound, StatusCanceled, err
		}
		for i := start + 1; i < end; i++ {
			body := strings.TrimSpace(r.lines[i])
			switch Classify(body) {
			case KindDrawingCommand:
				if err := r.draw(i, body); err != nil {
					return NotFound, StatusCanceled, err
				}
			case KindAssignment:
				r.assign(i, body)
			}
		}
		pass++
		r.passes++
		if r.e.passHook != nil {
			r.e.passHook(r.ctx, pass, r.store)
		}
	}
	return end + 1, StatusCompleted, nil
}

// ifBlock runs an If block starting at r.pc and returns the index after
// its Endif. Only drawing commands execute inside the body.
func (r *run) ifBlock(line string) (int, Status, error) {
	start := r.pc
	r.steps++
	end, ok := FindConditionalEnd(r.lines, start)
	if !ok {
		err := NewMissingTerminatorError(keywordEndif, "If statement", start)
		r.report(err)
		return NotFound, StatusHalted, err
	}

	cond := strings.TrimSpace(conditionText(line, len(keywordIf)+1))
	if Evaluate(cond, r.store) {
		for i := start + 1; i < end; i++ {
			body := strings.TrimSpace(r.lines[i])
			if Classify(body) != KindDrawingCommand {
				continue
			}
			if err := r.draw(i, body); err != nil {
				return NotFound, StatusCanceled, err
			}
		}
	}
	return end + 1, StatusCompleted, nil
}

func (r *run) assign(index int, line string) {
	r.steps++
	if err := r.store.Assign(line); err != nil {
		var se *ScriptError
		if errors.As(err, &se) {
			r.report(se.atLine(index, line))
		}
		return
	}
	r.e.log.Debug("Variable assigned", "line", index+1, "text", line)
}

// draw parses and dispatches a drawing command line. Command errors are
// reported; only a context error is returned.
func (r *run) draw(index int, line string) error {
	r.steps++
	cmd := ParseCommand(line)
	handled, err := r.e.dispatcher.Dispatch(r.ctx, cmd)
	if err == nil {
		return nil
	}
	if !handled {
		return err
	}
	kind := ErrorCommandFailed
	if errors.Is(err, command.ErrArguments) {
		kind = ErrorMalformedCommandArguments
	}
	r.report(NewCommandError(kind, cmd.Keyword, err).atLine(index, line))
	return nil
}

func (r *run) report(err *ScriptError) {
	r.reported++
	r.e.sink.Report(err)
}

func (r *run) result(status Status, err error) Result {
	return Result{
		Status:    status,
		PC:        r.pc,
		Lines:     len(r.lines),
		Steps:     r.steps,
		Passes:    r.passes,
		Variables: r.store.Snapshot(),
		Reported:  r.reported,
		Err:       err,
	}
}

// conditionText returns the text after a fixed-width block keyword
// prefix, or "" when the line is shorter than the prefix.
func conditionText(line string, prefix int) string {
	if len(line) < prefix {
		return ""
	}
	return line[prefix:]
}
