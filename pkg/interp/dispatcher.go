package interp

import (
	"context"

	"github.com/zurustar/kame/pkg/command"
)

// Owner runs functions on the context that owns the drawing surface.
// Do blocks until fn has run exactly once, or returns ctx.Err() without
// running it.
type Owner interface {
	Do(ctx context.Context, fn func()) error
}

// DirectOwner runs fn on the calling goroutine. It is the owner for hosts
// that have no dedicated surface goroutine.
type DirectOwner struct{}

// Do runs fn unless ctx is already done.
func (DirectOwner) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

// Dispatcher resolves parsed commands to drawing commands and runs them
// against the surface through the owner.
type Dispatcher struct {
	table   *command.Table
	surface command.Surface
	owner   Owner
}

// NewDispatcher creates a dispatcher. A nil owner means DirectOwner.
func NewDispatcher(table *command.Table, surface command.Surface, owner Owner) *Dispatcher {
	if owner == nil {
		owner = DirectOwner{}
	}
	return &Dispatcher{
		table:   table,
		surface: surface,
		owner:   owner,
	}
}

// Dispatch runs cmd. Unknown keywords are ignored. The returned error is
// either the owner's context error or the command's own error.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd ParsedCommand) (handled bool, err error) {
	dc, ok := d.table.Lookup(cmd.Keyword)
	if !ok {
		return false, nil
	}
	var cmdErr error
	if err := d.owner.Do(ctx, func() {
		cmdErr = dc.Execute(d.surface, cmd.Args)
	}); err != nil {
		return false, err
	}
	return true, cmdErr
}
