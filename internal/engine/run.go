package engine

import (
	"context"
	"time"

	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/uniforms"
)

// Run drives the engine from two sources in a single goroutine: events are
// applied as they arrive, and every value received from ticks triggers one
// Tick with the time measured since the previous one, followed by render.
// The first tick counts as one nominal frame.
//
// Run returns nil when ticks is closed and ctx.Err() when ctx is done. A
// closed events channel only stops event delivery. Stopping leaves the
// camera exactly where it was.
func (e *Engine) Run(ctx context.Context, events <-chan input.Event, ticks <-chan time.Time, render func(uniforms.Snapshot)) error {
	Logger().Info("engine run started")
	defer Logger().Info("engine run stopped", "ticks", e.ticks)

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			e.Handle(ev)

		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			elapsed := physics.NominalFrame
			if !last.IsZero() {
				elapsed = now.Sub(last).Seconds()
			}
			last = now

			events = e.drain(events)
			e.Tick(elapsed)
			if render != nil {
				render(e.Snapshot())
			}
		}
	}
}

// drain applies every event already queued so none of them slips past the
// tick that follows. It returns nil once events is closed.
func (e *Engine) drain(events <-chan input.Event) <-chan input.Event {
	for events != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.Handle(ev)
		default:
			return events
		}
	}
	return nil
}
