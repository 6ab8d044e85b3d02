package recorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/platform"
)

// capturedEvent is one posted hook event. Exactly one field is set.
type capturedEvent struct {
	pointer *platform.PointerEvent
	key     *platform.KeyEvent
}

// PassiveRecorder funnels pointer and key hooks into a single consumer
// that owns the session. Hook callbacks only post; the consumer is the
// sole writer of session state, so no flush can observe a half-updated
// buffer.
type PassiveRecorder struct {
	hooks   platform.Hooks
	session *Session
	idleFor time.Duration
	logger  *slog.Logger
	events  chan capturedEvent
}

// NewPassive builds a passive recorder over the given hooks and point
// resolver.
func NewPassive(hooks platform.Hooks, points PointSource, cfg Config) *PassiveRecorder {
	return &PassiveRecorder{
		hooks:   hooks,
		session: NewSession(points, cfg),
		idleFor: cfg.idleFlush(),
		logger:  cfg.logger(),
		events:  make(chan capturedEvent, 256),
	}
}

// StopKey reports the hotkey that ends the session.
func (r *PassiveRecorder) StopKey() string { return r.session.StopKey() }

// Record captures events until the stop hotkey, then returns the recorded
// steps. Hook registration failure is fatal and returns a *CaptureError
// before any event is processed. Cancelling ctx also ends the session,
// flushing what was captured.
func (r *PassiveRecorder) Record(ctx context.Context) ([]macro.Step, error) {
	if err := r.hooks.Start(r.postPointer, r.postKey); err != nil {
		return nil, &CaptureError{Source: "input hooks", Err: err}
	}
	defer r.hooks.Stop()

	r.session.Start()
	r.logger.Info("recording started", "stop_key", r.session.StopKey())

	idle := time.NewTimer(r.idleFor)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			r.drain()
			r.logger.Info("recording interrupted, saving captured steps")
			return r.session.Finish(), nil
		case ev := <-r.events:
			if r.consume(ev) {
				return r.session.Finish(), nil
			}
			if ev.key != nil {
				idle.Reset(r.idleFor)
			}
		case <-idle.C:
			r.session.HandleIdle()
			idle.Reset(r.idleFor)
		}
	}
}

// consume applies one event to the session and reports whether it was the
// stop hotkey.
func (r *PassiveRecorder) consume(ev capturedEvent) bool {
	switch {
	case ev.pointer != nil:
		r.session.HandlePointer(*ev.pointer)
	case ev.key != nil:
		return r.session.HandleKey(*ev.key)
	}
	return false
}

// drain applies events already posted before cancellation so captured
// input is not lost.
func (r *PassiveRecorder) drain() {
	for {
		select {
		case ev := <-r.events:
			if r.consume(ev) {
				return
			}
		default:
			return
		}
	}
}

func (r *PassiveRecorder) postPointer(ev platform.PointerEvent) {
	select {
	case r.events <- capturedEvent{pointer: &ev}:
	default:
		r.logger.Warn("event queue full, pointer event dropped")
	}
}

func (r *PassiveRecorder) postKey(ev platform.KeyEvent) {
	select {
	case r.events <- capturedEvent{key: &ev}:
	default:
		r.logger.Warn("event queue full, key event dropped")
	}
}
