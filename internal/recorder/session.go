// Package recorder turns live or prompted user input into macro steps.
// Passive capture funnels hook events through a single consumer that owns
// a Session; interactive capture prompts for one action at a time.
package recorder

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

const (
	// DefaultIdleFlush is how long the key buffer may sit untouched
	// before it is flushed as a type step.
	DefaultIdleFlush = 1500 * time.Millisecond

	// DefaultStopKey ends a passive recording session.
	DefaultStopKey = "f9"
)

// PointSource resolves the element under a screen point. The live
// implementation is the provider's PointReader.
type PointSource interface {
	ElementFromPoint(x, y int) (*platform.PointHit, error)
}

// State tags the passive-recording lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopping
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopping:
		return "stopping"
	case StateSaved:
		return "saved"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Config holds recording options shared by the session and the passive
// funnel.
type Config struct {
	// StopKey is the hotkey that ends passive capture. Default "f9".
	StopKey string

	// IdleFlush is the quiet period after which pending text is flushed.
	// Default 1.5s.
	IdleFlush time.Duration

	Logger *slog.Logger
}

func (c *Config) stopKey() string {
	if c.StopKey != "" {
		return strings.ToLower(c.StopKey)
	}
	return DefaultStopKey
}

func (c *Config) idleFlush() time.Duration {
	if c.IdleFlush > 0 {
		return c.IdleFlush
	}
	return DefaultIdleFlush
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Session accumulates macro steps from capture events. It is not safe for
// concurrent use: exactly one consumer feeds it, in arrival order.
type Session struct {
	points  PointSource
	stopKey string
	logger  *slog.Logger
	now     func() time.Time

	state        State
	steps        []macro.Step
	buffer       []rune
	bufferStart  time.Time
	lastSelector *selector.Selector
	lastEmit     time.Time
}

// NewSession builds an idle session; Start begins accepting events.
func NewSession(points PointSource, cfg Config) *Session {
	return &Session{
		points:  points,
		stopKey: cfg.stopKey(),
		logger:  cfg.logger(),
		now:     time.Now,
	}
}

// Start moves the session into the recording state.
func (s *Session) Start() {
	if s.state == StateIdle {
		s.state = StateRecording
	}
}

// State reports where the session is in its lifecycle.
func (s *Session) State() State { return s.state }

// StopKey reports the configured stop hotkey.
func (s *Session) StopKey() string { return s.stopKey }

// HandleKey applies one key event and reports whether it was the stop
// hotkey. The hotkey is checked before any buffer rule, so it can never
// reach the buffer or the step list.
func (s *Session) HandleKey(ev platform.KeyEvent) bool {
	if s.state != StateRecording {
		return false
	}
	if s.isStopKey(ev) {
		s.flush(false)
		s.state = StateStopping
		return true
	}
	switch {
	case ev.Printable():
		if len(s.buffer) == 0 {
			s.bufferStart = s.at(ev.When)
		}
		s.buffer = append(s.buffer, ev.Rune)
	case ev.Name == "enter":
		s.flush(true)
	default:
		// Navigation and editing keys flush pending text; the key itself
		// is never recorded.
		s.flush(false)
	}
	return false
}

// HandlePointer applies one pointer-down event. Pending text is flushed
// first so typed characters land before the click that follows them. A
// click whose element cannot be resolved is logged and skipped; the
// session keeps recording.
func (s *Session) HandlePointer(ev platform.PointerEvent) {
	if s.state != StateRecording || ev.Button != platform.MouseLeft {
		return
	}
	s.flush(false)

	hit, err := s.points.ElementFromPoint(ev.X, ev.Y)
	if err != nil || hit.Element() == nil {
		s.logger.Warn("click not recorded: no resolvable element",
			"x", ev.X, "y", ev.Y, "error", err)
		return
	}
	sel := selector.ForElement(hit.Window, hit.Path, hit.TypeIndex)
	s.emit(macro.ClickStep(sel, ev.X, ev.Y), s.at(ev.When))
	s.lastSelector = sel
}

// HandleIdle flushes pending text after a quiet period.
func (s *Session) HandleIdle() {
	if s.state != StateRecording {
		return
	}
	s.flush(false)
}

// Finish flushes any pending text, seals the session, and returns the
// recorded steps.
func (s *Session) Finish() []macro.Step {
	if s.state == StateRecording {
		s.flush(false)
	}
	s.state = StateSaved
	return s.steps
}

// flush converts the pending buffer into a type step. An empty buffer
// produces nothing, including for enter.
func (s *Session) flush(enter bool) {
	if len(s.buffer) == 0 {
		return
	}
	step := macro.TypeStep(s.lastSelector, string(s.buffer), enter)
	s.emit(step, s.bufferStart)
	s.buffer = s.buffer[:0]
	s.logger.Info("recorded type step", "chars", len(step.Text), "enter", enter)
}

// emit appends a step, recording the gap since the previous step so
// replay can reproduce the operator's pacing.
func (s *Session) emit(step macro.Step, at time.Time) {
	if !s.lastEmit.IsZero() && at.After(s.lastEmit) {
		step.DelayBefore = int(at.Sub(s.lastEmit) / time.Millisecond)
	}
	s.lastEmit = at
	s.steps = append(s.steps, step)
}

func (s *Session) isStopKey(ev platform.KeyEvent) bool {
	key := ev.Name
	if key == "" && ev.Rune != 0 {
		key = string(ev.Rune)
	}
	return key != "" && strings.EqualFold(key, s.stopKey)
}

func (s *Session) at(when time.Time) time.Time {
	if when.IsZero() {
		return s.now()
	}
	return when
}
