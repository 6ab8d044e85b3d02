package macro

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

// DefaultPoll is the selector re-resolution interval while a step waits
// for its target to appear.
const DefaultPoll = 200 * time.Millisecond

// UIDriver is the desktop surface the engine drives. The live
// implementation resolves against the platform provider; tests substitute
// a fake.
type UIDriver interface {
	ResolveSelector(sel *selector.Selector) (*model.Element, error)
	FocusWindow(m *selector.WindowMatcher) error
	InvokeElement(el *model.Element) error
	ClickAt(x, y int, button platform.MouseButton, count int) error
	TypeInto(el *model.Element, text string, enter bool) error
	TypeText(text string, enter bool) error
	SendKeys(keys []string) error
	ScrollAt(x, y, amount int) error
}

// BrowserDriver executes browser-* steps against a managed browser.
type BrowserDriver interface {
	Open(browser, url string) error
	Navigate(url string) error
	Click(css, text string) error
	Type(css, text string, enter bool) error
}

// Engine replays macro documents step by step.
type Engine struct {
	UI      UIDriver
	Browser BrowserDriver
	Poll    time.Duration
	Logger  *slog.Logger

	now   func() time.Time
	sleep func(time.Duration)
}

// NewEngine builds an engine with the default poll interval. Browser may
// be nil; browser-* steps then fail with a clear error.
func NewEngine(ui UIDriver, browser BrowserDriver) *Engine {
	return &Engine{
		UI:      ui,
		Browser: browser,
		Poll:    DefaultPoll,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// StepResult is the per-step record in a run report. Step is the
// zero-based index of the step in the document.
type StepResult struct {
	Step    int    `yaml:"step"              json:"step"`
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	Elapsed string `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
	Error   string `yaml:"error,omitempty"   json:"error,omitempty"`
}

// RunResult reports a full run.
type RunResult struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// Run executes steps in order, stopping at the first failure. The
// returned RunResult always describes every step attempted; on failure
// the error is a *StepError naming the zero-based index, action, and
// selector of the step that failed.
func (e *Engine) Run(steps []Step) (*RunResult, error) {
	res := &RunResult{Steps: len(steps)}
	for i := range steps {
		step := &steps[i]
		if step.DelayBefore > 0 {
			e.sleepFor(time.Duration(step.DelayBefore) * time.Millisecond)
		}

		start := e.clock()
		err := e.runStep(step)
		sr := StepResult{
			Step:    i,
			Action:  step.Action,
			Elapsed: e.clock().Sub(start).Round(time.Millisecond).String(),
		}
		if err != nil {
			stepErr := &StepError{Index: i, Action: step.Action, Selector: step.Selector, Err: err}
			sr.Error = err.Error()
			res.Results = append(res.Results, sr)
			res.Error = stepErr.Error()
			e.log().Error("macro step failed", "step", i, "action", step.Action, "error", err)
			return res, stepErr
		}
		sr.OK = true
		res.Results = append(res.Results, sr)
		res.Completed++
		e.log().Debug("macro step done", "step", i, "action", step.Action, "elapsed", sr.Elapsed)
	}
	res.OK = true
	return res, nil
}

func (e *Engine) runStep(s *Step) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Action {
	case ActionFocus:
		return e.UI.FocusWindow(&s.Selector.Window)
	case ActionClick:
		return e.runClick(s)
	case ActionType:
		return e.runType(s)
	case ActionSleep:
		e.sleepFor(time.Duration(s.Seconds * float64(time.Second)))
		return nil
	case ActionKey:
		if s.Selector != nil {
			if err := e.UI.FocusWindow(&s.Selector.Window); err != nil {
				return err
			}
		}
		return e.UI.SendKeys(strings.Split(s.Key, "+"))
	case ActionScroll:
		return e.UI.ScrollAt(s.X, s.Y, s.Amount)
	case ActionBrowserOpen, ActionBrowserNavigate, ActionBrowserClick, ActionBrowserType:
		return e.runBrowser(s)
	}
	return fmt.Errorf("unknown action %q", s.Action)
}

// runClick prefers the element's Invoke pattern and falls back to a
// physical click on its center when the pattern is missing.
func (e *Engine) runClick(s *Step) error {
	if s.Selector == nil {
		return e.UI.ClickAt(s.X, s.Y, platform.MouseLeft, 1)
	}
	el, err := e.resolve(s)
	if err != nil {
		return err
	}
	err = e.UI.InvokeElement(el)
	if err == nil {
		return nil
	}
	if errors.Is(err, platform.ErrUnsupportedAction) {
		cx, cy := el.Rect.Center()
		return e.UI.ClickAt(cx, cy, platform.MouseLeft, 1)
	}
	return err
}

func (e *Engine) runType(s *Step) error {
	if s.Selector == nil {
		return e.UI.TypeText(s.Text, s.Enter)
	}
	el, err := e.resolve(s)
	if err != nil {
		return err
	}
	return e.UI.TypeInto(el, s.Text, s.Enter)
}

func (e *Engine) runBrowser(s *Step) error {
	if e.Browser == nil {
		return fmt.Errorf("browser backend not available")
	}
	switch s.Action {
	case ActionBrowserOpen:
		return e.Browser.Open(s.Browser, s.URL)
	case ActionBrowserNavigate:
		return e.Browser.Navigate(s.URL)
	case ActionBrowserClick:
		return e.Browser.Click(s.CSS, s.Text)
	case ActionBrowserType:
		return e.Browser.Type(s.CSS, s.Text, s.Enter)
	}
	return fmt.Errorf("unknown browser action %q", s.Action)
}

// resolve polls the selector until it resolves or the step's budget runs
// out. The last resolution error stays visible inside the timeout error.
func (e *Engine) resolve(s *Step) (*model.Element, error) {
	deadline := e.clock().Add(s.Timeout())
	for {
		el, err := e.UI.ResolveSelector(s.Selector)
		if err == nil {
			return el, nil
		}
		if !e.clock().Before(deadline) {
			return nil, fmt.Errorf("%w after %s: %w", ErrStepTimeout, s.Timeout(), err)
		}
		e.sleepFor(e.pollInterval())
	}
}

func (e *Engine) pollInterval() time.Duration {
	if e.Poll > 0 {
		return e.Poll
	}
	return DefaultPoll
}

func (e *Engine) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *Engine) sleepFor(d time.Duration) {
	if d <= 0 {
		return
	}
	if e.sleep != nil {
		e.sleep(d)
		return
	}
	time.Sleep(d)
}

func (e *Engine) log() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
