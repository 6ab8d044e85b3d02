package macro

import (
	"errors"
	"fmt"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

// LiveDriver implements UIDriver against a platform provider. Commands
// and the MCP server share this wiring.
type LiveDriver struct {
	res     *selector.LiveResolver
	wm      platform.WindowManager
	actions platform.ActionPerformer
	input   platform.Inputter

	// TypeDelayMs paces synthesized keystrokes in the click-and-type
	// fallback path.
	TypeDelayMs int
}

// NewLiveDriver binds a resolver and input stack to the provider.
func NewLiveDriver(p *platform.Provider, opts selector.ResolveOptions) *LiveDriver {
	return &LiveDriver{
		res: &selector.LiveResolver{
			Windows: p.WindowManager,
			Trees:   fullTreeSource{p.TreeReader},
			Options: opts,
		},
		wm:      p.WindowManager,
		actions: p.ActionPerformer,
		input:   p.Inputter,
	}
}

// fullTreeSource adapts platform.TreeReader to selector.TreeSource;
// resolution always reads the full tree.
type fullTreeSource struct {
	r platform.TreeReader
}

func (s fullTreeSource) WindowTree(w model.Window) (*model.Element, error) {
	return s.r.WindowTree(w, platform.TreeOptions{})
}

var _ UIDriver = (*LiveDriver)(nil)

// Resolver exposes the underlying selector resolver for callers that
// need window lookup or dry-run resolution.
func (d *LiveDriver) Resolver() *selector.LiveResolver {
	return d.res
}

func (d *LiveDriver) ResolveSelector(sel *selector.Selector) (*model.Element, error) {
	return d.res.Resolve(sel)
}

func (d *LiveDriver) FocusWindow(m *selector.WindowMatcher) error {
	w, err := d.res.FindWindow(*m)
	if err != nil {
		return err
	}
	return d.wm.FocusWindow(w)
}

func (d *LiveDriver) InvokeElement(el *model.Element) error {
	if d.actions == nil {
		return platform.ErrUnsupportedAction
	}
	return d.actions.Invoke(el)
}

func (d *LiveDriver) ClickAt(x, y int, button platform.MouseButton, count int) error {
	return d.input.Click(x, y, button, count)
}

// TypeInto writes text into a resolved element. Without enter it prefers
// the element's Value pattern and falls back to focusing with a click
// and typing. With enter the physical route is always used, so the key
// lands in the control that got the text.
func (d *LiveDriver) TypeInto(el *model.Element, text string, enter bool) error {
	if !enter && d.actions != nil {
		err := d.actions.SetValue(el, text)
		if err == nil {
			return nil
		}
		if !errors.Is(err, platform.ErrUnsupportedAction) {
			return err
		}
	}
	x, y := el.Rect.Center()
	if err := d.input.Click(x, y, platform.MouseLeft, 1); err != nil {
		return fmt.Errorf("focus element %q: %w", el.Name, err)
	}
	if text != "" {
		if err := d.input.TypeText(text, d.TypeDelayMs); err != nil {
			return err
		}
	}
	if enter {
		return d.input.SendKey("enter")
	}
	return nil
}

// TypeText types into whatever holds keyboard focus.
func (d *LiveDriver) TypeText(text string, enter bool) error {
	if text != "" {
		if err := d.input.TypeText(text, d.TypeDelayMs); err != nil {
			return err
		}
	}
	if enter {
		return d.input.SendKey("enter")
	}
	return nil
}

func (d *LiveDriver) SendKeys(keys []string) error {
	if len(keys) == 1 {
		return d.input.SendKey(keys[0])
	}
	return d.input.KeyCombo(keys)
}

func (d *LiveDriver) ScrollAt(x, y, amount int) error {
	return d.input.Scroll(x, y, amount)
}
