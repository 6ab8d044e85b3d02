package macro

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

type fakeWM struct {
	windows []model.Window
	focused []string
}

func (f *fakeWM) ListWindows() ([]model.Window, error) { return f.windows, nil }

func (f *fakeWM) FocusWindow(w model.Window) error {
	f.focused = append(f.focused, w.Title)
	return nil
}

func (f *fakeWM) ActiveWindow() (model.Window, error) {
	if len(f.windows) == 0 {
		return model.Window{}, errors.New("no windows")
	}
	return f.windows[0], nil
}

type fakeTrees struct {
	root *model.Element
	err  error
}

func (f *fakeTrees) WindowTree(w model.Window, opts platform.TreeOptions) (*model.Element, error) {
	return f.root, f.err
}

type fakeActions struct {
	setValues []string
	invoked   []string
	setErr    error
	invokeErr error
}

func (f *fakeActions) Invoke(el *model.Element) error {
	f.invoked = append(f.invoked, el.Name)
	return f.invokeErr
}

func (f *fakeActions) SetValue(el *model.Element, text string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setValues = append(f.setValues, el.Name+"="+text)
	return nil
}

type fakeInput struct {
	calls []string
}

func (f *fakeInput) Click(x, y int, b platform.MouseButton, count int) error {
	f.calls = append(f.calls, fmt.Sprintf("click:%d,%d,%s,%d", x, y, b, count))
	return nil
}

func (f *fakeInput) MoveMouse(x, y int) error {
	f.calls = append(f.calls, fmt.Sprintf("move:%d,%d", x, y))
	return nil
}

func (f *fakeInput) Drag(fromX, fromY, toX, toY int) error {
	f.calls = append(f.calls, fmt.Sprintf("drag:%d,%d->%d,%d", fromX, fromY, toX, toY))
	return nil
}

func (f *fakeInput) Scroll(x, y, amount int) error {
	f.calls = append(f.calls, fmt.Sprintf("scroll:%d,%d,%d", x, y, amount))
	return nil
}

func (f *fakeInput) TypeText(text string, delayMs int) error {
	f.calls = append(f.calls, "type:"+text)
	return nil
}

func (f *fakeInput) SendKey(name string) error {
	f.calls = append(f.calls, "key:"+name)
	return nil
}

func (f *fakeInput) KeyCombo(keys []string) error {
	f.calls = append(f.calls, "combo:"+strings.Join(keys, "+"))
	return nil
}

func newLiveFixture() (*LiveDriver, *fakeWM, *fakeActions, *fakeInput) {
	root := &model.Element{
		Name:        "Notepad",
		ControlType: "Window",
		Children:    []model.Element{*saveButton()},
	}
	wm := &fakeWM{windows: []model.Window{{Title: "Notepad", Handle: 7}}}
	actions := &fakeActions{}
	input := &fakeInput{}
	p := &platform.Provider{
		WindowManager:   wm,
		TreeReader:      &fakeTrees{root: root},
		ActionPerformer: actions,
		Inputter:        input,
	}
	return NewLiveDriver(p, selector.ResolveOptions{}), wm, actions, input
}

func TestLiveDriverResolvesSelector(t *testing.T) {
	d, _, _, _ := newLiveFixture()

	el, err := d.ResolveSelector(buttonSelector())
	if err != nil {
		t.Fatalf("ResolveSelector: %v", err)
	}
	if el.AutoID != "btnSave" {
		t.Errorf("resolved auto_id = %q, want btnSave", el.AutoID)
	}
}

func TestLiveDriverFocusWindow(t *testing.T) {
	d, wm, _, _ := newLiveFixture()

	if err := d.FocusWindow(&selector.WindowMatcher{Title: "notepad"}); err != nil {
		t.Fatalf("FocusWindow: %v", err)
	}
	if len(wm.focused) != 1 || wm.focused[0] != "Notepad" {
		t.Errorf("focused = %v, want [Notepad]", wm.focused)
	}

	err := d.FocusWindow(&selector.WindowMatcher{Title: "Paint"})
	if !errors.Is(err, selector.ErrWindowNotFound) {
		t.Errorf("error = %v, want ErrWindowNotFound", err)
	}
}

func TestTypeIntoPrefersSetValue(t *testing.T) {
	d, _, actions, input := newLiveFixture()

	if err := d.TypeInto(saveButton(), "hello", false); err != nil {
		t.Fatalf("TypeInto: %v", err)
	}
	if len(actions.setValues) != 1 || actions.setValues[0] != "Save=hello" {
		t.Errorf("setValues = %v, want [Save=hello]", actions.setValues)
	}
	if len(input.calls) != 0 {
		t.Errorf("input calls = %v, want none", input.calls)
	}
}

func TestTypeIntoFallsBackWhenValueUnsupported(t *testing.T) {
	d, _, actions, input := newLiveFixture()
	actions.setErr = platform.ErrUnsupportedAction

	if err := d.TypeInto(saveButton(), "hello", false); err != nil {
		t.Fatalf("TypeInto: %v", err)
	}
	want := []string{"click:140,215,left,1", "type:hello"}
	if len(input.calls) != 2 || input.calls[0] != want[0] || input.calls[1] != want[1] {
		t.Errorf("input calls = %v, want %v", input.calls, want)
	}
}

func TestTypeIntoWithEnterTypesPhysically(t *testing.T) {
	d, _, actions, input := newLiveFixture()

	if err := d.TypeInto(saveButton(), "report.txt", true); err != nil {
		t.Fatalf("TypeInto: %v", err)
	}
	if len(actions.setValues) != 0 {
		t.Errorf("setValues = %v, want none when enter is requested", actions.setValues)
	}
	want := []string{"click:140,215,left,1", "type:report.txt", "key:enter"}
	if len(input.calls) != 3 {
		t.Fatalf("input calls = %v, want %v", input.calls, want)
	}
	for i := range want {
		if input.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, input.calls[i], want[i])
		}
	}
}

func TestTypeIntoSurfacesValueFailure(t *testing.T) {
	d, _, actions, input := newLiveFixture()
	actions.setErr = errors.New("control is read-only")

	err := d.TypeInto(saveButton(), "hello", false)
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Fatalf("error = %v, want read-only failure", err)
	}
	if len(input.calls) != 0 {
		t.Errorf("input calls = %v, want none after hard failure", input.calls)
	}
}

func TestSendKeysSingleAndCombo(t *testing.T) {
	d, _, _, input := newLiveFixture()

	if err := d.SendKeys([]string{"enter"}); err != nil {
		t.Fatal(err)
	}
	if err := d.SendKeys([]string{"ctrl", "s"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"key:enter", "combo:ctrl+s"}
	if len(input.calls) != 2 || input.calls[0] != want[0] || input.calls[1] != want[1] {
		t.Errorf("input calls = %v, want %v", input.calls, want)
	}
}
