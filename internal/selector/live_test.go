package selector

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hfwin/handsfree/internal/model"
)

// fakeDesktop serves a fixed window list and one tree per window title.
type fakeDesktop struct {
	windows []model.Window
	trees   map[string]*model.Element
	listErr error
	treeErr error

	treeReads int
}

func (f *fakeDesktop) ListWindows() ([]model.Window, error) {
	return f.windows, f.listErr
}

func (f *fakeDesktop) WindowTree(w model.Window) (*model.Element, error) {
	f.treeReads++
	if f.treeErr != nil {
		return nil, f.treeErr
	}
	return f.trees[w.Title], nil
}

func newFakeDesktop() *fakeDesktop {
	return &fakeDesktop{
		windows: []model.Window{
			{Title: "Untitled - Notepad", ClassName: "Notepad"},
			{Title: "Calculator", ClassName: "ApplicationFrameWindow"},
		},
		trees: map[string]*model.Element{
			"Untitled - Notepad": {
				ControlType: "Window",
				Children: []model.Element{
					{Name: "Text editor", ControlType: "Edit", AutoID: "15"},
				},
			},
			"Calculator": dialogTree(),
		},
	}
}

func TestLiveResolver_Resolve(t *testing.T) {
	desk := newFakeDesktop()
	r := &LiveResolver{Windows: desk, Trees: desk}

	sel := &Selector{
		Window:  WindowMatcher{TitleRegex: `Notepad$`},
		Targets: []Target{{AutoID: "15", ControlType: "Edit"}},
	}
	el, err := r.Resolve(sel)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if el.Name != "Text editor" {
		t.Errorf("resolved %q, want %q", el.Name, "Text editor")
	}
}

func TestLiveResolver_WindowNotFound(t *testing.T) {
	desk := newFakeDesktop()
	r := &LiveResolver{Windows: desk, Trees: desk}

	sel := &Selector{
		Window:  WindowMatcher{Title: "Missing"},
		Targets: []Target{{Name: "x"}},
	}
	_, err := r.Resolve(sel)
	if !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("error = %v, want ErrWindowNotFound", err)
	}
	if desk.treeReads != 0 {
		t.Error("tree must not be read when the window lookup fails")
	}
}

func TestLiveResolver_FirstWindowInZOrderWins(t *testing.T) {
	desk := newFakeDesktop()
	desk.windows = []model.Window{
		{Title: "Report.txt - Notepad"},
		{Title: "Notes.txt - Notepad"},
	}
	r := &LiveResolver{Windows: desk, Trees: desk}

	w, err := r.FindWindow(WindowMatcher{TitleRegex: `Notepad$`})
	if err != nil {
		t.Fatalf("FindWindow returned error: %v", err)
	}
	if w.Title != "Report.txt - Notepad" {
		t.Errorf("matched %q, want the first window in z-order", w.Title)
	}
}

func TestLiveResolver_TreeReadFailure(t *testing.T) {
	desk := newFakeDesktop()
	desk.treeErr = fmt.Errorf("access denied")
	r := &LiveResolver{Windows: desk, Trees: desk}

	sel := &Selector{
		Window:  WindowMatcher{Title: "Calculator"},
		Targets: []Target{{Name: "Save"}},
	}
	_, err := r.Resolve(sel)
	if err == nil {
		t.Fatal("expected tree read error to surface")
	}
	if errors.Is(err, ErrElementNotFound) {
		t.Error("a tree read failure must not masquerade as element-not-found")
	}
}

func TestLiveResolver_AmbiguityOptionFlowsThrough(t *testing.T) {
	desk := newFakeDesktop()
	r := &LiveResolver{Windows: desk, Trees: desk, Options: ResolveOptions{Ambiguity: AmbiguityError}}

	sel := &Selector{
		Window:  WindowMatcher{Title: "Calculator"},
		Targets: []Target{{ControlType: "Button"}},
	}
	_, err := r.Resolve(sel)
	if !errors.Is(err, ErrAmbiguousMatch) {
		t.Errorf("error = %v, want ErrAmbiguousMatch under the error policy", err)
	}
}

func TestLiveResolver_ResolveIn(t *testing.T) {
	r := &LiveResolver{}
	root := dialogTree()
	sel := &Selector{
		Window:  WindowMatcher{Title: "ignored"},
		Targets: []Target{{Name: "Help", ControlType: "Button"}},
	}
	el, err := r.ResolveIn(root, sel)
	if err != nil {
		t.Fatalf("ResolveIn returned error: %v", err)
	}
	if el.Name != "Help" {
		t.Errorf("resolved %q, want %q", el.Name, "Help")
	}
}
