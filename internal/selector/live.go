package selector

import (
	"fmt"

	"github.com/hfwin/handsfree/internal/model"
)

// WindowSource lists top-level windows in z-order (frontmost first).
type WindowSource interface {
	ListWindows() ([]model.Window, error)
}

// TreeSource reads the full element tree for a window.
type TreeSource interface {
	WindowTree(w model.Window) (*model.Element, error)
}

// LiveResolver binds the pure resolution algorithm to a live desktop:
// window enumeration plus tree reads. Commands and the macro engine share
// one instance; tests substitute fake sources.
type LiveResolver struct {
	Windows WindowSource
	Trees   TreeSource
	Options ResolveOptions
}

// FindWindow returns the first window in z-order satisfying the matcher.
// Callers needing disambiguation supply a more specific matcher.
func (r *LiveResolver) FindWindow(m WindowMatcher) (model.Window, error) {
	windows, err := r.Windows.ListWindows()
	if err != nil {
		return model.Window{}, fmt.Errorf("list windows: %w", err)
	}
	for _, w := range windows {
		if m.Matches(w) {
			return w, nil
		}
	}
	return model.Window{}, &WindowNotFoundError{Matcher: m}
}

// Resolve finds the window, reads its tree, and runs the candidate chain.
// One call is one attempt; retry/timeout policy belongs to the caller.
func (r *LiveResolver) Resolve(sel *Selector) (*model.Element, error) {
	w, err := r.FindWindow(sel.Window)
	if err != nil {
		return nil, err
	}
	root, err := r.Trees.WindowTree(w)
	if err != nil {
		return nil, fmt.Errorf("read element tree: %w", err)
	}
	return Resolve(root, sel.Targets, r.Options)
}

// ResolveIn runs the candidate chain against a caller-supplied root,
// bypassing window lookup. Used when the caller already holds a tree.
func (r *LiveResolver) ResolveIn(root *model.Element, sel *Selector) (*model.Element, error) {
	return Resolve(root, sel.Targets, r.Options)
}
