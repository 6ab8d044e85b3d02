package selector

import "github.com/hfwin/handsfree/internal/model"

// Derive builds the fallback candidate chain for a live element, given its
// ancestry path (root window element first, the element itself last) and
// its depth-first index among same-control-type descendants of the window.
//
// The chain is ordered most-specific-but-fragile to most-generic-but-stable:
//
//  1. auto_id + control_type + name: everything identifying the element,
//     present when it carries both an automation id and a name;
//  2. auto_id + control_type: generated ids rarely survive a process
//     restart, but outlive relabeling;
//  3. name + control_type: survives restarts, breaks on relabeling;
//  4. control_type + index: survives both, breaks on structural change.
//
// The last candidate is always present so every derived selector has a
// structure-based anchor.
func Derive(path []model.Element, typeIndex int) []Target {
	if len(path) == 0 {
		return nil
	}
	return chainFor(path[len(path)-1], typeIndex)
}

func chainFor(el model.Element, typeIndex int) []Target {
	var targets []Target
	if el.AutoID != "" && el.Name != "" {
		targets = append(targets, Target{AutoID: el.AutoID, ControlType: el.ControlType, Name: el.Name})
	}
	if el.AutoID != "" {
		targets = append(targets, Target{AutoID: el.AutoID, ControlType: el.ControlType})
	}
	if el.Name != "" {
		targets = append(targets, Target{Name: el.Name, ControlType: el.ControlType})
	}
	idx := typeIndex
	targets = append(targets, Target{ControlType: el.ControlType, Index: &idx})
	return targets
}

// WindowFrom builds the window matcher a recorded selector uses for the
// window an element was captured in. Exact title keeps the document
// readable; matching is case-insensitive at resolve time.
func WindowFrom(w model.Window) WindowMatcher {
	return WindowMatcher{Title: w.Title}
}

// ForElement assembles a complete selector for a captured element.
func ForElement(w model.Window, path []model.Element, typeIndex int) *Selector {
	return &Selector{
		Window:  WindowFrom(w),
		Targets: Derive(path, typeIndex),
	}
}

// ForCanvas builds a selector addressing a window's largest canvas-like
// surface (Pane, Custom, or Document), with the same fallback chain shape
// recording emits for clicked elements.
func ForCanvas(w model.Window, root *model.Element) *Selector {
	canvas := model.LargestCanvas(root)
	if canvas == nil {
		return nil
	}

	// Index among same-control-type descendants, depth-first, mirroring
	// how an index candidate is resolved.
	idx, n := 0, 0
	model.Walk(root, func(el *model.Element) bool {
		if el.ControlType == canvas.ControlType {
			if el == canvas {
				idx = n
				return false
			}
			n++
		}
		return true
	})

	return &Selector{Window: WindowFrom(w), Targets: chainFor(*canvas, idx)}
}
