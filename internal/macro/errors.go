package macro

import (
	"errors"
	"fmt"

	"github.com/hfwin/handsfree/internal/selector"
)

// ErrStepTimeout marks a step whose target never resolved within its budget.
var ErrStepTimeout = errors.New("step timed out")

// ErrBadDocument marks a macro document that could not be read, parsed,
// or validated.
var ErrBadDocument = errors.New("invalid macro document")

// StepError reports which step of a run failed and why. Index is the
// zero-based position of the step in the document.
type StepError struct {
	Index    int
	Action   string
	Selector *selector.Selector
	Err      error
}

func (e *StepError) Error() string {
	if e.Selector != nil {
		return fmt.Sprintf("step %d (%s): %v [%s]", e.Index, e.Action, e.Err, e.Selector)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Action, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DocumentError wraps a load/save failure with the operation that hit it.
type DocumentError struct {
	Op  string
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("macro document: %s: %v", e.Op, e.Err)
}

func (e *DocumentError) Unwrap() []error { return []error{ErrBadDocument, e.Err} }
