package recorder

import (
	"errors"
	"fmt"
)

// ErrCapture marks a failure to install global input capture at recording
// start. It is fatal: a session never starts half-hooked.
var ErrCapture = errors.New("input capture failed")

// CaptureError wraps the registration failure with its source.
type CaptureError struct {
	Source string
	Err    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("recording: %s: %v", e.Source, e.Err)
}

func (e *CaptureError) Unwrap() []error { return []error{ErrCapture, e.Err} }
