package recorder

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

// Interactive prompts for one action at a time, capturing click targets
// from the live cursor position. A failed capture reports the error and
// re-prompts without appending a step.
type Interactive struct {
	Points platform.PointReader
	In     io.Reader
	Out    io.Writer

	lastSelector *selector.Selector
}

// NewInteractive builds an interactive recorder reading from in and
// prompting on out.
func NewInteractive(points platform.PointReader, in io.Reader, out io.Writer) *Interactive {
	return &Interactive{Points: points, In: in, Out: out}
}

// Run prompts until "done" (or end of input) and returns the recorded
// steps.
func (r *Interactive) Run() ([]macro.Step, error) {
	sc := bufio.NewScanner(r.In)
	var steps []macro.Step
	for {
		fmt.Fprintf(r.Out, "[%d steps] action (click, type, sleep, done): ", len(steps))
		line, ok := readLine(sc)
		if !ok {
			return steps, sc.Err()
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "click":
			step, err := r.captureClick(sc)
			if err != nil {
				fmt.Fprintf(r.Out, "could not capture: %v\n", err)
				continue
			}
			steps = append(steps, step)
			fmt.Fprintf(r.Out, "recorded click on %s\n", step.Selector)
		case "type":
			step, ok := r.captureType(sc)
			if !ok {
				continue
			}
			steps = append(steps, step)
			fmt.Fprintf(r.Out, "recorded type (%d chars)\n", len(step.Text))
		case "sleep":
			step, ok := r.captureSleep(sc)
			if !ok {
				continue
			}
			steps = append(steps, step)
		case "done", "stop", "q", "quit":
			return steps, nil
		case "":
			continue
		default:
			fmt.Fprintln(r.Out, "unknown action (expected click, type, sleep, done)")
		}
	}
}

// captureClick waits for the operator to hover the target, then resolves
// the element under the cursor into a candidate chain.
func (r *Interactive) captureClick(sc *bufio.Scanner) (macro.Step, error) {
	fmt.Fprint(r.Out, "hover the target and press Enter... ")
	if _, ok := readLine(sc); !ok {
		return macro.Step{}, fmt.Errorf("input closed")
	}
	x, y, err := r.Points.CursorPos()
	if err != nil {
		return macro.Step{}, err
	}
	hit, err := r.Points.ElementFromPoint(x, y)
	if err != nil {
		return macro.Step{}, err
	}
	if hit.Element() == nil {
		return macro.Step{}, fmt.Errorf("no element under cursor at %d,%d", x, y)
	}
	sel := selector.ForElement(hit.Window, hit.Path, hit.TypeIndex)
	r.lastSelector = sel
	return macro.ClickStep(sel, x, y), nil
}

// captureType prompts for text and an enter flag; the step targets the
// last captured element, if any.
func (r *Interactive) captureType(sc *bufio.Scanner) (macro.Step, bool) {
	fmt.Fprint(r.Out, "text: ")
	text, ok := readLine(sc)
	if !ok {
		return macro.Step{}, false
	}
	fmt.Fprint(r.Out, "press enter after typing? [y/N]: ")
	ans, _ := readLine(sc)
	enter := strings.HasPrefix(strings.ToLower(strings.TrimSpace(ans)), "y")
	if text == "" && !enter {
		fmt.Fprintln(r.Out, "nothing to record")
		return macro.Step{}, false
	}
	return macro.TypeStep(r.lastSelector, text, enter), true
}

func (r *Interactive) captureSleep(sc *bufio.Scanner) (macro.Step, bool) {
	fmt.Fprint(r.Out, "seconds: ")
	line, ok := readLine(sc)
	if !ok {
		return macro.Step{}, false
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil || secs <= 0 {
		fmt.Fprintln(r.Out, "expected a positive number of seconds")
		return macro.Step{}, false
	}
	return macro.SleepStep(secs), true
}

func readLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return sc.Text(), true
}
