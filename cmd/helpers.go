package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

// ActionResult is the YAML output of action commands.
type ActionResult struct {
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	Window  string `yaml:"window,omitempty"  json:"window,omitempty"`
	Target  string `yaml:"target,omitempty"  json:"target,omitempty"`
	Key     string `yaml:"key,omitempty"     json:"key,omitempty"`
	X       int    `yaml:"x,omitempty"       json:"x,omitempty"`
	Y       int    `yaml:"y,omitempty"       json:"y,omitempty"`
	Elapsed string `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
}

// addWindowFlags registers the window matcher flag group.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Exact window title (case-insensitive)")
	cmd.Flags().String("title-regex", "", "Regular expression matched against window titles")
	cmd.Flags().String("class-name", "", "Win32 window class name")
}

// addTargetFlags registers the element target flag group.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("auto-id", "", "Automation ID to match")
	cmd.Flags().String("control-type", "", "Control type to match (e.g. Button)")
	cmd.Flags().String("name", "", "Exact element name")
	cmd.Flags().String("name-regex", "", "Regular expression matched against element names")
	cmd.Flags().Int("index", -1, "Pick the Nth match in depth-first order (0-based)")
}

func addAmbiguityFlag(cmd *cobra.Command) {
	cmd.Flags().String("ambiguity", "first", "Multi-match policy: first, error")
}

// windowMatcherFromFlags builds and validates the window matcher from the
// window flag group.
func windowMatcherFromFlags(cmd *cobra.Command) (selector.WindowMatcher, error) {
	var m selector.WindowMatcher
	m.Title, _ = cmd.Flags().GetString("title")
	m.TitleRegex, _ = cmd.Flags().GetString("title-regex")
	m.ClassName, _ = cmd.Flags().GetString("class-name")
	if err := m.Validate(); err != nil {
		return selector.WindowMatcher{}, err
	}
	return m, nil
}

// windowFlagsSet reports whether any window matcher flag was given.
func windowFlagsSet(cmd *cobra.Command) bool {
	title, _ := cmd.Flags().GetString("title")
	titleRegex, _ := cmd.Flags().GetString("title-regex")
	className, _ := cmd.Flags().GetString("class-name")
	return title != "" || titleRegex != "" || className != ""
}

// targetFromFlags builds the target from the target flag group. An index
// of -1 means unset.
func targetFromFlags(cmd *cobra.Command) selector.Target {
	var t selector.Target
	t.AutoID, _ = cmd.Flags().GetString("auto-id")
	t.ControlType, _ = cmd.Flags().GetString("control-type")
	t.Name, _ = cmd.Flags().GetString("name")
	t.NameRegex, _ = cmd.Flags().GetString("name-regex")
	if idx, _ := cmd.Flags().GetInt("index"); idx >= 0 {
		t.Index = &idx
	}
	return t
}

func targetIsEmpty(t selector.Target) bool {
	return t.AutoID == "" && t.ControlType == "" && t.Name == "" && t.NameRegex == "" && t.Index == nil
}

// selectorFromFlags combines the window and target flag groups into a
// single-candidate selector.
func selectorFromFlags(cmd *cobra.Command) (*selector.Selector, error) {
	m, err := windowMatcherFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	t := targetFromFlags(cmd)
	if targetIsEmpty(t) {
		return nil, fmt.Errorf("specify at least one of --auto-id, --control-type, --name, --name-regex, --index")
	}
	sel := &selector.Selector{Window: m, Targets: []selector.Target{t}}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

// resolveOptionsFromFlags reads --ambiguity on commands that define it.
func resolveOptionsFromFlags(cmd *cobra.Command) (selector.ResolveOptions, error) {
	var opts selector.ResolveOptions
	if cmd.Flags().Lookup("ambiguity") == nil {
		return opts, nil
	}
	s, _ := cmd.Flags().GetString("ambiguity")
	amb, err := selector.ParseAmbiguity(s)
	if err != nil {
		return opts, err
	}
	opts.Ambiguity = amb
	return opts, nil
}

// newDriver builds the provider-backed driver shared by action commands.
func newDriver(cmd *cobra.Command) (*macro.LiveDriver, *platform.Provider, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, nil, err
	}
	opts, err := resolveOptionsFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}
	return macro.NewLiveDriver(provider, opts), provider, nil
}

// resolveWithTimeout polls the selector until it resolves or the budget
// runs out, mirroring the macro engine's per-step policy.
func resolveWithTimeout(d *macro.LiveDriver, sel *selector.Selector, timeout time.Duration) (*model.Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		el, err := d.ResolveSelector(sel)
		if err == nil {
			return el, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w after %s: %w", macro.ErrStepTimeout, timeout, err)
		}
		time.Sleep(macro.DefaultPoll)
	}
}

// describeElement renders an element for result output.
func describeElement(el *model.Element) string {
	if el.Name != "" {
		return fmt.Sprintf("%s %q", el.ControlType, el.Name)
	}
	if el.AutoID != "" {
		return fmt.Sprintf("%s auto_id=%s", el.ControlType, el.AutoID)
	}
	return el.ControlType
}

func elapsedSince(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
