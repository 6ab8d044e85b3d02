package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/selector"
)

func newFlagFixture() *cobra.Command {
	c := &cobra.Command{Use: "fixture"}
	addWindowFlags(c)
	addTargetFlags(c)
	return c
}

func TestWindowMatcherFromFlags(t *testing.T) {
	c := newFlagFixture()
	if err := c.Flags().Set("title", "Calculator"); err != nil {
		t.Fatal(err)
	}

	m, err := windowMatcherFromFlags(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Calculator" {
		t.Errorf("expected title %q, got %q", "Calculator", m.Title)
	}
}

func TestWindowMatcherFromFlags_NoCriteria(t *testing.T) {
	c := newFlagFixture()
	if _, err := windowMatcherFromFlags(c); err == nil {
		t.Error("expected error for empty window matcher")
	}
}

func TestWindowMatcherFromFlags_BadRegex(t *testing.T) {
	c := newFlagFixture()
	if err := c.Flags().Set("title-regex", "["); err != nil {
		t.Fatal(err)
	}
	if _, err := windowMatcherFromFlags(c); err == nil {
		t.Error("expected error for invalid title regex")
	}
}

func TestTargetFromFlags(t *testing.T) {
	c := newFlagFixture()
	if err := c.Flags().Set("auto-id", "num5Button"); err != nil {
		t.Fatal(err)
	}
	if err := c.Flags().Set("index", "2"); err != nil {
		t.Fatal(err)
	}

	target := targetFromFlags(c)
	if target.AutoID != "num5Button" {
		t.Errorf("expected auto_id %q, got %q", "num5Button", target.AutoID)
	}
	if target.Index == nil || *target.Index != 2 {
		t.Errorf("expected index 2, got %v", target.Index)
	}
}

func TestTargetFromFlags_UnsetIndexIsNil(t *testing.T) {
	c := newFlagFixture()
	target := targetFromFlags(c)
	if target.Index != nil {
		t.Errorf("expected nil index for unset flag, got %d", *target.Index)
	}
	if !targetIsEmpty(target) {
		t.Error("expected empty target with no flags set")
	}
}

func TestSelectorFromFlags(t *testing.T) {
	c := newFlagFixture()
	if err := c.Flags().Set("title", "Calculator"); err != nil {
		t.Fatal(err)
	}
	if err := c.Flags().Set("name", "Five"); err != nil {
		t.Fatal(err)
	}

	sel, err := selectorFromFlags(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Window.Title != "Calculator" {
		t.Errorf("expected window title %q, got %q", "Calculator", sel.Window.Title)
	}
	if len(sel.Targets) != 1 || sel.Targets[0].Name != "Five" {
		t.Errorf("expected one target with name Five, got %+v", sel.Targets)
	}
}

func TestSelectorFromFlags_NoTarget(t *testing.T) {
	c := newFlagFixture()
	if err := c.Flags().Set("title", "Calculator"); err != nil {
		t.Fatal(err)
	}
	if _, err := selectorFromFlags(c); err == nil {
		t.Error("expected error when no target flag is set")
	}
}

func TestPrefixedTarget(t *testing.T) {
	c := &cobra.Command{Use: "fixture"}
	c.Flags().String("from-auto-id", "", "")
	c.Flags().String("from-control-type", "", "")
	c.Flags().String("from-name", "", "")
	if err := c.Flags().Set("from-name", "report.txt"); err != nil {
		t.Fatal(err)
	}

	target := prefixedTarget(c, "from")
	if target.Name != "report.txt" {
		t.Errorf("expected name %q, got %q", "report.txt", target.Name)
	}
	if target.AutoID != "" || target.ControlType != "" {
		t.Errorf("expected other properties empty, got %+v", target)
	}
}

func TestResolveOptionsFromFlags_MissingFlagIsDefault(t *testing.T) {
	c := &cobra.Command{Use: "fixture"}
	opts, err := resolveOptionsFromFlags(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Ambiguity != selector.AmbiguityFirst {
		t.Errorf("expected first-match policy, got %v", opts.Ambiguity)
	}
}

func TestResolveOptionsFromFlags_ParsesPolicy(t *testing.T) {
	c := &cobra.Command{Use: "fixture"}
	addAmbiguityFlag(c)
	if err := c.Flags().Set("ambiguity", "error"); err != nil {
		t.Fatal(err)
	}

	opts, err := resolveOptionsFromFlags(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Ambiguity != selector.AmbiguityError {
		t.Errorf("expected error policy, got %v", opts.Ambiguity)
	}
}

func TestResolveOptionsFromFlags_RejectsUnknownPolicy(t *testing.T) {
	c := &cobra.Command{Use: "fixture"}
	addAmbiguityFlag(c)
	if err := c.Flags().Set("ambiguity", "loudest"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveOptionsFromFlags(c); err == nil {
		t.Error("expected error for unknown ambiguity policy")
	}
}
