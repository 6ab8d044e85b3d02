package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/selector"
)

// WaitResult is the YAML output of a wait command.
type WaitResult struct {
	OK       bool   `yaml:"ok"                  json:"ok"`
	Action   string `yaml:"action"              json:"action"`
	Elapsed  string `yaml:"elapsed"             json:"elapsed"`
	Match    string `yaml:"match,omitempty"     json:"match,omitempty"`
	TimedOut bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a window or element to appear or go away",
	Long: `Poll until a window or element exists, or with --gone until it no
longer exists. With only window flags the condition is the window
itself; with target flags it is the element.

Exits non-zero on timeout, so waits chain cleanly in scripts.

Examples:
  handsfree wait --title "Calculator"
  handsfree wait --title "Installing..." --gone --timeout 300
  handsfree wait --title-regex "Notepad$" --name "Save" --control-type Button`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	addWindowFlags(waitCmd)
	addTargetFlags(waitCmd)
	addAmbiguityFlag(waitCmd)
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the condition is no longer true")
	waitCmd.Flags().Float64("timeout", 30, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	m, err := windowMatcherFromFlags(cmd)
	if err != nil {
		return err
	}
	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}

	target := targetFromFlags(cmd)
	var sel *selector.Selector
	match := fmt.Sprintf("window[%s]", m.String())
	if !targetIsEmpty(target) {
		sel = &selector.Selector{Window: m, Targets: []selector.Target{target}}
		if err := sel.Validate(); err != nil {
			return err
		}
		match = sel.String()
	}

	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")
	timeout := time.Duration(timeoutSec * float64(time.Second))
	interval := time.Duration(intervalMs) * time.Millisecond
	if gone {
		match += " (gone)"
	}

	deadline := time.Now().Add(timeout)
	start := time.Now()
	for {
		var present bool
		if sel != nil {
			_, err := driver.ResolveSelector(sel)
			present = err == nil
		} else {
			_, err := driver.Resolver().FindWindow(m)
			present = err == nil
		}

		if present != gone {
			return output.Print(WaitResult{
				OK:      true,
				Action:  "wait",
				Elapsed: elapsedSince(start),
				Match:   match,
			})
		}

		if !time.Now().Before(deadline) {
			// Print the result, then return an error for a non-zero exit.
			_ = output.Print(WaitResult{
				OK:       false,
				Action:   "wait",
				Elapsed:  elapsedSince(start),
				Match:    match,
				TimedOut: true,
			})
			return fmt.Errorf("timed out waiting for %s", match)
		}
		time.Sleep(interval)
	}
}
