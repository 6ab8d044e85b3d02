package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/selector"
)

// ResolveResult is the YAML output of a resolve command.
type ResolveResult struct {
	OK      bool           `yaml:"ok"                json:"ok"`
	Action  string         `yaml:"action"            json:"action"`
	Window  model.Window   `yaml:"window,omitempty"  json:"window,omitempty"`
	Element *model.Element `yaml:"element,omitempty" json:"element,omitempty"`
	Elapsed string         `yaml:"elapsed"           json:"elapsed"`
	Error   string         `yaml:"error,omitempty"   json:"error,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a selector without acting on it",
	Long: `Resolve a selector to a live element and print it. Dry-runs the
exact resolution an action would perform, including the candidate
fallback chain, without clicking or typing anything.

The selector is given as flags, as JSON via --selector, or as a JSON
file via --selector-file. Window flags override the window matcher of
a JSON selector, so a recorded selector can be retargeted at a
different window.

Examples:
  handsfree resolve --title "Calculator" --auto-id num5Button
  handsfree resolve --selector '{"window":{"title":"Calculator"},"targets":[{"name":"Five"}]}'
  handsfree resolve --selector-file save-button.json --title-regex "Notepad$"`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addWindowFlags(resolveCmd)
	addTargetFlags(resolveCmd)
	addAmbiguityFlag(resolveCmd)
	resolveCmd.Flags().String("selector", "", "Selector as JSON (alternative to the flag groups)")
	resolveCmd.Flags().String("selector-file", "", "Path to a selector JSON file")
	resolveCmd.Flags().Float64("timeout", 0, "Seconds to retry resolution (0 tries once)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	sel, err := selectorFromAnySource(cmd)
	if err != nil {
		return err
	}
	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}

	timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
	start := time.Now()

	var el *model.Element
	if timeoutSec > 0 {
		el, err = resolveWithTimeout(driver, sel, time.Duration(timeoutSec*float64(time.Second)))
	} else {
		el, err = driver.ResolveSelector(sel)
	}
	if err != nil {
		// Print the failure, then return the error for a non-zero exit.
		_ = output.Print(ResolveResult{
			OK:      false,
			Action:  "resolve",
			Elapsed: elapsedSince(start),
			Error:   err.Error(),
		})
		return err
	}

	w, werr := driver.Resolver().FindWindow(sel.Window)
	if werr != nil {
		w = model.Window{}
	}
	found := *el
	found.Children = nil
	return output.Print(ResolveResult{
		OK:      true,
		Action:  "resolve",
		Window:  w,
		Element: &found,
		Elapsed: elapsedSince(start),
	})
}

// selectorFromAnySource builds the selector from JSON, a JSON file, or the
// flag groups. Window flags override a JSON selector's window matcher.
func selectorFromAnySource(cmd *cobra.Command) (*selector.Selector, error) {
	raw, _ := cmd.Flags().GetString("selector")
	file, _ := cmd.Flags().GetString("selector-file")
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		raw = string(data)
	}
	if raw == "" {
		return selectorFromFlags(cmd)
	}

	sel, err := selector.ParseJSON([]byte(raw))
	if err != nil {
		return nil, err
	}
	if windowFlagsSet(cmd) {
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return nil, err
		}
		sel.Window = m
	}
	return sel, nil
}
