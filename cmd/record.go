package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/recorder"
	"github.com/hfwin/handsfree/internal/selector"
)

// RecordResult is the YAML output of a finished recording.
type RecordResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Path   string `yaml:"path"   json:"path"`
	Steps  int    `yaml:"steps"  json:"steps"`
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a macro interactively",
	Long: `Record a macro by stepping through it at a prompt. Point at a
control and press Enter to capture a click with a derived selector;
type "t" for text steps and "s" for sleeps; "done" finishes.

Interactive recording never installs global hooks, so it works in
sessions where low-level input capture is blocked. For hands-off
capture of real interactions, see "handsfree capture".

Examples:
  handsfree record --out login.yaml`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().String("out", "", "File to write the recorded macro to (required)")
	recordCmd.Flags().String("title-regex", "", "Rewrite every captured selector to match windows by this regex")
	_ = recordCmd.MarkFlagRequired("out")
}

func runRecord(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.PointReader == nil {
		return fmt.Errorf("hit testing not available on this platform")
	}

	rec := recorder.NewInteractive(provider.PointReader, os.Stdin, cmd.ErrOrStderr())
	steps, err := rec.Run()
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("nothing recorded")
	}

	// Exact captured titles pin a macro to one document; a regex makes
	// it portable across windows of the same application.
	if pattern, _ := cmd.Flags().GetString("title-regex"); pattern != "" {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid title regex %q: %w", pattern, err)
		}
		for i := range steps {
			if steps[i].Selector != nil {
				steps[i].Selector.Window = selector.WindowMatcher{TitleRegex: pattern}
			}
		}
	}

	if err := macro.Save(out, steps); err != nil {
		return err
	}
	return output.Print(RecordResult{
		OK:     true,
		Action: "record",
		Path:   out,
		Steps:  len(steps),
	})
}
