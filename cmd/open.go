package cmd

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/selector"
)

// OpenResult is the YAML output of a successful open.
type OpenResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Target string `yaml:"target"           json:"target"`
	Window string `yaml:"window,omitempty" json:"window,omitempty"`
}

var openCmd = &cobra.Command{
	Use:   "open <path or url>",
	Short: "Open a file, folder, or URL with its default handler",
	Long: `Open a file or folder with its associated application, or a URL in
the default browser, through the shell's start verb. With --wait and a
window flag the command blocks until the window appears.

Examples:
  handsfree open report.pdf
  handsfree open https://example.com
  handsfree open C:\Users\me\Documents
  handsfree open notes.txt --wait --title-regex "Notepad$"`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	addWindowFlags(openCmd)
	openCmd.Flags().Bool("wait", false, "Wait for the window to appear after opening")
	openCmd.Flags().Float64("timeout", 10, "Max seconds to wait for the window (with --wait)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	target := args[0]

	// `start` resolves file associations and URLs alike. The empty
	// string is the window title slot, so targets with spaces are not
	// mistaken for a title.
	launch := exec.Command("cmd", "/c", "start", "", target)
	if out, err := launch.CombinedOutput(); err != nil {
		return fmt.Errorf("open %q: %s (%w)", target, string(out), err)
	}

	result := OpenResult{OK: true, Action: "open", Target: target}

	wait, _ := cmd.Flags().GetBool("wait")
	if wait {
		if !windowFlagsSet(cmd) {
			return fmt.Errorf("--wait needs a window: set --title, --title-regex, or --class-name")
		}
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return err
		}
		driver, _, err := newDriver(cmd)
		if err != nil {
			return err
		}
		timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
		if err := waitForWindow(driver, m, time.Duration(timeoutSec*float64(time.Second))); err != nil {
			return err
		}
		result.Window = m.String()
	}
	return output.Print(result)
}

func waitForWindow(driver *macro.LiveDriver, m selector.WindowMatcher, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := driver.Resolver().FindWindow(m); err == nil {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("window %s did not appear within %s", m.String(), timeout)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
