package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
)

var startCmd = &cobra.Command{
	Use:   "start <app>",
	Short: "Launch an application through the Start menu",
	Long: `Launch an application by typing its name into Start menu search and
pressing Enter, the same way a person launches apps they have not
pinned. Works for anything the Start menu can find, including Store
apps without stable executable paths.

With --wait and a window flag the command blocks until the app's
window appears.

Examples:
  handsfree start notepad
  handsfree start "excel" --wait --title-regex "Excel$"`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	addWindowFlags(startCmd)
	startCmd.Flags().Bool("wait", false, "Wait for the window to appear after launching")
	startCmd.Flags().Float64("timeout", 15, "Max seconds to wait for the window (with --wait)")
}

func runStart(cmd *cobra.Command, args []string) error {
	app := args[0]
	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}

	// Start search drops keystrokes that arrive faster than it filters.
	driver.TypeDelayMs = 30

	if err := driver.SendKeys([]string{"win"}); err != nil {
		return err
	}
	// The Start menu animates open; typing too early loses keystrokes.
	time.Sleep(500 * time.Millisecond)
	if err := driver.TypeText(app, false); err != nil {
		return err
	}
	// Search results repopulate while typing.
	time.Sleep(300 * time.Millisecond)
	if err := driver.SendKeys([]string{"enter"}); err != nil {
		return err
	}

	result := ActionResult{OK: true, Action: "start", Target: app}

	wait, _ := cmd.Flags().GetBool("wait")
	if wait && windowFlagsSet(cmd) {
		m, err := windowMatcherFromFlags(cmd)
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
