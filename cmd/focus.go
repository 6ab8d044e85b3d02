package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window to the foreground",
	Long: `Bring a window to the foreground by title, title regex or class name.

Examples:
  handsfree focus --title "Untitled - Notepad"
  handsfree focus --title-regex "Visual Studio Code$"`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	addWindowFlags(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	m, err := windowMatcherFromFlags(cmd)
	if err != nil {
		return err
	}
	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}
	if err := driver.FocusWindow(&m); err != nil {
		return err
	}
	return output.Print(ActionResult{OK: true, Action: "focus", Window: m.String()})
}
