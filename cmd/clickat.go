package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

var clickAtCmd = &cobra.Command{
	Use:   "click-at",
	Short: "Click at coordinates",
	Long: `Synthesize a mouse click at absolute screen coordinates. With
window flags the window is focused first and the coordinates are
relative to its top-left corner, which keeps canvas macros working
wherever the window sits.

Examples:
  handsfree click-at --x 400 --y 300
  handsfree click-at --x 400 --y 300 --button right
  handsfree click-at --title "Untitled - Paint" --x 120 --y 260 --count 2`,
	RunE: runClickAt,
}

func init() {
	rootCmd.AddCommand(clickAtCmd)
	addWindowFlags(clickAtCmd)
	clickAtCmd.Flags().Int("x", 0, "X coordinate (screen-absolute, or window-relative with window flags)")
	clickAtCmd.Flags().Int("y", 0, "Y coordinate (screen-absolute, or window-relative with window flags)")
	clickAtCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickAtCmd.Flags().Int("count", 1, "Number of clicks (2 for double-click)")
	_ = clickAtCmd.MarkFlagRequired("x")
	_ = clickAtCmd.MarkFlagRequired("y")
}

func runClickAt(cmd *cobra.Command, args []string) error {
	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}

	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	buttonStr, _ := cmd.Flags().GetString("button")
	count, _ := cmd.Flags().GetInt("count")

	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}
	if count < 1 {
		count = 1
	}

	result := ActionResult{OK: true, Action: "click-at"}
	if windowFlagsSet(cmd) {
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return err
		}
		w, err := driver.Resolver().FindWindow(m)
		if err != nil {
			return err
		}
		if err := driver.FocusWindow(&m); err != nil {
			return err
		}
		x += w.Rect.Left
		y += w.Rect.Top
		result.Window = m.String()
	}

	if err := driver.ClickAt(x, y, button, count); err != nil {
		return err
	}
	result.X = x
	result.Y = y
	return output.Print(result)
}
