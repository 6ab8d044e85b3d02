package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
)

var hoverCmd = &cobra.Command{
	Use:   "hover",
	Short: "Move the pointer to an element without clicking",
	Long: `Move the pointer to an element's center or to absolute coordinates
without clicking. Useful for tooltips, row actions and flyout menus.

Examples:
  handsfree hover --title "Calculator" --name "History"
  handsfree hover --x 400 --y 300`,
	RunE: runHover,
}

func init() {
	rootCmd.AddCommand(hoverCmd)
	addWindowFlags(hoverCmd)
	addTargetFlags(hoverCmd)
	addAmbiguityFlag(hoverCmd)
	hoverCmd.Flags().Int("x", -1, "Absolute X screen coordinate")
	hoverCmd.Flags().Int("y", -1, "Absolute Y screen coordinate")
	hoverCmd.Flags().Float64("timeout", 20, "Seconds to wait for the element to appear")
}

func runHover(cmd *cobra.Command, args []string) error {
	driver, provider, err := newDriver(cmd)
	if err != nil {
		return err
	}
	if provider.Inputter == nil {
		return fmt.Errorf("input simulation not available on this platform")
	}

	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	result := ActionResult{OK: true, Action: "hover"}

	if !targetIsEmpty(targetFromFlags(cmd)) {
		sel, err := selectorFromFlags(cmd)
		if err != nil {
			return err
		}
		timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
		el, err := resolveWithTimeout(driver, sel, time.Duration(timeoutSec*float64(time.Second)))
		if err != nil {
			return err
		}
		x, y = el.Rect.Center()
		result.Window = sel.Window.String()
		result.Target = describeElement(el)
	} else if x < 0 || y < 0 {
		return fmt.Errorf("specify a target or both --x and --y")
	}

	if err := provider.Inputter.MoveMouse(x, y); err != nil {
		return err
	}
	result.X = x
	result.Y = y
	return output.Print(result)
}
