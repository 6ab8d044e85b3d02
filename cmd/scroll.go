package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll the mouse wheel",
	Long: `Scroll the mouse wheel at a screen point. Positive amounts scroll
up, negative amounts scroll down. Without --x/--y the wheel turns at
the current pointer position.

Examples:
  handsfree scroll --amount -3
  handsfree scroll --x 500 --y 400 --amount 5`,
	RunE: runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().Int("x", -1, "X screen coordinate (defaults to the pointer position)")
	scrollCmd.Flags().Int("y", -1, "Y screen coordinate (defaults to the pointer position)")
	scrollCmd.Flags().Int("amount", -3, "Wheel clicks; positive up, negative down")
}

func runScroll(cmd *cobra.Command, args []string) error {
	driver, provider, err := newDriver(cmd)
	if err != nil {
		return err
	}

	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	amount, _ := cmd.Flags().GetInt("amount")

	if x < 0 || y < 0 {
		if provider.PointReader == nil {
			return fmt.Errorf("pointer position not available on this platform; pass --x and --y")
		}
		x, y, err = provider.PointReader.CursorPos()
		if err != nil {
			return fmt.Errorf("read pointer position: %w", err)
		}
	}

	if err := driver.ScrollAt(x, y, amount); err != nil {
		return err
	}
	return output.Print(ActionResult{OK: true, Action: "scroll", X: x, Y: y})
}
