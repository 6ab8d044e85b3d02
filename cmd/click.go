package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click an element",
	Long: `Resolve an element by selector and click it. The default method
invokes the element's native pattern when it has one and falls back to
a synthesized click at the element's center. Resolution retries until
--timeout expires.

Examples:
  handsfree click --title "Calculator" --name "Five"
  handsfree click --title "Calculator" --auto-id num5Button
  handsfree click --title-regex "Notepad$" --control-type Button --name Save --method input`,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	addWindowFlags(clickCmd)
	addTargetFlags(clickCmd)
	addAmbiguityFlag(clickCmd)
	clickCmd.Flags().Float64("timeout", 20, "Seconds to wait for the element to appear")
	clickCmd.Flags().String("method", "auto", "Click method: auto, invoke, input")
}

func runClick(cmd *cobra.Command, args []string) error {
	sel, err := selectorFromFlags(cmd)
	if err != nil {
		return err
	}
	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}

	timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
	method, _ := cmd.Flags().GetString("method")
	start := time.Now()

	el, err := resolveWithTimeout(driver, sel, time.Duration(timeoutSec*float64(time.Second)))
	if err != nil {
		return err
	}

	switch method {
	case "auto":
		err = driver.InvokeElement(el)
		if errors.Is(err, platform.ErrUnsupportedAction) {
			x, y := el.Rect.Center()
			err = driver.ClickAt(x, y, platform.MouseLeft, 1)
		}
	case "invoke":
		err = driver.InvokeElement(el)
	case "input":
		x, y := el.Rect.Center()
		err = driver.ClickAt(x, y, platform.MouseLeft, 1)
	default:
		return fmt.Errorf("unknown click method: %q (expected auto, invoke, or input)", method)
	}
	if err != nil {
		return err
	}

	return output.Print(ActionResult{
		OK:      true,
		Action:  "click",
		Window:  sel.Window.String(),
		Target:  describeElement(el),
		Elapsed: elapsedSince(start),
	})
}
