package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/selector"
)

// DragResult is the YAML output of a successful drag.
type DragResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	FromX  int    `yaml:"from_x" json:"from_x"`
	FromY  int    `yaml:"from_y" json:"from_y"`
	ToX    int    `yaml:"to_x"   json:"to_x"`
	ToY    int    `yaml:"to_y"   json:"to_y"`
}

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag from one point to another",
	Long: `Press the left button at the start point, move to the end point and
release. Each end is given as coordinates or as an element whose
center is used.

Examples:
  handsfree drag --from-x 100 --from-y 200 --to-x 400 --to-y 200
  handsfree drag --title "Files" --from-name "report.txt" --to-name "Archive"`,
	RunE: runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	addWindowFlags(dragCmd)
	dragCmd.Flags().Int("from-x", -1, "Start X coordinate")
	dragCmd.Flags().Int("from-y", -1, "Start Y coordinate")
	dragCmd.Flags().Int("to-x", -1, "End X coordinate")
	dragCmd.Flags().Int("to-y", -1, "End Y coordinate")
	dragCmd.Flags().String("from-auto-id", "", "Start element automation ID")
	dragCmd.Flags().String("from-control-type", "", "Start element control type")
	dragCmd.Flags().String("from-name", "", "Start element name")
	dragCmd.Flags().String("to-auto-id", "", "End element automation ID")
	dragCmd.Flags().String("to-control-type", "", "End element control type")
	dragCmd.Flags().String("to-name", "", "End element name")
	dragCmd.Flags().Float64("timeout", 20, "Seconds to wait for the elements to appear")
}

// prefixedTarget reads the <prefix>-auto-id, <prefix>-control-type and
// <prefix>-name flags into a target candidate.
func prefixedTarget(cmd *cobra.Command, prefix string) selector.Target {
	var t selector.Target
	t.AutoID, _ = cmd.Flags().GetString(prefix + "-auto-id")
	t.ControlType, _ = cmd.Flags().GetString(prefix + "-control-type")
	t.Name, _ = cmd.Flags().GetString(prefix + "-name")
	return t
}

func runDrag(cmd *cobra.Command, args []string) error {
	driver, provider, err := newDriver(cmd)
	if err != nil {
		return err
	}
	if provider.Inputter == nil {
		return fmt.Errorf("input simulation not available on this platform")
	}

	timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
	timeout := time.Duration(timeoutSec * float64(time.Second))

	endpoint := func(prefix string) (int, int, error) {
		x, _ := cmd.Flags().GetInt(prefix + "-x")
		y, _ := cmd.Flags().GetInt(prefix + "-y")
		t := prefixedTarget(cmd, prefix)
		if targetIsEmpty(t) {
			if x < 0 || y < 0 {
				return 0, 0, fmt.Errorf("specify --%s-x/--%s-y or a --%s-* element", prefix, prefix, prefix)
			}
			return x, y, nil
		}
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return 0, 0, err
		}
		sel := &selector.Selector{Window: m, Targets: []selector.Target{t}}
		if err := sel.Validate(); err != nil {
			return 0, 0, err
		}
		el, err := resolveWithTimeout(driver, sel, timeout)
		if err != nil {
			return 0, 0, err
		}
		cx, cy := el.Rect.Center()
		return cx, cy, nil
	}

	fromX, fromY, err := endpoint("from")
	if err != nil {
		return err
	}
	toX, toY, err := endpoint("to")
	if err != nil {
		return err
	}

	if err := provider.Inputter.Drag(fromX, fromY, toX, toY); err != nil {
		return err
	}
	return output.Print(DragResult{
		OK:     true,
		Action: "drag",
		FromX:  fromX,
		FromY:  fromY,
		ToX:    toX,
		ToY:    toY,
	})
}
