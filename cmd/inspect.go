package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

// InspectResult is the YAML output of an inspect command.
type InspectResult struct {
	Window   model.Window       `yaml:"window"         json:"window"`
	Element  model.Element      `yaml:"element"        json:"element"`
	Selector *selector.Selector `yaml:"selector"       json:"selector"`
	Path     string             `yaml:"path,omitempty" json:"path,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the element under the pointer",
	Long: `Wait a few seconds, then report the element under the pointer
together with a derived selector ready to paste into click, type or
resolve. Point at the control you care about during the delay.

--annotate saves a screenshot of the window with the sampled element
outlined, so you can confirm the hit landed where you meant.

Examples:
  handsfree inspect
  handsfree inspect --delay 5
  handsfree inspect --annotate hit.png`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Int("delay", 3, "Seconds to wait before sampling the pointer")
	inspectCmd.Flags().String("annotate", "", "Save a window screenshot with the element outlined to this path")
}

func runInspect(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.PointReader == nil {
		return fmt.Errorf("hit testing not available on this platform")
	}

	delay, _ := cmd.Flags().GetInt("delay")
	if delay > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "point at the target element; sampling in %ds...\n", delay)
		time.Sleep(time.Duration(delay) * time.Second)
	}

	x, y, err := provider.PointReader.CursorPos()
	if err != nil {
		return fmt.Errorf("read pointer position: %w", err)
	}
	hit, err := provider.PointReader.ElementFromPoint(x, y)
	if err != nil {
		return fmt.Errorf("hit test at %d,%d: %w", x, y, err)
	}
	el := hit.Element()
	if el == nil {
		return fmt.Errorf("no element under the pointer at %d,%d", x, y)
	}

	result := InspectResult{
		Window:   hit.Window,
		Element:  *el,
		Selector: selector.ForElement(hit.Window, hit.Path, hit.TypeIndex),
	}

	if annotatePath, _ := cmd.Flags().GetString("annotate"); annotatePath != "" {
		if provider.Screenshotter == nil {
			return fmt.Errorf("screenshot not supported on this platform")
		}
		img, err := provider.Screenshotter.CaptureWindow(hit.Window)
		if err != nil {
			return err
		}
		mark := model.FlatControl{
			Name:        el.Name,
			ControlType: el.ControlType,
			AutoID:      el.AutoID,
			Rect:        el.Rect,
		}
		annotated := annotateControls(img, []model.FlatControl{mark}, hit.Window.Rect)
		if err := savePNG(annotatePath, annotated); err != nil {
			return err
		}
		result.Path = annotatePath
	}

	return output.Print(result)
}
