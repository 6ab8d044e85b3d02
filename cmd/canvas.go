package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

// CanvasResult is the YAML output of a canvas-selector command.
type CanvasResult struct {
	Window   model.Window       `yaml:"window"   json:"window"`
	Canvas   model.Element      `yaml:"canvas"   json:"canvas"`
	CenterX  int                `yaml:"center_x" json:"center_x"`
	CenterY  int                `yaml:"center_y" json:"center_y"`
	Selector *selector.Selector `yaml:"selector" json:"selector"`
}

var canvasCmd = &cobra.Command{
	Use:   "canvas-selector",
	Short: "Find a window's main canvas pane",
	Long: `Find the largest canvas-like pane in a window (Pane, Document or
Custom) and print a selector for it plus its center point. Drawing
and editor surfaces rarely expose named elements; this gives
coordinate-based steps a stable anchor.

Examples:
  handsfree canvas-selector --title "Untitled - Paint"`,
	RunE: runCanvas,
}

func init() {
	rootCmd.AddCommand(canvasCmd)
	addWindowFlags(canvasCmd)
}

func runCanvas(cmd *cobra.Command, args []string) error {
	m, err := windowMatcherFromFlags(cmd)
	if err != nil {
		return err
	}
	driver, provider, err := newDriver(cmd)
	if err != nil {
		return err
	}
	if provider.TreeReader == nil {
		return fmt.Errorf("tree reading not available on this platform")
	}
	w, err := driver.Resolver().FindWindow(m)
	if err != nil {
		return err
	}
	root, err := provider.TreeReader.WindowTree(w, platform.TreeOptions{})
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}

	sel := selector.ForCanvas(w, root)
	if sel == nil {
		return fmt.Errorf("no canvas pane found in window %q", w.Title)
	}
	canvas := model.LargestCanvas(root)
	cx, cy := canvas.Rect.Center()

	found := *canvas
	found.Children = nil
	return output.Print(CanvasResult{
		Window:   w,
		Canvas:   found,
		CenterX:  cx,
		CenterY:  cy,
		Selector: sel,
	})
}
