package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "List a window's controls as a flat list",
	Long: `Flatten a window's element tree into a list of controls with their
names, automation IDs, types and bounds. Filter by control type or name.

The --types flag accepts control type names and the shorthand groups
"interactive" (buttons, inputs, list items and the like) and "text".

Examples:
  handsfree controls --title "Calculator"
  handsfree controls --title "Calculator" --types Button
  handsfree controls --title-regex "Notepad$" --types interactive --name-contains save`,
	RunE: runControls,
}

func init() {
	rootCmd.AddCommand(controlsCmd)
	addWindowFlags(controlsCmd)
	controlsCmd.Flags().String("types", "", "Comma-separated control types or groups (interactive, text)")
	controlsCmd.Flags().String("name-contains", "", "Only controls whose name contains this substring (case-insensitive)")
}

func runControls(cmd *cobra.Command, args []string) error {
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

	controls := model.Flatten(*root)

	types, _ := cmd.Flags().GetString("types")
	nameContains, _ := cmd.Flags().GetString("name-contains")
	var typeList []string
	if types != "" {
		typeList = model.ExpandControlTypes(strings.Split(types, ","))
	}
	controls = model.FilterControls(controls, typeList, nameContains)

	return output.Print(output.ControlsResult{
		Window:   w,
		TS:       time.Now().Unix(),
		Controls: controls,
	})
}
