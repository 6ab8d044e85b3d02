package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

// TreeSavedResult is the YAML output of `tree --out`.
type TreeSavedResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Window string `yaml:"window" json:"window"`
	Path   string `yaml:"path"   json:"path"`
	Nodes  int    `yaml:"nodes"  json:"nodes"`
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Dump a window's element tree",
	Long: `Dump the UI Automation element tree of a window, capped by depth
and node count. Use --out to write the snapshot to a file instead of
stdout.

Examples:
  handsfree tree --title "Calculator"
  handsfree tree --title-regex "Notepad$" --depth 6 --max-nodes 500
  handsfree tree --title "Calculator" --out calc.yaml`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addWindowFlags(treeCmd)
	treeCmd.Flags().Int("depth", model.DefaultTreeDepth, "Maximum tree depth")
	treeCmd.Flags().Int("max-nodes", model.DefaultTreeMaxNodes, "Maximum number of nodes")
	treeCmd.Flags().String("out", "", "Write the snapshot to this file instead of stdout")
}

func runTree(cmd *cobra.Command, args []string) error {
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

	depth, _ := cmd.Flags().GetInt("depth")
	maxNodes, _ := cmd.Flags().GetInt("max-nodes")
	root, err := provider.TreeReader.WindowTree(w, platform.TreeOptions{MaxDepth: depth, MaxNodes: maxNodes})
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}

	snap := model.Snapshot{
		Window:     w,
		CapturedAt: time.Now().UTC(),
		Tree:       model.BuildTree(*root, depth, maxNodes),
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return output.Print(snap)
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return output.Print(TreeSavedResult{
		OK:     true,
		Action: "tree",
		Window: w.Title,
		Path:   out,
		Nodes:  snap.Tree.Count(),
	})
}
