package cmd

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List visible top-level windows",
	Long: `List visible top-level windows with their titles, class names,
process IDs and bounds. The focused window sorts first.

Examples:
  handsfree windows
  handsfree windows --title-regex "Notepad$"`,
	RunE: runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().String("title-regex", "", "Only windows whose title matches this regular expression")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.WindowManager == nil {
		return fmt.Errorf("window enumeration not available on this platform")
	}

	windows, err := provider.WindowManager.ListWindows()
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}

	if pattern, _ := cmd.Flags().GetString("title-regex"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid title regex %q: %w", pattern, err)
		}
		kept := windows[:0]
		for _, w := range windows {
			if re.MatchString(w.Title) {
				kept = append(kept, w)
			}
		}
		windows = kept
	}
	model.SortWindowsFocusedFirst(windows)

	return output.Print(output.WindowsResult{
		TS:      time.Now().Unix(),
		Windows: windows,
	})
}
