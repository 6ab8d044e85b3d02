package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
)

var keyCmd = &cobra.Command{
	Use:   "key <combo>",
	Short: "Press a key or key combination",
	Long: `Press a single key or a plus-separated combination. Window flags
focus the window first.

Examples:
  handsfree key enter
  handsfree key ctrl+s --title "Untitled - Notepad"
  handsfree key ctrl+shift+escape`,
	Args: cobra.ExactArgs(1),
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	addWindowFlags(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	combo := args[0]
	keys := strings.Split(combo, "+")
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("invalid key combination: %q", combo)
		}
	}

	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}

	result := ActionResult{OK: true, Action: "key", Key: combo}
	if windowFlagsSet(cmd) {
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := driver.FocusWindow(&m); err != nil {
			return err
		}
		result.Window = m.String()
	}
	if err := driver.SendKeys(keys); err != nil {
		return err
	}
	return output.Print(result)
}
