package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text into an element or the focused control",
	Long: `Type text. With target flags the element is resolved first and the
text goes through its value pattern when possible. With only window
flags the window is focused and keystrokes are synthesized. With
neither, text goes to whatever currently holds keyboard focus.

Text can be passed positionally or via --text. --paste routes the text
through the clipboard, which is much faster for long strings.

Examples:
  handsfree type "hello world"
  handsfree type --title "Untitled - Notepad" "hello"
  handsfree type --title "Calculator" --auto-id searchBox --text query --enter
  handsfree type --title "Untitled - Notepad" --paste --text "a very long paragraph"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	addWindowFlags(typeCmd)
	addTargetFlags(typeCmd)
	addAmbiguityFlag(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to the positional argument)")
	typeCmd.Flags().Bool("enter", false, "Press Enter after the text")
	typeCmd.Flags().Bool("paste", false, "Write the text to the clipboard and paste it")
	typeCmd.Flags().Int("delay", 0, "Delay between keystrokes in ms")
	typeCmd.Flags().Float64("timeout", 20, "Seconds to wait for the element to appear")
}

func runType(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	if len(args) > 0 {
		text = args[0]
	}
	enter, _ := cmd.Flags().GetBool("enter")
	paste, _ := cmd.Flags().GetBool("paste")
	if text == "" && !enter {
		return fmt.Errorf("specify --text or a positional text argument")
	}

	driver, provider, err := newDriver(cmd)
	if err != nil {
		return err
	}
	delayMs, _ := cmd.Flags().GetInt("delay")
	driver.TypeDelayMs = delayMs

	target := targetFromFlags(cmd)
	haveTarget := !targetIsEmpty(target)
	haveWindow := windowFlagsSet(cmd)
	if haveTarget && !haveWindow {
		return fmt.Errorf("target flags need a window: set --title, --title-regex, or --class-name")
	}

	if paste && text != "" {
		if provider.Clipboard == nil {
			return fmt.Errorf("clipboard not available on this platform")
		}
		if err := provider.Clipboard.WriteText(text); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
	}

	result := ActionResult{OK: true, Action: "type"}
	if haveTarget {
		sel, err := selectorFromFlags(cmd)
		if err != nil {
			return err
		}
		timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
		el, err := resolveWithTimeout(driver, sel, time.Duration(timeoutSec*float64(time.Second)))
		if err != nil {
			return err
		}
		result.Window = sel.Window.String()
		result.Target = describeElement(el)
		if paste && text != "" {
			// Focus the element with a click, then paste into it.
			x, y := el.Rect.Center()
			if err := driver.ClickAt(x, y, platform.MouseLeft, 1); err != nil {
				return err
			}
			if err := pasteAndEnter(driver, enter); err != nil {
				return err
			}
			return output.Print(result)
		}
		if err := driver.TypeInto(el, text, enter); err != nil {
			return err
		}
		return output.Print(result)
	}

	if haveWindow {
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := driver.FocusWindow(&m); err != nil {
			return err
		}
		result.Window = m.String()
	}
	if paste && text != "" {
		if err := pasteAndEnter(driver, enter); err != nil {
			return err
		}
		return output.Print(result)
	}
	if err := driver.TypeText(text, enter); err != nil {
		return err
	}
	return output.Print(result)
}

func pasteAndEnter(driver *macro.LiveDriver, enter bool) error {
	if err := driver.SendKeys([]string{"ctrl", "v"}); err != nil {
		return err
	}
	if enter {
		return driver.SendKeys([]string{"enter"})
	}
	return nil
}
