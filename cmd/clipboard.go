package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

// ClipboardReadResult is the output of `clipboard read` and `clipboard grab`.
type ClipboardReadResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Window string `yaml:"window,omitempty" json:"window,omitempty"`
	Text   string `yaml:"text"             json:"text"`
}

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Read or write the system clipboard",
	Long:  "Interact with the system clipboard: read its text, write text to it, or grab a window's content via select-all and copy.",
}

var clipboardReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the current clipboard text",
	RunE:  runClipboardRead,
}

var clipboardWriteCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write text to the clipboard",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClipboardWrite,
}

var clipboardGrabCmd = &cobra.Command{
	Use:   "grab",
	Short: "Select all and copy from a window, then read the clipboard",
	Long:  "Focuses the target window, sends Ctrl+A then Ctrl+C, waits briefly, then reads the clipboard. A quick way to extract a document's full text.",
	RunE:  runClipboardGrab,
}

func init() {
	rootCmd.AddCommand(clipboardCmd)
	clipboardCmd.AddCommand(clipboardReadCmd)
	clipboardCmd.AddCommand(clipboardWriteCmd)
	clipboardCmd.AddCommand(clipboardGrabCmd)

	clipboardWriteCmd.Flags().String("text", "", "Text to write to the clipboard")
	addWindowFlags(clipboardGrabCmd)
}

func runClipboardRead(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Clipboard == nil {
		return fmt.Errorf("clipboard not supported on this platform")
	}

	text, err := provider.Clipboard.ReadText()
	if err != nil {
		return err
	}
	return output.Print(ClipboardReadResult{
		OK:     true,
		Action: "clipboard-read",
		Text:   text,
	})
}

func runClipboardWrite(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Clipboard == nil {
		return fmt.Errorf("clipboard not supported on this platform")
	}

	var text string
	if len(args) > 0 {
		text = args[0]
	}
	if flagText, _ := cmd.Flags().GetString("text"); flagText != "" {
		text = flagText
	}
	if text == "" {
		return fmt.Errorf("specify text as a positional argument or --text flag")
	}

	if err := provider.Clipboard.WriteText(text); err != nil {
		return err
	}
	return output.Print(ActionResult{OK: true, Action: "clipboard-write"})
}

func runClipboardGrab(cmd *cobra.Command, args []string) error {
	m, err := windowMatcherFromFlags(cmd)
	if err != nil {
		return err
	}
	driver, provider, err := newDriver(cmd)
	if err != nil {
		return err
	}
	if provider.Clipboard == nil {
		return fmt.Errorf("clipboard not supported on this platform")
	}

	if err := driver.FocusWindow(&m); err != nil {
		return err
	}
	// Let focus settle before synthesizing the copy.
	time.Sleep(100 * time.Millisecond)

	if err := driver.SendKeys([]string{"ctrl", "a"}); err != nil {
		return fmt.Errorf("select all: %w", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := driver.SendKeys([]string{"ctrl", "c"}); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	text, err := provider.Clipboard.ReadText()
	if err != nil {
		return err
	}
	return output.Print(ClipboardReadResult{
		OK:     true,
		Action: "clipboard-grab",
		Window: m.String(),
		Text:   text,
	})
}
