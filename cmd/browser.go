package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/browser"
	"github.com/hfwin/handsfree/internal/output"
)

// BrowserResult is the YAML output of browser commands.
type BrowserResult struct {
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	Profile string `yaml:"profile,omitempty" json:"profile,omitempty"`
	URL     string `yaml:"url,omitempty"     json:"url,omitempty"`
	Title   string `yaml:"title,omitempty"   json:"title,omitempty"`
	Path    string `yaml:"path,omitempty"    json:"path,omitempty"`
	Content string `yaml:"content,omitempty" json:"content,omitempty"`
}

// BrowserLinksResult is the YAML output of `browser links`.
type BrowserLinksResult struct {
	OK    bool           `yaml:"ok"    json:"ok"`
	URL   string         `yaml:"url"   json:"url"`
	Title string         `yaml:"title" json:"title"`
	Links []browser.Link `yaml:"links" json:"links"`
}

var browserCmd = &cobra.Command{
	Use:   "browser",
	Short: "Drive a managed web browser",
	Long: `Drive a managed Chrome over a named persistent profile. Profiles
keep login sessions alive between runs, and the last visited URL is
restored on the next command, so successive invocations compose into
one browsing session.

Web pages expose thin or no UI Automation trees, so desktop selectors
cannot reach into them; these commands work on the DOM instead.`,
}

var browserOpenCmd = &cobra.Command{
	Use:   "open [url]",
	Short: "Open the browser, optionally at a URL",
	Long: `Open the managed browser. With a URL it navigates there; without
one it restores the last visited page.

Examples:
  handsfree browser open
  handsfree browser open https://github.com/login
  handsfree browser open https://mail.example.com --browser work`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowserOpen,
}

var browserNavigateCmd = &cobra.Command{
	Use:   "navigate <url>",
	Short: "Navigate to a URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowserNavigate,
}

var browserSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture the current page's structure",
	Long: `Capture the current page as an accessibility outline (aria), plain
text (text), or raw HTML (html). The aria outline is the most
token-efficient form for deciding what to click next.

Examples:
  handsfree browser snapshot
  handsfree browser snapshot --snapshot-format text`,
	RunE: runBrowserSnapshot,
}

var browserClickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click a page element",
	Long: `Click a page element by CSS selector or by visible text.

Examples:
  handsfree browser click --css "button[type=submit]"
  handsfree browser click --text "Sign in"`,
	RunE: runBrowserClick,
}

var browserTypeCmd = &cobra.Command{
	Use:   "type",
	Short: "Type into a page element",
	Long: `Type text into a page element matched by CSS selector.

Examples:
  handsfree browser type --css "input[name=q]" --text "golang uia" --enter`,
	RunE: runBrowserType,
}

var browserScreenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Screenshot the current page",
	RunE:  runBrowserScreenshot,
}

var browserEvalCmd = &cobra.Command{
	Use:   "eval <js>",
	Short: "Evaluate JavaScript on the current page",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowserEval,
}

var browserLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the current page's links",
	RunE:  runBrowserLinks,
}

func init() {
	rootCmd.AddCommand(browserCmd)
	browserCmd.AddCommand(browserOpenCmd)
	browserCmd.AddCommand(browserNavigateCmd)
	browserCmd.AddCommand(browserSnapshotCmd)
	browserCmd.AddCommand(browserClickCmd)
	browserCmd.AddCommand(browserTypeCmd)
	browserCmd.AddCommand(browserScreenshotCmd)
	browserCmd.AddCommand(browserEvalCmd)
	browserCmd.AddCommand(browserLinksCmd)

	browserCmd.PersistentFlags().String("browser", "", "Profile name (default: the last used profile)")
	browserCmd.PersistentFlags().Bool("headless", false, "Run without a visible window")
	browserCmd.PersistentFlags().Duration("op-timeout", 30*time.Second, "Timeout per page operation")

	browserSnapshotCmd.Flags().String("snapshot-format", "aria", "Snapshot format: aria, text, html")
	browserClickCmd.Flags().String("css", "", "CSS selector of the element to click")
	browserClickCmd.Flags().String("text", "", "Visible text of the element to click")
	browserTypeCmd.Flags().String("css", "", "CSS selector of the input (required)")
	browserTypeCmd.Flags().String("text", "", "Text to type")
	browserTypeCmd.Flags().Bool("enter", false, "Press Enter after the text")
	_ = browserTypeCmd.MarkFlagRequired("css")
	browserScreenshotCmd.Flags().String("out", "page.png", "Output PNG path")
	browserScreenshotCmd.Flags().Bool("full-page", false, "Capture the full scroll height")
}

// browserSession starts a session on the profile selected by the
// --browser flag, falling back to the last used profile.
func browserSession(cmd *cobra.Command) (*browser.Session, error) {
	profile, _ := cmd.Flags().GetString("browser")
	headless, _ := cmd.Flags().GetBool("headless")
	opTimeout, _ := cmd.Flags().GetDuration("op-timeout")

	cfg := browser.Config{
		Headless: headless,
		Timeout:  opTimeout,
		Logger:   slog.Default(),
	}
	if profile == "" {
		home, err := browser.Home()
		if err != nil {
			return nil, err
		}
		profile = browser.LoadState(home).Browser
	}
	return browser.Start(cfg, profile)
}

func runBrowserOpen(cmd *cobra.Command, args []string) error {
	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	url := ""
	if len(args) > 0 {
		url = args[0]
	}
	var info *browser.PageInfo
	if url != "" {
		info, err = sess.Navigate(cmd.Context(), url)
	} else {
		info, _, err = sess.Snapshot(cmd.Context(), "aria")
	}
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:      true,
		Action:  "browser-open",
		Profile: sess.Profile(),
		URL:     info.URL,
		Title:   info.Title,
	})
}

func runBrowserNavigate(cmd *cobra.Command, args []string) error {
	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	info, err := sess.Navigate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:     true,
		Action: "browser-navigate",
		URL:    info.URL,
		Title:  info.Title,
	})
}

func runBrowserSnapshot(cmd *cobra.Command, args []string) error {
	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	format, _ := cmd.Flags().GetString("snapshot-format")
	info, content, err := sess.Snapshot(cmd.Context(), format)
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:      true,
		Action:  "browser-snapshot",
		URL:     info.URL,
		Title:   info.Title,
		Content: content,
	})
}

func runBrowserClick(cmd *cobra.Command, args []string) error {
	css, _ := cmd.Flags().GetString("css")
	text, _ := cmd.Flags().GetString("text")
	if css == "" && text == "" {
		return fmt.Errorf("specify --css or --text")
	}

	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	info, err := sess.Click(cmd.Context(), css, text)
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:     true,
		Action: "browser-click",
		URL:    info.URL,
		Title:  info.Title,
	})
}

func runBrowserType(cmd *cobra.Command, args []string) error {
	css, _ := cmd.Flags().GetString("css")
	text, _ := cmd.Flags().GetString("text")
	enter, _ := cmd.Flags().GetBool("enter")

	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	info, err := sess.Type(cmd.Context(), css, text, enter)
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:     true,
		Action: "browser-type",
		URL:    info.URL,
		Title:  info.Title,
	})
}

func runBrowserScreenshot(cmd *cobra.Command, args []string) error {
	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	out, _ := cmd.Flags().GetString("out")
	fullPage, _ := cmd.Flags().GetBool("full-page")
	info, err := sess.Screenshot(cmd.Context(), out, fullPage)
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:     true,
		Action: "browser-screenshot",
		URL:    info.URL,
		Title:  info.Title,
		Path:   out,
	})
}

func runBrowserEval(cmd *cobra.Command, args []string) error {
	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	info, value, err := sess.Eval(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return output.Print(BrowserResult{
		OK:      true,
		Action:  "browser-eval",
		URL:     info.URL,
		Title:   info.Title,
		Content: value,
	})
}

func runBrowserLinks(cmd *cobra.Command, args []string) error {
	sess, err := browserSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	info, links, err := sess.Links(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(BrowserLinksResult{
		OK:    true,
		URL:   info.URL,
		Title: info.Title,
		Links: links,
	})
}
