package cmd

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
)

// ScreenshotResult is the YAML output of `screenshot --out`.
type ScreenshotResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Path   string `yaml:"path"   json:"path"`
	Width  int    `yaml:"width"  json:"width"`
	Height int    `yaml:"height" json:"height"`
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen or a window",
	Long: `Capture the whole screen, or a single window when window flags are
given. PNG goes to --out, or to stdout as base64 without it.

--annotate overlays interactive controls with their automation IDs or
names, so a vision model can map what it sees back to selectors. It
requires window flags.

Examples:
  handsfree screenshot --out screen.png
  handsfree screenshot --title "Calculator" --out calc.png
  handsfree screenshot --title "Calculator" --annotate --out calc-annotated.png`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	addWindowFlags(screenshotCmd)
	screenshotCmd.Flags().String("out", "", "Output PNG path (default: stdout as base64)")
	screenshotCmd.Flags().Bool("annotate", false, "Overlay interactive controls with labels")
	screenshotCmd.Flags().String("types", "interactive", "Control types to annotate (comma-separated, accepts groups)")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	annotate, _ := cmd.Flags().GetBool("annotate")
	haveWindow := windowFlagsSet(cmd)
	if annotate && !haveWindow {
		return fmt.Errorf("--annotate needs a window: set --title, --title-regex, or --class-name")
	}

	var img image.Image
	if haveWindow {
		m, err := windowMatcherFromFlags(cmd)
		if err != nil {
			return err
		}
		driver, provider, err := newDriver(cmd)
		if err != nil {
			return err
		}
		if provider.Screenshotter == nil {
			return fmt.Errorf("screenshot not supported on this platform")
		}
		w, err := driver.Resolver().FindWindow(m)
		if err != nil {
			return err
		}
		img, err = provider.Screenshotter.CaptureWindow(w)
		if err != nil {
			return err
		}
		if annotate {
			img, err = annotateWindow(cmd, provider, w, img)
			if err != nil {
				return err
			}
		}
	} else {
		provider, err := platform.NewProvider()
		if err != nil {
			return err
		}
		if provider.Screenshotter == nil {
			return fmt.Errorf("screenshot not supported on this platform")
		}
		img, err = provider.Screenshotter.CaptureScreen()
		if err != nil {
			return err
		}
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		enc := base64.NewEncoder(base64.StdEncoding, os.Stdout)
		if err := png.Encode(enc, img); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	if err := savePNG(out, img); err != nil {
		return err
	}
	return output.Print(ScreenshotResult{
		OK:     true,
		Action: "screenshot",
		Path:   out,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	})
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

func annotateWindow(cmd *cobra.Command, provider *platform.Provider, w model.Window, img image.Image) (image.Image, error) {
	if provider.TreeReader == nil {
		return nil, fmt.Errorf("tree reading not available on this platform")
	}
	root, err := provider.TreeReader.WindowTree(w, platform.TreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	types, _ := cmd.Flags().GetString("types")
	var typeList []string
	if types != "" {
		typeList = model.ExpandControlTypes(strings.Split(types, ","))
	}
	controls := model.FilterControls(model.Flatten(*root), typeList, "")
	return annotateControls(img, controls, w.Rect), nil
}
