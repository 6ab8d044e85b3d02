package cmd

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hfwin/handsfree/internal/model"
)

const maxLabelChars = 24

// annotateControls draws a bounding box and label over each control on a
// window capture. Control rects are screen-absolute; the window rect maps
// them into image pixels, which also absorbs any DPI scaling between the
// window size and the captured bitmap.
func annotateControls(img image.Image, controls []model.FlatControl, win model.Rect) *image.RGBA {
	rgba := toRGBA(img)

	imgBounds := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if win.Width() > 0 {
		scaleX = float64(imgBounds.Dx()) / float64(win.Width())
	}
	if win.Height() > 0 {
		scaleY = float64(imgBounds.Dy()) / float64(win.Height())
	}

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 100}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for _, c := range controls {
		x1 := int(float64(c.Rect.Left-win.Left) * scaleX)
		y1 := int(float64(c.Rect.Top-win.Top) * scaleY)
		x2 := x1 + int(float64(c.Rect.Width())*scaleX)
		y2 := y1 + int(float64(c.Rect.Height())*scaleY)

		drawRectangle(rgba, x1, y1, x2, y2, boxColor)
		drawTextWithOutline(rgba, controlLabel(c), (x1+x2)/2, (y1+y2)/2, textColor, outlineColor)
	}
	return rgba
}

// controlLabel picks the most durable identifier for the overlay text.
func controlLabel(c model.FlatControl) string {
	label := c.AutoID
	if label == "" {
		label = c.Name
	}
	if label == "" {
		label = c.ControlType
	}
	if len(label) > maxLabelChars {
		label = label[:maxLabelChars-1] + "…"
	}
	return label
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a one-pixel rectangle outline, clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text centered at (x, y) with a 1px outline so
// labels stay readable over any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13: ~7px per character, 13px tall.
	textWidth := len(text) * 7
	textHeight := 13

	offsetX := x - textWidth/2
	offsetY := y - textHeight/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((offsetX + dx) * 64),
					Y: fixed.Int26_6((offsetY + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(offsetX * 64),
			Y: fixed.Int26_6(offsetY * 64),
		},
	}
	d.DrawString(text)
}
