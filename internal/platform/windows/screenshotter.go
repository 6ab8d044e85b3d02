//go:build windows

package windows

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
)

// Screenshotter captures screen content through GDI.
type Screenshotter struct{}

// NewScreenshotter creates the Windows screen capturer.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

var _ platform.Screenshotter = (*Screenshotter)(nil)

// CaptureScreen captures the primary monitor.
func (s *Screenshotter) CaptureScreen() (image.Image, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	return captureRect(0, 0, int(int32(w)), int(int32(h)))
}

// CaptureWindow captures the window's screen rectangle as currently
// shown, occluding windows included.
func (s *Screenshotter) CaptureWindow(w model.Window) (image.Image, error) {
	r := w.Rect
	if w.Handle != 0 {
		r = windowRect(w.Handle)
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		return nil, fmt.Errorf("window %q has an empty rectangle", w.Title)
	}
	return captureRect(r.Left, r.Top, r.Width(), r.Height())
}

func captureRect(x, y, width, height int) (image.Image, error) {
	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("get screen device context")
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("create memory device context")
	}
	defer procDeleteDC.Call(memDC)

	bmp, _, _ := procCreateCompatibleBitmap.Call(screenDC, uintptr(width), uintptr(height))
	if bmp == 0 {
		return nil, fmt.Errorf("create capture bitmap")
	}
	defer procDeleteObject.Call(bmp)

	prev, _, _ := procSelectObject.Call(memDC, bmp)
	blitOK, _, blitErr := procBitBlt.Call(memDC, 0, 0, uintptr(width), uintptr(height),
		screenDC, uintptr(int32(x)), uintptr(int32(y)), srcCopy|captureBlt)
	// GetDIBits requires the bitmap deselected.
	procSelectObject.Call(memDC, prev)
	if blitOK == 0 {
		return nil, fmt.Errorf("copy screen pixels: %w", blitErr)
	}

	hdr := bitmapInfoHeader{
		size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		width:       int32(width),
		height:      -int32(height), // negative height = top-down rows
		planes:      1,
		bitCount:    32,
		compression: biRGBCompress,
	}
	buf := make([]byte, width*height*4)
	r, _, err := procGetDIBits.Call(memDC, bmp, 0, uintptr(height),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&hdr)), dibRGBColors)
	if r == 0 {
		return nil, fmt.Errorf("read capture bits: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// GDI hands back BGRA.
	for i := 0; i+3 < len(buf); i += 4 {
		img.Pix[i+0] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}
