package model

// Rect is a screen rectangle in virtual-desktop coordinates.
// Edges follow the Win32 convention: Right and Bottom are exclusive.
type Rect struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Right  int `yaml:"right"  json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Area returns the rectangle area in square pixels, 0 for degenerate rects.
func (r Rect) Area() int {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y int) {
	return r.Left + r.Width()/2, r.Top + r.Height()/2
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// IsZero reports whether the rectangle is the zero value. yaml omitempty
// consults this when serializing optional rects.
func (r Rect) IsZero() bool {
	return r.Left == 0 && r.Top == 0 && r.Right == 0 && r.Bottom == 0
}
