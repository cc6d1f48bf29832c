package area

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle in screen or document space.
// Document space is PDF points with a top-left origin.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Selection is the current drawn area together with the sample it was
// drawn on and the size the sample's preview was actually rendered at.
type Selection struct {
	SamplePath string
	Preview    Size
	Rect       Rect
}

// Normalize returns r with bounds ordered so X1 >= X0 and Y1 >= Y0.
func (r Rect) Normalize() Rect {
	if r.X1 < r.X0 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y1 < r.Y0 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width of the normalized rectangle.
func (r Rect) Width() float64 {
	n := r.Normalize()
	return n.X1 - n.X0
}

// Height of the normalized rectangle.
func (r Rect) Height() float64 {
	n := r.Normalize()
	return n.Y1 - n.Y0
}

// IsEmpty reports whether the rectangle has zero width or zero height.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// IsZero reports whether the rectangle was never drawn.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

func (r Rect) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.X0, r.Y0, r.X1, r.Y1)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// MapToDocument scales a screen-space rectangle drawn on a preview of the
// given size into the document space of a page of the given size. Each axis
// uses its own scale and every coordinate is truncated toward zero.
// A preview with a zero dimension maps everything onto that axis' origin.
func MapToDocument(preview, page Size, screen Rect) Rect {
	s := screen.Normalize()
	sx := scale(page.Width, preview.Width)
	sy := scale(page.Height, preview.Height)
	return Rect{
		X0: math.Trunc(s.X0 * sx),
		Y0: math.Trunc(s.Y0 * sy),
		X1: math.Trunc(s.X1 * sx),
		Y1: math.Trunc(s.Y1 * sy),
	}
}

func scale(doc, preview float64) float64 {
	if preview <= 0 {
		return 0
	}
	return doc / preview
}

// PreviewSize is the size pdftoppm renders a page at for -scale-to-x width
// -scale-to-y -1: the resolution follows from the width and the height is
// rounded up.
func PreviewSize(page Size, width int) Size {
	if page.Width <= 0 || width <= 0 {
		return Size{}
	}
	res := 72.0 * float64(width) / page.Width
	return Size{
		Width:  float64(width),
		Height: math.Ceil(page.Height * (res / 72.0)),
	}
}

// ParseRect parses "x0,y0,x1,y1".
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("area %q: want x0,y0,x1,y1", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("area %q: %w", s, err)
		}
		v[i] = f
	}
	return Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}

// ParseSize parses "WxH".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("size %q: want WxH", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return Size{Width: width, Height: height}, nil
}
