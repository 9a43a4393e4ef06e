package pdf

import (
	"fmt"
	"math"

	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// Fabuchi bounds as fractions of the page size.
const (
	FabuchiLow  = 0.05
	FabuchiHigh = 0.95
)

// ZoomRect scales the page about its centre by s. For s > 1 the rectangle
// extends past the page edges and the overflow is clipped by the page.
func ZoomRect(dims models.PageDimensions, s float64) models.Rect {
	w, h := dims.Width, dims.Height
	dx := w * (s - 1) / 2
	dy := h * (s - 1) / 2
	return models.Rect{
		Left:   -dx,
		Top:    -dy,
		Right:  w*s - dx,
		Bottom: h*s - dy,
	}
}

// FabuchiRect is the fixed central 90% x 90% region of the page.
func FabuchiRect(dims models.PageDimensions) models.Rect {
	w, h := dims.Width, dims.Height
	return models.Rect{
		Left:   w * FabuchiLow,
		Top:    h * FabuchiLow,
		Right:  w * FabuchiHigh,
		Bottom: h * FabuchiHigh,
	}
}

// RescaleOptions selects how pages are placed. ScaleFactor is ignored in
// Fabuchi mode.
type RescaleOptions struct {
	Mode        models.Mode
	ScaleFactor float64
}

func (o RescaleOptions) Validate() error {
	if o.Mode == models.ModeFabuchi {
		return nil
	}
	if o.Mode != models.ModeZoom {
		return fmt.Errorf("unsupported mode %v", o.Mode)
	}
	if math.IsNaN(o.ScaleFactor) || math.IsInf(o.ScaleFactor, 0) || o.ScaleFactor <= 0 {
		return ErrInvalidZoom
	}
	return nil
}

// Placer returns the per-page rectangle function for the options.
func (o RescaleOptions) Placer() Placer {
	if o.Mode == models.ModeFabuchi {
		return func(_ int, dims models.PageDimensions) models.Rect {
			return FabuchiRect(dims)
		}
	}
	s := o.ScaleFactor
	return func(_ int, dims models.PageDimensions) models.Rect {
		return ZoomRect(dims, s)
	}
}

// Matrix is a PDF transformation matrix [a b c d e f].
type Matrix struct {
	A, B, C, D, E, F float64
}

var Identity = Matrix{A: 1, D: 1}

func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

func (m Matrix) String() string {
	return fmt.Sprintf("%.5f %.5f %.5f %.5f %.5f %.5f", m.A, m.B, m.C, m.D, m.E, m.F)
}

// PlacementMatrix maps source user space onto the destination page so that
// the source box is fitted into rect keeping its proportions and centred
// inside it. rect is in top-left-origin coordinates of a destination page of
// size dest; the result is in PDF bottom-left-origin user space. llx and lly
// are the lower-left corner of the source box.
func PlacementMatrix(llx, lly float64, src, dest models.PageDimensions, rect models.Rect) Matrix {
	rw, rh := rect.Width(), rect.Height()
	f := math.Min(rw/src.Width, rh/src.Height)

	x0 := rect.Left + (rw-src.Width*f)/2
	y0 := (dest.Height - rect.Bottom) + (rh-src.Height*f)/2

	return Matrix{
		A: f,
		D: f,
		E: x0 - llx*f,
		F: y0 - lly*f,
	}
}
