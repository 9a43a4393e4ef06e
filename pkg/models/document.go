package models

import "fmt"

// PageDimensions is a page size in PDF points.
type PageDimensions struct {
	Width  float64
	Height float64
}

// Rect is a placement rectangle in top-left-origin page coordinates,
// y growing downwards.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

func (r Rect) IsValid() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%.2f, %.2f, %.2f, %.2f)", r.Left, r.Top, r.Right, r.Bottom)
}

// PageRange is a 1-based inclusive page range.
type PageRange struct {
	Start int
	End   int
}

func (r PageRange) Len() int {
	return r.End - r.Start + 1
}

// Pages lists the page numbers of the range in ascending order.
func (r PageRange) Pages() []int {
	pages := make([]int, 0, r.Len())
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

func (r PageRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

type Mode int

const (
	ModeZoom Mode = iota
	ModeFabuchi
)

// Suffix is appended to the source file stem to name the rescaled output.
func (m Mode) Suffix() string {
	if m == ModeFabuchi {
		return "_fabuchi"
	}
	return "_zoomed"
}

func (m Mode) String() string {
	switch m {
	case ModeZoom:
		return "zoom"
	case ModeFabuchi:
		return "fabuchi"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "zoom":
		return ModeZoom, nil
	case "fabuchi":
		return ModeFabuchi, nil
	default:
		return ModeZoom, fmt.Errorf("unknown mode %q", s)
	}
}

// RescaleResult describes what happened to one source document.
type RescaleResult struct {
	SourcePath string
	OutputPath string
	Err        error
}
