// Package preview rasterises PDF pages so rescaled output can be checked
// by eye or compared pixel by pixel.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
)

const DefaultDPI = 72.0

type Renderer struct {
	dpi    float64
	logger *logger.Logger
}

func NewRenderer(dpi float64, log *logger.Logger) *Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Renderer{
		dpi:    dpi,
		logger: log,
	}
}

func (r *Renderer) DPI() float64 {
	return r.dpi
}

// Image renders page pageNr (1-based) of the PDF at path.
func (r *Renderer) Image(path string, pageNr int) (*image.RGBA, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	// fitz pages are zero indexed.
	if pageNr < 1 || pageNr > doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1-%d", pageNr, doc.NumPage())
	}

	img, err := doc.ImageDPI(pageNr-1, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageNr, err)
	}

	r.logger.Trace("Rendered %s page %d at %.0f dpi: %dx%d", path, pageNr, r.dpi, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// PageCount reports the number of pages as seen by the renderer.
func (r *Renderer) PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// Bounds returns the page bounds of page pageNr (1-based) in points.
func (r *Renderer) Bounds(path string, pageNr int) (image.Rectangle, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if pageNr < 1 || pageNr > doc.NumPage() {
		return image.Rectangle{}, fmt.Errorf("page %d out of range 1-%d", pageNr, doc.NumPage())
	}

	bounds, err := doc.Bound(pageNr - 1)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("failed to get bounds for page %d: %w", pageNr, err)
	}
	return bounds, nil
}

// RenderPNG writes page pageNr (1-based) of the PDF at path to outPath.
func (r *Renderer) RenderPNG(path string, pageNr int, outPath string) error {
	img, err := r.Image(path, pageNr)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	r.logger.Debug("Preview written to %s", outPath)
	return nil
}
