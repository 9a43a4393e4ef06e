package pdf

import (
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// Placer returns where the content of a source page lands on its
// destination page, which has the same dimensions as the source.
type Placer func(pageNr int, dims models.PageDimensions) models.Rect

// Document is a source document opened read-only.
type Document interface {
	PageCount() int
	// PageDims is 1-based.
	PageDims(pageNr int) (models.PageDimensions, error)
	// Project writes a new document with one page per source page, each
	// holding the source content fitted into the rectangle chosen by place.
	Project(outPath string, place Placer) error
	// ExtractRange writes a new document holding the pages of r verbatim.
	ExtractRange(r models.PageRange, outPath string) error
	Close() error
}

type Library interface {
	Open(path string) (Document, error)
}
