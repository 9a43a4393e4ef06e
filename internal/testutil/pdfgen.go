// Package testutil builds small PDF fixtures for specs so no binary test
// data has to be checked in.
package testutil

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// Page describes one fixture page. An empty Content gets the default
// centred square. CropBox is in PDF user space when set.
type Page struct {
	Size    models.PageDimensions
	CropBox *types.Rectangle
	Content string
}

// SquareContent fills the central half of a page of the given size with
// the fixture blue.
func SquareContent(size models.PageDimensions) string {
	return fmt.Sprintf("0.2 0.4 0.8 rg\n%.2f %.2f %.2f %.2f re\nf\n",
		size.Width/4, size.Height/4, size.Width/2, size.Height/2)
}

// FillContent paints the rectangle in the fixture blue.
func FillContent(llx, lly, w, h float64) string {
	return fmt.Sprintf("0.2 0.4 0.8 rg\n%.2f %.2f %.2f %.2f re\nf\n", llx, lly, w, h)
}

// WritePDF writes a document with one page per entry of sizes. Every page
// carries a filled square so rendered output is never blank.
func WritePDF(path string, sizes []models.PageDimensions) error {
	pages := make([]Page, len(sizes))
	for i, size := range sizes {
		pages[i] = Page{Size: size}
	}
	return WritePages(path, pages)
}

// WritePages writes pages with pdfcpu. Content streams are Flate encoded.
func WritePages(path string, pages []Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to write")
	}

	first := pages[0].Size
	ctx, err := pdfcpu.CreateContextWithXRefTable(model.NewDefaultConfiguration(), &types.Dim{Width: first.Width, Height: first.Height})
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}

	pagesRef, err := ctx.Pages()
	if err != nil {
		return fmt.Errorf("failed to find page tree: %w", err)
	}
	pagesDict, err := ctx.DereferenceDict(*pagesRef)
	if err != nil {
		return fmt.Errorf("failed to read page tree: %w", err)
	}

	kids := types.Array{}
	for i, p := range pages {
		content := p.Content
		if content == "" {
			content = SquareContent(p.Size)
		}

		sd, err := ctx.NewStreamDictForBuf([]byte(content))
		if err != nil {
			return err
		}
		if err := sd.Encode(); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		contentRef, err := ctx.IndRefForNewObject(*sd)
		if err != nil {
			return err
		}

		pageDict := types.Dict(map[string]types.Object{
			"Type":      types.Name("Page"),
			"Parent":    *pagesRef,
			"MediaBox":  types.RectForWidthAndHeight(0, 0, p.Size.Width, p.Size.Height).Array(),
			"Resources": types.NewDict(),
			"Contents":  *contentRef,
		})
		if p.CropBox != nil {
			pageDict["CropBox"] = p.CropBox.Array()
		}

		pageRef, err := ctx.IndRefForNewObject(pageDict)
		if err != nil {
			return err
		}
		kids = append(kids, *pageRef)
	}

	pagesDict.Update("Kids", kids)
	pagesDict.Update("Count", types.Integer(len(pages)))
	ctx.PageCount = len(pages)

	if err := api.WriteContextFile(ctx, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// NumberedSizes gives page i a width of base.Width+i so page order can be
// checked from dimensions alone.
func NumberedSizes(n int, base models.PageDimensions) []models.PageDimensions {
	sizes := make([]models.PageDimensions, n)
	for i := range sizes {
		sizes[i] = models.PageDimensions{Width: base.Width + float64(i+1), Height: base.Height}
	}
	return sizes
}

// WriteCorrupt writes a file with a .pdf name that is not a PDF.
func WriteCorrupt(path string) error {
	return os.WriteFile(path, []byte("this is not a pdf"), 0644)
}
