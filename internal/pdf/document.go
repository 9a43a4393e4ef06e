package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// PDFCPULibrary opens documents with pdfcpu. Sources are read fully into
// memory so the file on disk is never held open or modified.
type PDFCPULibrary struct {
	conf   *model.Configuration
	logger *logger.Logger
}

func NewLibrary(log *logger.Logger) *PDFCPULibrary {
	if log == nil {
		log = logger.Discard()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPULibrary{
		conf:   conf,
		logger: log,
	}
}

func (l *PDFCPULibrary) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), l.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	l.logger.Debug("Opened %s (%d pages)", path, ctx.PageCount)

	return &pdfcpuDocument{
		path:   path,
		ctx:    ctx,
		logger: l.logger,
	}, nil
}

type pdfcpuDocument struct {
	path   string
	ctx    *model.Context
	logger *logger.Logger
}

func (d *pdfcpuDocument) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

func (d *pdfcpuDocument) PageDims(pageNr int) (models.PageDimensions, error) {
	if err := d.checkOpen(); err != nil {
		return models.PageDimensions{}, err
	}
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return models.PageDimensions{}, fmt.Errorf("page %d out of range 1-%d", pageNr, d.ctx.PageCount)
	}
	_, box, err := pageBox(d.ctx, pageNr)
	if err != nil {
		return models.PageDimensions{}, err
	}
	return dimsOf(box), nil
}

func (d *pdfcpuDocument) Project(outPath string, place Placer) error {
	if err := d.checkOpen(); err != nil {
		return err
	}

	out, err := pdfcpu.ExtractPages(d.ctx, models.PageRange{Start: 1, End: d.ctx.PageCount}.Pages(), false)
	if err != nil {
		return fmt.Errorf("failed to copy pages: %w", err)
	}
	if err := out.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to count copied pages: %w", err)
	}

	for pageNr := 1; pageNr <= out.PageCount; pageNr++ {
		if err := projectPage(d.ctx, out, pageNr, place); err != nil {
			return err
		}
	}

	return writeContext(out, outPath)
}

func (d *pdfcpuDocument) ExtractRange(r models.PageRange, outPath string) error {
	if err := d.checkOpen(); err != nil {
		return err
	}
	if err := ValidateRanges([]models.PageRange{r}, d.ctx.PageCount); err != nil {
		return err
	}

	out, err := pdfcpu.ExtractPages(d.ctx, r.Pages(), false)
	if err != nil {
		return fmt.Errorf("failed to extract pages %s: %w", r, err)
	}

	d.logger.Debug("Extracted pages %s of %s", r, d.path)
	return writeContext(out, outPath)
}

func (d *pdfcpuDocument) Close() error {
	d.ctx = nil
	return nil
}

func (d *pdfcpuDocument) checkOpen() error {
	if d.ctx == nil {
		return fmt.Errorf("document %s is closed", d.path)
	}
	return nil
}

// projectPage rewrites page pageNr of out so the source page content is
// drawn through the placement matrix onto a fresh page of the same size,
// clipped to the source box. Content is read from src because streams in
// the extracted copy are not decodable.
func projectPage(src, out *model.Context, pageNr int, place Placer) error {
	srcDict, box, err := pageBox(src, pageNr)
	if err != nil {
		return err
	}
	pageDict, _, err := pageBox(out, pageNr)
	if err != nil {
		return err
	}

	dims := dimsOf(box)
	rect := place(pageNr, dims)
	if !rect.IsValid() {
		return fmt.Errorf("page %d: invalid placement %s", pageNr, rect)
	}
	m := PlacementMatrix(box.LL.X, box.LL.Y, dims, dims, rect)

	content, err := src.PageContent(srcDict, pageNr)
	if err != nil && !errors.Is(err, model.ErrNoContent) {
		return fmt.Errorf("failed to read content of page %d: %w", pageNr, err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "q %s cm\n", m)
	fmt.Fprintf(&buf, "%.5f %.5f %.5f %.5f re W n\n", box.LL.X, box.LL.Y, box.Width(), box.Height())
	buf.Write(content)
	buf.WriteString("\nQ\n")

	streamDict, err := out.NewStreamDictForBuf(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to create content stream for page %d: %w", pageNr, err)
	}
	if err := streamDict.Encode(); err != nil {
		return fmt.Errorf("failed to encode content stream for page %d: %w", pageNr, err)
	}
	indRef, err := out.IndRefForNewObject(*streamDict)
	if err != nil {
		return fmt.Errorf("failed to register content stream for page %d: %w", pageNr, err)
	}

	newBox := types.RectForWidthAndHeight(0, 0, dims.Width, dims.Height)
	// Rotate is left alone. Both placements are symmetric about the page
	// centre, so placing in unrotated space gives the same visible result.
	pageDict["Contents"] = *indRef
	pageDict["MediaBox"] = newBox.Array()
	pageDict["CropBox"] = newBox.Array()
	for _, key := range []string{"TrimBox", "BleedBox", "ArtBox", "Annots"} {
		pageDict.Delete(key)
	}

	return nil
}

func pageBox(ctx *model.Context, pageNr int) (types.Dict, *types.Rectangle, error) {
	pageDict, _, inh, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read page %d: %w", pageNr, err)
	}
	if pageDict == nil || inh == nil {
		return nil, nil, fmt.Errorf("page %d not found", pageNr)
	}

	box := inh.CropBox
	if box == nil {
		box = inh.MediaBox
	}
	if box == nil {
		return nil, nil, fmt.Errorf("page %d has no media box", pageNr)
	}
	if box.Width() <= 0 || box.Height() <= 0 {
		return nil, nil, fmt.Errorf("page %d has an empty media box", pageNr)
	}
	return pageDict, box, nil
}

func dimsOf(box *types.Rectangle) models.PageDimensions {
	return models.PageDimensions{Width: box.Width(), Height: box.Height()}
}

func writeContext(ctx *model.Context, outPath string) error {
	if err := api.WriteContextFile(ctx, outPath); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to save %s: %w", outPath, err)
	}
	return nil
}
