package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/pdfrescaler/internal/status"
	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
	"github.com/kpauljoseph/pdfrescaler/pkg/utils"
)

const CompletionMessage = "Processing complete!"

// Rescaler writes a zoomed or Fabuchi copy of each source document into
// outputDir. Sources are never modified.
type Rescaler struct {
	library   Library
	outputDir string
	reporter  status.Reporter
	logger    *logger.Logger
}

func NewRescaler(library Library, outputDir string, reporter status.Reporter, log *logger.Logger) *Rescaler {
	if log == nil {
		log = logger.Discard()
	}
	return &Rescaler{
		library:   library,
		outputDir: outputDir,
		reporter:  reporter,
		logger:    log,
	}
}

func (r *Rescaler) OutputDir() string {
	return r.outputDir
}

// OutputPath is <outputDir>/<stem><suffix><ext>.
func (r *Rescaler) OutputPath(sourcePath string, mode models.Mode) string {
	_, stem, ext := utils.SplitName(sourcePath)
	return filepath.Join(r.outputDir, stem+mode.Suffix()+ext)
}

// Run processes every path in order. A failing document is reported and
// skipped; the others are still processed. The returned error is only set
// when nothing could be attempted.
func (r *Rescaler) Run(ctx context.Context, paths []string, opts RescaleOptions) ([]models.RescaleResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		r.reporter.Report(status.Error(fmt.Sprintf("Error: %v", err)))
		return nil, err
	}

	r.logger.Info("Rescaling %d PDFs (%s) into %s", len(paths), opts.Mode, r.outputDir)

	results := make([]models.RescaleResult, 0, len(paths))
	for _, path := range paths {
		select {
		case <-ctx.Done():
			r.logger.Info("Rescaling interrupted: %v", ctx.Err())
			r.reporter.Report(status.Info(CompletionMessage))
			return results, ctx.Err()
		default:
		}

		result := models.RescaleResult{SourcePath: path}
		outPath, err := r.rescale(path, opts)
		if err != nil {
			result.Err = err
			r.logger.Debug("Failed %s: %v", path, err)
			r.reporter.Report(status.Error(fmt.Sprintf("Error processing %s: %v", path, err)))
		} else {
			result.OutputPath = outPath
			r.reporter.Report(status.Success(fmt.Sprintf("Processed: %s", filepath.Base(outPath))))
		}
		results = append(results, result)
	}

	r.reporter.Report(status.Info(CompletionMessage))
	return results, nil
}

// rescale turns a panic inside the document library into an error so one
// bad document never stops the run.
func (r *Rescaler) rescale(path string, opts RescaleOptions) (outPath string, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Debug("Recovered while rescaling %s: %v", path, p)
			outPath, err = "", fmt.Errorf("failed to rescale %s: %v", path, p)
		}
	}()

	doc, err := r.library.Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	r.logger.Trace("%s: %d pages", path, doc.PageCount())

	outPath = r.OutputPath(path, opts.Mode)
	if err := doc.Project(outPath, opts.Placer()); err != nil {
		return "", err
	}
	return outPath, nil
}
