package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/kpauljoseph/pdfrescaler/internal/status"
	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
	"github.com/kpauljoseph/pdfrescaler/pkg/utils"
)

const SplitSuccessMessage = "PDF split successfully!"

// RangeSplitter copies page ranges of a single document into separate files
// next to the source.
type RangeSplitter struct {
	library  Library
	reporter status.Reporter
	logger   *logger.Logger
}

func NewRangeSplitter(library Library, reporter status.Reporter, log *logger.Logger) *RangeSplitter {
	if log == nil {
		log = logger.Discard()
	}
	return &RangeSplitter{
		library:  library,
		reporter: reporter,
		logger:   log,
	}
}

// OutputPath is <source dir>/<stem>_<start>-<end><ext>.
func (s *RangeSplitter) OutputPath(sourcePath string, r models.PageRange) string {
	dir, stem, ext := utils.SplitName(sourcePath)
	return filepath.Join(dir, fmt.Sprintf("%s_%d-%d%s", stem, r.Start, r.End, ext))
}

// PageCount opens path only long enough to count its pages.
func (s *RangeSplitter) PageCount(path string) (int, error) {
	doc, err := s.library.Open(path)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.PageCount(), nil
}

// Split validates everything before writing anything: on any validation
// failure no file is produced.
func (s *RangeSplitter) Split(selection []string, rangeText string) ([]string, error) {
	switch {
	case len(selection) == 0:
		return nil, s.fail(ErrNoSelection)
	case len(selection) > 1:
		return nil, s.fail(ErrMultipleSelection)
	}
	sourcePath := selection[0]

	ranges, err := ParseRanges(rangeText)
	if err != nil {
		return nil, s.fail(err)
	}

	doc, err := s.library.Open(sourcePath)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to open %s: %w", sourcePath, err))
	}
	defer doc.Close()

	if err := ValidateRanges(ranges, doc.PageCount()); err != nil {
		return nil, s.fail(err)
	}

	outputs := make([]string, 0, len(ranges))
	for _, r := range ranges {
		outPath := s.OutputPath(sourcePath, r)
		if err := doc.ExtractRange(r, outPath); err != nil {
			return outputs, s.fail(err)
		}
		s.logger.Debug("Wrote pages %s to %s", r, outPath)
		outputs = append(outputs, outPath)
	}

	s.logger.Info("Split %s into %d files", sourcePath, len(outputs))
	s.reporter.Report(status.Success(SplitSuccessMessage))
	return outputs, nil
}

func (s *RangeSplitter) fail(err error) error {
	s.reporter.Report(status.Error("Error: " + err.Error()))
	return err
}
