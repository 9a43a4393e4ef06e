package pdf

import (
	"errors"
	"fmt"

	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// User-input errors. Their messages are shown to the user as-is.
var (
	ErrNoSelection       = errors.New("No PDFs selected!")
	ErrMultipleSelection = errors.New("Select only one PDF for splitting!")
	ErrNoRanges          = errors.New("No page ranges provided!")
	ErrMalformedRanges   = errors.New("Invalid input! Enter an even number of integers.")
	ErrInvalidZoom       = errors.New("Enter a valid zoom percentage!")
)

// InvalidRangeError reports the first range that failed validation.
type InvalidRangeError struct {
	Range      models.PageRange
	TotalPages int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("Invalid range %d-%d.", e.Range.Start, e.Range.End)
}

// IsUserError reports whether err stems from bad input rather than I/O.
func IsUserError(err error) bool {
	var rangeErr *InvalidRangeError
	return errors.Is(err, ErrNoSelection) ||
		errors.Is(err, ErrMultipleSelection) ||
		errors.Is(err, ErrNoRanges) ||
		errors.Is(err, ErrMalformedRanges) ||
		errors.Is(err, ErrInvalidZoom) ||
		errors.As(err, &rangeErr)
}
