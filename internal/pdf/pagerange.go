package pdf

import (
	"strconv"
	"strings"

	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// ParseRanges turns whitespace separated "start end" pairs into ranges.
// It does not look at any document; bounds are checked by ValidateRanges.
func ParseRanges(text string) ([]models.PageRange, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrNoRanges
	}
	if len(fields)%2 != 0 {
		return nil, ErrMalformedRanges
	}

	numbers := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, ErrMalformedRanges
		}
		numbers[i] = n
	}

	ranges := make([]models.PageRange, 0, len(numbers)/2)
	for i := 0; i < len(numbers); i += 2 {
		ranges = append(ranges, models.PageRange{Start: numbers[i], End: numbers[i+1]})
	}
	return ranges, nil
}

// ValidateRanges checks every range against the page count and returns the
// first one that is out of bounds or inverted.
func ValidateRanges(ranges []models.PageRange, totalPages int) error {
	for _, r := range ranges {
		if r.Start < 1 || r.End > totalPages || r.Start > r.End {
			return &InvalidRangeError{Range: r, TotalPages: totalPages}
		}
	}
	return nil
}
