package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// DateLayout is the canonical visit date format.
const DateLayout = "2006-01-02"

var dateParts = regexp.MustCompile(`^(\d{1,4})[-/](\d{1,2})[-/](\d{1,4})$`)

// parseDate reads a D-M-YYYY or YYYY-M-D token. When the first two parts of a
// D-M-YYYY token are ambiguous dayFirst picks the reading; if the preferred
// reading is not a real date the other one is tried.
func parseDate(token string, dayFirst bool) (string, error) {
	m := dateParts.FindStringSubmatch(token)
	if m == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	if len(m[1]) == 4 {
		if t, ok := civil(a, b, c); ok {
			return t.Format(DateLayout), nil
		}
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}

	day, month := a, b
	if !dayFirst {
		day, month = b, a
	}
	if t, ok := civil(c, month, day); ok {
		return t.Format(DateLayout), nil
	}
	if t, ok := civil(c, day, month); ok {
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
}

// civil returns the date if year, month and day name a real calendar day.
func civil(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
