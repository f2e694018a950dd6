package driven

import "github.com/custodia-labs/dentract/internal/core/domain"

// FieldExtractor reads a PatientRecord out of normalised text.
// Implementations must be safe for concurrent use.
type FieldExtractor interface {
	// Extract returns the fields found in text. Missing fields stay nil.
	// The only error is domain.ErrMalformedDate.
	Extract(text string) (domain.PatientRecord, error)
}
