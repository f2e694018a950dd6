package driving

import (
	"context"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// IntakeService turns scanned intake forms into patient records.
type IntakeService interface {
	// Supports reports whether a file can be recognised.
	Supports(path string) bool

	// Recognise runs OCR on a file and returns its trimmed text.
	// Returns domain.ErrEmptyText when nothing was recognised.
	Recognise(ctx context.Context, path string) (string, error)

	// Parse normalises text and extracts a record from it.
	Parse(text string) (*domain.PatientRecord, error)

	// Ingest parses text recognised elsewhere into a scan, saving it when
	// save is true.
	Ingest(ctx context.Context, source, text string, save bool) (*domain.Scan, error)

	// Save appends a scan to every configured record sink.
	Save(ctx context.Context, scan *domain.Scan) error

	// Process recognises and parses a file, saving the result when save is true.
	Process(ctx context.Context, path string, save bool) (*domain.Scan, error)
}
