package driven

import (
	"context"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// RecordSink persists processed scans. Sinks are append-only.
type RecordSink interface {
	// Append writes one scan.
	Append(ctx context.Context, scan *domain.Scan) error
}

// ScanStore is a RecordSink that can also be queried.
// Backed by SQLite.
type ScanStore interface {
	RecordSink

	// Get retrieves a scan by ID.
	Get(ctx context.Context, id string) (*domain.Scan, error)

	// List returns all scans, oldest first.
	List(ctx context.Context) ([]domain.Scan, error)

	// Delete removes a scan.
	Delete(ctx context.Context, id string) error
}

// RecordExporter writes scans to a file in a spreadsheet format.
type RecordExporter interface {
	// Export writes scans to path, replacing any existing file.
	Export(ctx context.Context, path string, scans []domain.Scan) error
}
