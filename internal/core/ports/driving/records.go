package driving

import (
	"context"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// RecordService queries and exports stored scans.
type RecordService interface {
	// List returns all stored scans, oldest first.
	List(ctx context.Context) ([]domain.Scan, error)

	// Get retrieves a scan by ID.
	Get(ctx context.Context, id string) (*domain.Scan, error)

	// Delete removes a scan.
	Delete(ctx context.Context, id string) error

	// Export writes all stored scans to a spreadsheet at path and
	// returns how many were written.
	Export(ctx context.Context, path string) (int, error)
}
