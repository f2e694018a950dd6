package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
	"github.com/custodia-labs/dentract/internal/core/ports/driving"
	"github.com/custodia-labs/dentract/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService queries and exports stored scans.
type RecordService struct {
	store    driven.ScanStore
	exporter driven.RecordExporter
}

// NewRecordService creates a new record service.
func NewRecordService(store driven.ScanStore, exporter driven.RecordExporter) *RecordService {
	return &RecordService{
		store:    store,
		exporter: exporter,
	}
}

// List returns all stored scans.
func (s *RecordService) List(ctx context.Context) ([]domain.Scan, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Get retrieves a scan by ID.
func (s *RecordService) Get(ctx context.Context, id string) (*domain.Scan, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: scan ID cannot be empty", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Delete removes a scan.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: scan ID cannot be empty", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}

// Export writes every stored scan to path.
func (s *RecordService) Export(ctx context.Context, path string) (int, error) {
	if s.store == nil || s.exporter == nil {
		return 0, domain.ErrNotImplemented
	}
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("%w: export path cannot be empty", domain.ErrInvalidInput)
	}

	scans, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing scans: %w", err)
	}

	if err := s.exporter.Export(ctx, path, scans); err != nil {
		return 0, fmt.Errorf("exporting to %s: %w", path, err)
	}

	logger.Info("exported %d records to %s", len(scans), path)
	return len(scans), nil
}
