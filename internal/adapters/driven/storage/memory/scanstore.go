package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure ScanStore implements the interface.
var _ driven.ScanStore = (*ScanStore)(nil)

// ScanStore is an in-memory implementation of driven.ScanStore.
// Scans are listed in the order they were appended.
type ScanStore struct {
	mu    sync.RWMutex
	scans map[string]domain.Scan
	order []string
}

// NewScanStore creates a new in-memory scan store.
func NewScanStore() *ScanStore {
	return &ScanStore{
		scans: make(map[string]domain.Scan),
	}
}

// Append stores a scan. Appending an existing ID replaces it in place.
func (s *ScanStore) Append(_ context.Context, scan *domain.Scan) error {
	if scan == nil || scan.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scans[scan.ID]; !ok {
		s.order = append(s.order, scan.ID)
	}
	s.scans[scan.ID] = *scan
	return nil
}

// Get retrieves a scan by ID.
func (s *ScanStore) Get(_ context.Context, id string) (*domain.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scan, ok := s.scans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &scan, nil
}

// List returns all scans, oldest first.
func (s *ScanStore) List(_ context.Context) ([]domain.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Scan, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.scans[id])
	}
	return result, nil
}

// Delete removes a scan.
func (s *ScanStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scans[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.scans, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
