// Package csv appends patient records to a CSV file.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.RecordSink = (*Sink)(nil)

// Sink appends one row per record in domain.Columns order. The header is
// written only when the file is new or empty.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink creates a sink writing to path. The file is created on first append.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Path returns the CSV file path.
func (s *Sink) Path() string {
	return s.path
}

// Append writes the scan's record as one row.
func (s *Sink) Append(_ context.Context, scan *domain.Scan) error {
	if scan == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("checking %s: %w", s.path, err)
	}

	w := stdcsv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(domain.ColumnNames()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := w.Write(scan.Record.Row()); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	return f.Close()
}
