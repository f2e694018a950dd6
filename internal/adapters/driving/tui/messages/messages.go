// Package messages defines Bubbletea message types for the TUI.
// Messages carry results of service calls back into the model.
package messages

import (
	"github.com/custodia-labs/dentract/internal/core/domain"
)

// Recognised carries OCR output for the current file.
type Recognised struct {
	Path string
	Text string
	Err  error
}

// Parsed carries the scan built from the recognised text.
type Parsed struct {
	Scan *domain.Scan
	Err  error
}

// Saved reports the outcome of saving the current scan.
type Saved struct {
	ScanID string
	Err    error
}
