// Package tui provides an interactive terminal review of scanned forms.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dentract/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Intake recognises, parses and saves scans.
	Intake driving.IntakeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Intake == nil {
		return ErrMissingIntakeService
	}
	return nil
}
