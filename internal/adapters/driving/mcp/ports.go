package mcp

import (
	"github.com/custodia-labs/dentract/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Intake parses text and processes scan files.
	Intake driving.IntakeService

	// Records reads saved scans. Optional: without it the records
	// resource is empty and get_record reports not found.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Intake == nil {
		return ErrMissingIntakeService
	}
	return nil
}
