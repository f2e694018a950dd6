// Package mcp provides an MCP (Model Context Protocol) server adapter for dentract.
// It lets AI assistants extract patient records from OCR text and read saved scans.
package mcp

import "errors"

// ErrMissingIntakeService is returned when the intake service is not provided.
var ErrMissingIntakeService = errors.New("mcp: intake service is required")
