// Package domain defines the core business entities for dentract.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PatientRecord: Fields extracted from one intake form
//   - Scan: A processed form with its source, raw text and record
//   - AppSettings: User-configurable behaviour
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
