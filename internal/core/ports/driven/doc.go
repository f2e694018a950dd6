// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextNormaliser: Collapses OCR whitespace into one linear string
//   - FieldExtractor: Turns normalised text into a PatientRecord
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextRecogniser: OCR. Without it only pre-recognised .txt input works.
//   - RecordSink: Append-only record persistence (CSV, SQLite).
//   - ScanStore: Queryable scan history. Without it records list/show are disabled.
//   - RecordExporter: Spreadsheet export.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
