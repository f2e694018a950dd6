package domain

import "time"

// Scan is one processed intake form: where it came from, what OCR read,
// and the record extracted from it.
type Scan struct {
	// ID uniquely identifies the scan.
	ID string `json:"id"`

	// Source is the path of the scanned file.
	Source string `json:"source"`

	// Text is the recognised text before normalisation.
	Text string `json:"text"`

	// Record is the extracted patient record.
	Record PatientRecord `json:"record"`

	// CreatedAt is when the scan was processed.
	CreatedAt time.Time `json:"created_at"`
}
