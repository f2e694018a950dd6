// Package extractor reads patient records out of normalised OCR text.
//
// Every field is described by one Rule in a table. A rule names the label
// that introduces the field, the shape of its value and how the end of the
// value is found. The engine applies each rule to the whole text on its own;
// rules share no cursor, so the order of fields in the text and the order of
// rules in the table do not affect the result.
//
// # Boundaries
//
// Labelled free-text values are captured lazily. A capture ends at the first
// position where the rest of the text is empty or starts with something that
// looks like a label: a capitalised word followed by ':' or '-', or one of the
// multi-word headings declared in the table (e.g. "Visit Date:").
//
// # Noise
//
// Scanned forms print some labels with a "Medical" prefix ("Medical History:")
// and OCR tends to glue that prefix onto the previous value. A single trailing
// "Medical" token is dropped before the boundary is tested.
//
// Any capitalised word followed by a separator ends a value, even when it is
// not a known label. A value containing "Dr. Smith:" is cut short.
package extractor
