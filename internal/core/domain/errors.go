package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMalformedDate indicates a date-shaped token was found in the text
	// but does not name a calendar date.
	ErrMalformedDate = errors.New("malformed date")

	// ErrEmptyText indicates OCR produced no text for a scan.
	ErrEmptyText = errors.New("no text recognised")

	// ErrOCRUnavailable indicates the OCR command could not be run.
	ErrOCRUnavailable = errors.New("OCR unavailable")

	// ErrUnsupportedType indicates a file type no recogniser handles.
	ErrUnsupportedType = errors.New("unsupported type")
)
