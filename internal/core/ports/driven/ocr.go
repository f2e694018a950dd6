package driven

import "context"

// TextRecogniser turns a scanned file into text.
type TextRecogniser interface {
	// Supports reports whether the recogniser can read the file at path.
	Supports(path string) bool

	// Recognise returns the raw text found in the file.
	Recognise(ctx context.Context, path string) (string, error)
}
