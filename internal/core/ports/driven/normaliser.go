package driven

// TextNormaliser prepares recognised text for field extraction.
type TextNormaliser interface {
	// Normalise collapses every run of whitespace into a single space.
	// It never fails.
	Normalise(text string) string
}
