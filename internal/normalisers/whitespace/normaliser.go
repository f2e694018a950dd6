// Package whitespace collapses OCR whitespace into single spaces.
package whitespace

import (
	"regexp"

	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

// runs matches ASCII and Unicode whitespace, including NBSP and line separators.
var runs = regexp.MustCompile(`[\s\p{Z}\v\x{0085}]+`)

// Normaliser replaces whitespace runs with one space.
type Normaliser struct{}

// New creates a new whitespace normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise replaces every maximal run of whitespace with a single space.
// Leading and trailing runs become a single space rather than being removed.
func (n *Normaliser) Normalise(text string) string {
	return runs.ReplaceAllString(text, " ")
}
