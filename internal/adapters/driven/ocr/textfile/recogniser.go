// Package textfile reads text that was already recognised, e.g. tesseract
// output saved next to the scan.
package textfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure Recogniser implements the interface.
var _ driven.TextRecogniser = (*Recogniser)(nil)

// Recogniser returns the contents of .txt files unchanged.
type Recogniser struct{}

// New creates a text file recogniser.
func New() *Recogniser {
	return &Recogniser{}
}

// Supports reports whether path is a .txt file.
func (r *Recogniser) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// Recognise reads the file. Non-UTF-8 content is rejected.
func (r *Recogniser) Recognise(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", domain.ErrUnsupportedType
	}
	return string(data), nil
}
