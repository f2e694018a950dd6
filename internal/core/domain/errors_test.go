package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrMalformedDate", ErrMalformedDate},
		{"ErrEmptyText", ErrEmptyText},
		{"ErrOCRUnavailable", ErrOCRUnavailable},
		{"ErrUnsupportedType", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrMalformedDate_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrMalformedDate, "45-45-2025")

	assert.True(t, errors.Is(err, ErrMalformedDate))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "45-45-2025")
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrEmptyText, ErrNotFound))
	assert.False(t, errors.Is(ErrMalformedDate, ErrEmptyText))
}
