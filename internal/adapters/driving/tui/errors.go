package tui

import "errors"

// ErrMissingIntakeService is returned when the intake service is not provided.
var ErrMissingIntakeService = errors.New("tui: intake service is required")

// ErrNoFiles is returned when review is started without any files.
var ErrNoFiles = errors.New("tui: no files to review")
