// Package tesseract recognises text in scanned images with the tesseract CLI.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
	"github.com/custodia-labs/dentract/internal/logger"
)

// Ensure Recogniser implements the interface.
var _ driven.TextRecogniser = (*Recogniser)(nil)

// Extensions lists the image types passed to tesseract.
var Extensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif", ".webp", ".pnm"}

// Config holds recogniser settings.
type Config struct {
	// Command is the tesseract executable name or path.
	Command string
	// RequestsPerSecond is the sustained invocation rate.
	RequestsPerSecond float64
	// BurstSize is the number of invocations allowed back to back.
	BurstSize int
}

// runFunc executes a command and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Recogniser shells out to tesseract. Invocations are throttled by a token
// bucket shared by all callers.
type Recogniser struct {
	command string
	limiter *rate.Limiter
	run     runFunc
}

// New creates a recogniser. Zero rate or burst fall back to 2.
func New(cfg Config) *Recogniser {
	if cfg.Command == "" {
		cfg.Command = "tesseract"
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 2
	}

	return &Recogniser{
		command: cfg.Command,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		run:     execRun,
	}
}

// Supports reports whether path has an image extension.
func (r *Recogniser) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Available reports whether the tesseract executable can be found.
func (r *Recogniser) Available() bool {
	_, err := exec.LookPath(r.command)
	return err == nil
}

// Recognise runs tesseract on the image and returns its stdout.
func (r *Recogniser) Recognise(ctx context.Context, path string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}

	logger.Debug("running %s on %s", r.command, path)
	out, err := r.run(ctx, r.command, path, "stdout")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s not found in PATH", domain.ErrOCRUnavailable, r.command)
		}
		return "", err
	}
	return string(out), nil
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
