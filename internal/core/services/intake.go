package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
	"github.com/custodia-labs/dentract/internal/core/ports/driving"
	"github.com/custodia-labs/dentract/internal/logger"
)

// Ensure IntakeService implements the interface.
var _ driving.IntakeService = (*IntakeService)(nil)

// IntakeService runs the OCR, normalise, extract and save pipeline.
type IntakeService struct {
	normaliser  driven.TextNormaliser
	extractor   driven.FieldExtractor
	recognisers []driven.TextRecogniser
	sinks       []driven.RecordSink
	now         func() time.Time
}

// NewIntakeService creates a new intake service.
// Recognisers are tried in order; the first that supports a file wins.
func NewIntakeService(
	normaliser driven.TextNormaliser,
	extractor driven.FieldExtractor,
	recognisers []driven.TextRecogniser,
	sinks []driven.RecordSink,
) *IntakeService {
	return &IntakeService{
		normaliser:  normaliser,
		extractor:   extractor,
		recognisers: recognisers,
		sinks:       sinks,
		now:         time.Now,
	}
}

// Supports reports whether any recogniser can read the file.
func (s *IntakeService) Supports(path string) bool {
	return s.recogniserFor(path) != nil
}

// Recognise runs OCR on a file and returns its trimmed text.
func (s *IntakeService) Recognise(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: file name cannot be empty", domain.ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	recogniser := s.recogniserFor(path)
	if recogniser == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, path)
	}

	logger.Debug("recognising %s", path)
	text, err := recogniser.Recognise(ctx, path)
	if err != nil {
		return "", fmt.Errorf("recognising %s: %w", path, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrEmptyText, path)
	}
	logger.Debug("recognised %d bytes from %s", len(text), path)
	return text, nil
}

// Parse normalises text and extracts a record from it.
func (s *IntakeService) Parse(text string) (*domain.PatientRecord, error) {
	normalised := s.normaliser.Normalise(text)

	record, err := s.extractor.Extract(normalised)
	if err != nil {
		return nil, fmt.Errorf("extracting fields: %w", err)
	}

	logger.Debug("extracted fields: %v", record.Present())
	return &record, nil
}

// Ingest parses text that was recognised elsewhere and wraps it in a scan.
func (s *IntakeService) Ingest(ctx context.Context, source, text string, save bool) (*domain.Scan, error) {
	record, err := s.Parse(text)
	if err != nil {
		return nil, err
	}

	scan := &domain.Scan{
		ID:        uuid.New().String(),
		Source:    source,
		Text:      text,
		Record:    *record,
		CreatedAt: s.now().UTC(),
	}

	if save {
		if err := s.Save(ctx, scan); err != nil {
			return scan, err
		}
	}
	return scan, nil
}

// Process recognises and parses a file, saving the result when save is true.
func (s *IntakeService) Process(ctx context.Context, path string, save bool) (*domain.Scan, error) {
	logger.Section("Process " + path)

	text, err := s.Recognise(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.Ingest(ctx, path, text, save)
}

// Save appends a scan to every sink. Every sink is attempted; failures are
// returned together.
func (s *IntakeService) Save(ctx context.Context, scan *domain.Scan) error {
	if scan == nil {
		return domain.ErrInvalidInput
	}
	if len(s.sinks) == 0 {
		return fmt.Errorf("%w: no record sinks configured", domain.ErrNotImplemented)
	}

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, scan); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("saving scan %s: %w", scan.ID, errors.Join(errs...))
	}

	logger.Info("saved scan %s from %s", scan.ID, scan.Source)
	return nil
}

func (s *IntakeService) recogniserFor(path string) driven.TextRecogniser {
	for _, r := range s.recognisers {
		if r.Supports(path) {
			return r
		}
	}
	return nil
}
