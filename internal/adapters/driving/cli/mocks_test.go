package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driving"
	"github.com/custodia-labs/dentract/internal/watcher"
)

var (
	_ driving.IntakeService   = (*mockIntakeService)(nil)
	_ driving.RecordService   = (*mockRecordService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func testScan(id, source string) *domain.Scan {
	return &domain.Scan{
		ID:     id,
		Source: source,
		Text:   "Name: Jane Roe Age: 41",
		Record: domain.PatientRecord{
			Name: strPtr("Jane Roe"),
			Age:  intPtr(41),
		},
		CreatedAt: time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC),
	}
}

// mockIntakeService implements driving.IntakeService for testing.
type mockIntakeService struct {
	processErr map[string]error
	saveErr    error
	parseErr   error
	processed  []string
	saved      []bool
	parsedText string
}

func (m *mockIntakeService) Supports(path string) bool {
	return strings.HasSuffix(path, ".png") || strings.HasSuffix(path, ".txt")
}

func (m *mockIntakeService) Recognise(_ context.Context, _ string) (string, error) {
	return "Name: Jane Roe Age: 41", nil
}

func (m *mockIntakeService) Parse(text string) (*domain.PatientRecord, error) {
	m.parsedText = text
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return &testScan("", "").Record, nil
}

func (m *mockIntakeService) Ingest(_ context.Context, source, text string, save bool) (*domain.Scan, error) {
	m.parsedText = text
	m.saved = append(m.saved, save)
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	scan := testScan("scan-"+source, source)
	if save && m.saveErr != nil {
		return scan, m.saveErr
	}
	return scan, nil
}

func (m *mockIntakeService) Save(_ context.Context, _ *domain.Scan) error {
	return m.saveErr
}

func (m *mockIntakeService) Process(_ context.Context, path string, save bool) (*domain.Scan, error) {
	m.processed = append(m.processed, path)
	m.saved = append(m.saved, save)
	if err := m.processErr[path]; err != nil {
		return nil, err
	}
	scan := testScan("scan-"+path, path)
	if save && m.saveErr != nil {
		return scan, m.saveErr
	}
	return scan, nil
}

// mockRecordService implements driving.RecordService for testing.
type mockRecordService struct {
	scans      []domain.Scan
	deleted    []string
	exportPath string
	err        error
}

func (m *mockRecordService) List(_ context.Context) ([]domain.Scan, error) {
	return m.scans, m.err
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.Scan, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.scans {
		if m.scans[i].ID == id {
			return &m.scans[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRecordService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRecordService) Export(_ context.Context, path string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.exportPath = path
	return len(m.scans), nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.AppSettings
	set      map[string]string
	setErr   error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"extract.day_first", "storage.csv_path"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupTestServices installs mocks and resets flag variables, which cobra
// keeps between executions.
func setupTestServices(intake driving.IntakeService, records driving.RecordService,
	settings driving.SettingsService) func() {
	oldIntake, oldRecords, oldSettings := intakeService, recordService, settingsService
	oldBootstrap, oldTerminal, oldReview := bootstrap, stdinIsTerminal, runReviewUI
	oldClose := closeServices

	intakeService = intake
	recordService = records
	settingsService = settings
	bootstrap = nil
	stdinIsTerminal = func() bool { return false }

	resetFlags()

	return func() {
		intakeService, recordService, settingsService = oldIntake, oldRecords, oldSettings
		bootstrap, stdinIsTerminal, runReviewUI = oldBootstrap, oldTerminal, oldReview
		closeServices = oldClose
		resetFlags()
	}
}

func resetFlags() {
	extractSave, extractJSON, extractInteractive = false, false, false
	parseText, parseSave, parseJSON = "", false, false
	recordsJSON = false
	watchSave, watchExisting, watchSettle = false, false, watcher.DefaultSettle
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
