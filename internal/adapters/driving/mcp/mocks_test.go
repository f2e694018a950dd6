package mcp

import (
	"context"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// mockIntakeService is a mock implementation of driving.IntakeService.
type mockIntakeService struct {
	record    *domain.PatientRecord
	scan      *domain.Scan
	err       error
	savedText string
	processed string
}

func (m *mockIntakeService) Supports(_ string) bool { return true }

func (m *mockIntakeService) Recognise(_ context.Context, _ string) (string, error) {
	return "", m.err
}

func (m *mockIntakeService) Parse(_ string) (*domain.PatientRecord, error) {
	return m.record, m.err
}

func (m *mockIntakeService) Ingest(_ context.Context, _ string, text string, _ bool) (*domain.Scan, error) {
	m.savedText = text
	return m.scan, m.err
}

func (m *mockIntakeService) Save(_ context.Context, _ *domain.Scan) error {
	return m.err
}

func (m *mockIntakeService) Process(_ context.Context, path string, _ bool) (*domain.Scan, error) {
	m.processed = path
	return m.scan, m.err
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	scans []domain.Scan
	err   error
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

func (m *mockRecordService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockRecordService) Export(_ context.Context, _ string) (int, error) {
	return len(m.scans), m.err
}

func strPtr(s string) *string { return &s }
