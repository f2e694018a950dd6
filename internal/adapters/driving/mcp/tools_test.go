package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("parses without saving", func(t *testing.T) {
		intake := &mockIntakeService{record: &domain.PatientRecord{
			Name:      strPtr("John Harvard"),
			VisitDate: strPtr("2025-01-29"),
		}}
		server, err := NewServer(&Ports{Intake: intake})
		require.NoError(t, err)

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Text: "Name: John Harvard"})

		require.NoError(t, err)
		assert.False(t, output.Saved)
		assert.Empty(t, output.ScanID)
		assert.Equal(t, []string{"name", "visit_date"}, output.Found)
		assert.Equal(t, "John Harvard", *output.Record.Name)
		assert.Empty(t, intake.savedText)
	})

	t.Run("saves when requested", func(t *testing.T) {
		intake := &mockIntakeService{scan: &domain.Scan{
			ID:     "scan-1",
			Source: "mcp",
			Record: domain.PatientRecord{Email: strPtr("jane@example.com")},
		}}
		server, err := NewServer(&Ports{Intake: intake})
		require.NoError(t, err)

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Text: "Email: jane@example.com", Save: true})

		require.NoError(t, err)
		assert.True(t, output.Saved)
		assert.Equal(t, "scan-1", output.ScanID)
		assert.Equal(t, "mcp", output.Source)
		assert.Equal(t, []string{"email"}, output.Found)
		assert.Equal(t, "Email: jane@example.com", intake.savedText)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{}})
		require.NoError(t, err)

		_, _, err = server.handleExtract(ctx, nil, ExtractInput{Text: "  "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed date is passed through", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{err: domain.ErrMalformedDate}})
		require.NoError(t, err)

		_, _, err = server.handleExtract(ctx, nil, ExtractInput{Text: "Visit Date: 31-02-2025"})

		assert.ErrorIs(t, err, domain.ErrMalformedDate)
	})

	t.Run("nothing found gives empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{record: &domain.PatientRecord{}}})
		require.NoError(t, err)

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Text: "illegible"})

		require.NoError(t, err)
		assert.NotNil(t, output.Found)
		assert.Empty(t, output.Found)
	})
}

func TestServer_handleProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("processes file", func(t *testing.T) {
		intake := &mockIntakeService{scan: &domain.Scan{ID: "scan-2", Source: "/scans/a.png"}}
		server, err := NewServer(&Ports{Intake: intake})
		require.NoError(t, err)

		_, output, err := server.handleProcess(ctx, nil, ProcessInput{Path: "/scans/a.png", Save: true})

		require.NoError(t, err)
		assert.Equal(t, "/scans/a.png", intake.processed)
		assert.Equal(t, "scan-2", output.ScanID)
		assert.True(t, output.Saved)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{err: domain.ErrOCRUnavailable}})
		require.NoError(t, err)

		_, _, err = server.handleProcess(ctx, nil, ProcessInput{Path: "a.png"})

		assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
	})
}

func TestServer_handleGetRecord(t *testing.T) {
	ctx := context.Background()
	records := &mockRecordService{scans: []domain.Scan{
		{ID: "scan-1", Source: "a.png", Record: domain.PatientRecord{Phone: strPtr("+1-555-789-1234")}},
	}}

	t.Run("returns saved record", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{}, Records: records})
		require.NoError(t, err)

		_, output, err := server.handleGetRecord(ctx, nil, GetRecordInput{ID: "scan-1"})

		require.NoError(t, err)
		assert.Equal(t, "scan-1", output.ScanID)
		assert.Equal(t, []string{"phone"}, output.Found)
	})

	t.Run("unknown ID", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{}, Records: records})
		require.NoError(t, err)

		_, _, err = server.handleGetRecord(ctx, nil, GetRecordInput{ID: "missing"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no record service", func(t *testing.T) {
		server, err := NewServer(&Ports{Intake: &mockIntakeService{}})
		require.NoError(t, err)

		_, _, err = server.handleGetRecord(ctx, nil, GetRecordInput{ID: "scan-1"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
