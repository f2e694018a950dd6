package xlsx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestHeaders(t *testing.T) {
	headers := Headers()

	require.Len(t, headers, 3+len(domain.Fields))
	assert.Equal(t, []string{"scan_id", "source", "created_at", "name", "age"}, headers[:5])
	assert.Equal(t, "visit_date", headers[len(headers)-1])
}

func TestExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.xlsx")
	age := 45
	scans := []domain.Scan{
		{
			ID:     "scan-1",
			Source: "/scans/a.png",
			Record: domain.PatientRecord{
				Name:      strPtr("John Harvard"),
				Age:       &age,
				Diagnosis: strPtr("Tooth fracture"),
				VisitDate: strPtr("2025-01-29"),
			},
			CreatedAt: time.Date(2025, 1, 29, 9, 30, 0, 0, time.UTC),
		},
		{ID: "scan-2", Source: "stdin", Record: domain.PatientRecord{Email: strPtr("jane@example.com")}},
	}

	require.NoError(t, NewExporter().Export(context.Background(), path, scans))

	rows := readSheet(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers(), rows[0])

	first := rows[1]
	assert.Equal(t, "scan-1", first[0])
	assert.Equal(t, "/scans/a.png", first[1])
	assert.Equal(t, "2025-01-29T09:30:00Z", first[2])
	assert.Equal(t, "John Harvard", first[3])
	assert.Equal(t, "45", first[4])
	assert.Equal(t, "Tooth fracture", first[3+5])
	assert.Equal(t, "2025-01-29", first[len(first)-1])

	second := rows[2]
	assert.Equal(t, "scan-2", second[0])
	assert.Contains(t, second, "jane@example.com")
}

func TestExporter_Export_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, NewExporter().Export(context.Background(), path, nil))

	rows := readSheet(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers(), rows[0])
}

func TestExporter_Export_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.xlsx")
	exporter := NewExporter()
	ctx := context.Background()

	require.NoError(t, exporter.Export(ctx, path, []domain.Scan{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, exporter.Export(ctx, path, []domain.Scan{{ID: "c"}}))

	rows := readSheet(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[1][0])
}

func TestExporter_Export_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.xlsx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExporter().Export(ctx, path, []domain.Scan{{ID: "a"}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestExporter_Export_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "patients.xlsx")

	err := NewExporter().Export(context.Background(), path, nil)

	assert.Error(t, err)
}
