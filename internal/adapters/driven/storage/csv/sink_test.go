package csv

import (
	"context"
	stdcsv "encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := stdcsv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSink_Append_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.csv")
	sink := NewSink(path)
	ctx := context.Background()
	age := 45

	first := &domain.Scan{ID: "1", Record: domain.PatientRecord{
		Name:    strPtr("John Harvard"),
		Age:     &age,
		Address: strPtr("123 Main Street, Springfield"),
	}}
	second := &domain.Scan{ID: "2", Record: domain.PatientRecord{Name: strPtr("Jane Roe")}}

	require.NoError(t, sink.Append(ctx, first))
	require.NoError(t, sink.Append(ctx, second))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ColumnNames(), rows[0])
	assert.Equal(t, first.Record.Row(), rows[1])
	assert.Equal(t, "123 Main Street, Springfield", rows[1][6])
	assert.Equal(t, "Jane Roe", rows[2][0])
	assert.Equal(t, "", rows[2][1])
}

func TestSink_Append_ExistingFileKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.csv")
	existing := strings.Join(domain.ColumnNames(), ",") + "\nOld Patient,,,,,,,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

	require.NoError(t, NewSink(path).Append(context.Background(),
		&domain.Scan{ID: "1", Record: domain.PatientRecord{Name: strPtr("New Patient")}}))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "Old Patient", rows[1][0])
	assert.Equal(t, "New Patient", rows[2][0])
}

func TestSink_Append_EmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.NoError(t, NewSink(path).Append(context.Background(), &domain.Scan{ID: "1"}))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.ColumnNames(), rows[0])
}

func TestSink_Append_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "patients.csv")
	sink := NewSink(path)

	require.NoError(t, sink.Append(context.Background(), &domain.Scan{ID: "1"}))

	assert.FileExists(t, path)
	assert.Equal(t, path, sink.Path())
}

func TestSink_Append_Errors(t *testing.T) {
	dir := t.TempDir()

	assert.ErrorIs(t, NewSink(filepath.Join(dir, "x.csv")).Append(context.Background(), nil), domain.ErrInvalidInput)
	// A directory cannot be opened for writing.
	assert.Error(t, NewSink(dir).Append(context.Background(), &domain.Scan{ID: "1"}))
}

func TestSink_Append_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.csv")
	sink := NewSink(path)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.Append(context.Background(), &domain.Scan{ID: "x", Record: domain.PatientRecord{Name: strPtr("Jane")}})
		}()
	}
	wg.Wait()

	rows := readRows(t, path)
	assert.Len(t, rows, 26)
}
