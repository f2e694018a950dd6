package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dentract/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dentract/internal/core/domain"
)

// mockExporter records what it was asked to export.
type mockExporter struct {
	path  string
	scans []domain.Scan
	err   error
}

func (m *mockExporter) Export(_ context.Context, path string, scans []domain.Scan) error {
	m.path = path
	m.scans = scans
	return m.err
}

func seededStore(t *testing.T, ids ...string) *memory.ScanStore {
	t.Helper()
	store := memory.NewScanStore()
	for _, id := range ids {
		require.NoError(t, store.Append(context.Background(), &domain.Scan{ID: id, Source: id + ".png"}))
	}
	return store
}

func TestRecordService_List(t *testing.T) {
	svc := NewRecordService(seededStore(t, "a", "b"), nil)

	scans, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, "a", scans[0].ID)
}

func TestRecordService_Get(t *testing.T) {
	svc := NewRecordService(seededStore(t, "a"), nil)

	scan, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a.png", scan.Source)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordService_Delete(t *testing.T) {
	store := seededStore(t, "a")
	svc := NewRecordService(store, nil)

	require.NoError(t, svc.Delete(context.Background(), "a"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "a"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), " "), domain.ErrInvalidInput)
}

func TestRecordService_NoStore(t *testing.T) {
	svc := NewRecordService(nil, nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, svc.Delete(ctx, "a"), domain.ErrNotImplemented)
	_, err = svc.Export(ctx, "out.xlsx")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestRecordService_Export(t *testing.T) {
	exporter := &mockExporter{}
	svc := NewRecordService(seededStore(t, "a", "b", "c"), exporter)

	n, err := svc.Export(context.Background(), "out.xlsx")

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "out.xlsx", exporter.path)
	assert.Len(t, exporter.scans, 3)
}

func TestRecordService_Export_Errors(t *testing.T) {
	errWrite := errors.New("permission denied")
	svc := NewRecordService(seededStore(t, "a"), &mockExporter{err: errWrite})

	_, err := svc.Export(context.Background(), "out.xlsx")
	assert.ErrorIs(t, err, errWrite)

	_, err = svc.Export(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
