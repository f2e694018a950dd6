package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

func TestRecordsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range recordsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"list", "show", "export", "delete"}, names)
}

func TestRecordsList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cleanup := setupTestServices(nil, &mockRecordService{}, nil)
		defer cleanup()

		output, err := execute(t, "", "records", "list")

		require.NoError(t, err)
		assert.Contains(t, output, "No records saved.")
	})

	t.Run("lists scans", func(t *testing.T) {
		unnamed := *testScan("scan-2", "b.png")
		unnamed.Record.Name = nil
		records := &mockRecordService{scans: []domain.Scan{*testScan("scan-1", "a.png"), unnamed}}
		cleanup := setupTestServices(nil, records, nil)
		defer cleanup()

		output, err := execute(t, "", "records", "list")

		require.NoError(t, err)
		assert.Contains(t, output, "scan-1")
		assert.Contains(t, output, "Jane Roe")
		assert.Contains(t, output, "a.png")
		assert.Contains(t, output, "scan-2")
		assert.Contains(t, output, notFound)
		assert.Contains(t, output, "Total: 2 records")
	})

	t.Run("json", func(t *testing.T) {
		records := &mockRecordService{scans: []domain.Scan{*testScan("scan-1", "a.png")}}
		cleanup := setupTestServices(nil, records, nil)
		defer cleanup()

		output, err := execute(t, "", "records", "list", "--json")

		require.NoError(t, err)
		var scans []domain.Scan
		require.NoError(t, json.Unmarshal([]byte(output), &scans))
		require.Len(t, scans, 1)
		assert.Equal(t, "scan-1", scans[0].ID)
	})

	t.Run("no service", func(t *testing.T) {
		cleanup := setupTestServices(nil, nil, nil)
		defer cleanup()

		_, err := execute(t, "", "records", "list")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "record service not configured")
	})
}

func TestRecordsShow(t *testing.T) {
	records := &mockRecordService{scans: []domain.Scan{*testScan("scan-1", "a.png")}}
	cleanup := setupTestServices(nil, records, nil)
	defer cleanup()

	output, err := execute(t, "", "records", "show", "scan-1")

	require.NoError(t, err)
	assert.Contains(t, output, "Scan scan-1")
	assert.Contains(t, output, "source:")
	assert.Contains(t, output, "2024-03-09 14:30:00")
	assert.Contains(t, output, "Jane Roe")
}

func TestRecordsShow_NotFound(t *testing.T) {
	cleanup := setupTestServices(nil, &mockRecordService{}, nil)
	defer cleanup()

	_, err := execute(t, "", "records", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordsShow_RequiresID(t *testing.T) {
	cleanup := setupTestServices(nil, &mockRecordService{}, nil)
	defer cleanup()

	_, err := execute(t, "", "records", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRecordsExport(t *testing.T) {
	records := &mockRecordService{scans: []domain.Scan{*testScan("scan-1", "a.png")}}
	cleanup := setupTestServices(nil, records, nil)
	defer cleanup()

	output, err := execute(t, "", "records", "export", "patients.xlsx")

	require.NoError(t, err)
	assert.Equal(t, "patients.xlsx", records.exportPath)
	assert.Contains(t, output, "Exported 1 records to patients.xlsx")
}

func TestRecordsExport_Error(t *testing.T) {
	records := &mockRecordService{err: errors.New("read-only")}
	cleanup := setupTestServices(nil, records, nil)
	defer cleanup()

	_, err := execute(t, "", "records", "export", "patients.xlsx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to export records")
}

func TestRecordsDelete(t *testing.T) {
	records := &mockRecordService{}
	cleanup := setupTestServices(nil, records, nil)
	defer cleanup()

	output, err := execute(t, "", "records", "delete", "scan-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"scan-1"}, records.deleted)
	assert.Contains(t, output, "Deleted record scan-1")
}
