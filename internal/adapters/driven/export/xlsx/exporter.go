// Package xlsx exports stored scans to an Excel workbook.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.RecordExporter = (*Exporter)(nil)

// SheetName is the worksheet records are written to.
const SheetName = "Patients"

// leading columns written before the record fields.
var leading = []string{"scan_id", "source", "created_at"}

// Exporter writes one row per scan with a bold header.
type Exporter struct{}

// NewExporter creates a new XLSX exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Headers returns the header row in column order.
func Headers() []string {
	headers := make([]string, 0, len(leading)+len(domain.Fields))
	headers = append(headers, leading...)
	for _, f := range domain.Fields {
		headers = append(headers, f.String())
	}
	return headers
}

// Export writes scans to path, replacing any existing file.
func (e *Exporter) Export(ctx context.Context, path string, scans []domain.Scan) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := Headers()
	for col, header := range headers {
		if err := setCell(f, col+1, 1, header); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	for i := range scans {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeScan(f, i+2, &scans[i]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeScan(f *excelize.File, row int, scan *domain.Scan) error {
	values := []any{scan.ID, scan.Source, scan.CreatedAt.UTC().Format(time.RFC3339)}
	for _, field := range domain.Fields {
		switch {
		case field == domain.FieldAge && scan.Record.Age != nil:
			values = append(values, *scan.Record.Age)
		default:
			v, ok := scan.Record.Value(field)
			if !ok {
				values = append(values, nil)
				continue
			}
			values = append(values, v)
		}
	}

	for col, value := range values {
		if value == nil {
			continue
		}
		if err := setCell(f, col+1, row, value); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
