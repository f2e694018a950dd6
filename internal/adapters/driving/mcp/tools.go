package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// ExtractInput is the input schema for the extract_patient tool.
type ExtractInput struct {
	Text string `json:"text" jsonschema:"OCR text of a patient intake form"`
	Save bool   `json:"save,omitempty" jsonschema:"store the extracted record (default false)"`
}

// ProcessInput is the input schema for the process_scan tool.
type ProcessInput struct {
	Path string `json:"path" jsonschema:"path to a scanned form image or .txt file"`
	Save bool   `json:"save,omitempty" jsonschema:"store the extracted record (default false)"`
}

// GetRecordInput is the input schema for the get_record tool.
type GetRecordInput struct {
	ID string `json:"id" jsonschema:"scan ID returned by a previous save"`
}

// RecordOutput is the output schema shared by all tools.
type RecordOutput struct {
	ScanID string               `json:"scan_id,omitempty"`
	Source string               `json:"source,omitempty"`
	Record domain.PatientRecord `json:"record"`
	Found  []string             `json:"found"`
	Saved  bool                 `json:"saved"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_patient",
		Description: "Extract a structured patient record from OCR text of an intake form",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_scan",
		Description: "Run OCR on a scanned intake form and extract a patient record",
	}, s.handleProcess)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_record",
		Description: "Fetch a saved patient record by scan ID",
	}, s.handleGetRecord)
}

// handleExtract handles the extract_patient tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, RecordOutput{}, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	if !input.Save {
		record, err := s.ports.Intake.Parse(input.Text)
		if err != nil {
			return nil, RecordOutput{}, err
		}
		return nil, recordOutput(nil, record, false), nil
	}

	scan, err := s.ports.Intake.Ingest(ctx, "mcp", input.Text, true)
	if err != nil {
		return nil, RecordOutput{}, err
	}
	return nil, recordOutput(scan, &scan.Record, true), nil
}

// handleProcess handles the process_scan tool invocation.
func (s *Server) handleProcess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	scan, err := s.ports.Intake.Process(ctx, input.Path, input.Save)
	if err != nil {
		return nil, RecordOutput{}, err
	}
	return nil, recordOutput(scan, &scan.Record, input.Save), nil
}

// handleGetRecord handles the get_record tool invocation.
func (s *Server) handleGetRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	if s.ports.Records == nil {
		return nil, RecordOutput{}, fmt.Errorf("%w: %s", domain.ErrNotFound, input.ID)
	}

	scan, err := s.ports.Records.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, RecordOutput{}, fmt.Errorf("%w: %s", domain.ErrNotFound, input.ID)
		}
		return nil, RecordOutput{}, err
	}
	return nil, recordOutput(scan, &scan.Record, true), nil
}

func recordOutput(scan *domain.Scan, record *domain.PatientRecord, saved bool) RecordOutput {
	out := RecordOutput{
		Record: *record,
		Found:  []string{},
		Saved:  saved,
	}
	if scan != nil {
		out.ScanID = scan.ID
		out.Source = scan.Source
	}
	for _, f := range record.Present() {
		out.Found = append(out.Found, f.String())
	}
	return out
}
