package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for dentract resources.
	uriScheme = "dentract://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "records",
		Name:        "records",
		Description: "Summary of all saved patient records",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{scanId}",
		Name:        "record",
		Description: "A saved scan with its OCR text and extracted record",
		MIMEType:    "application/json",
	}, s.handleRecordResource)
}

// handleRecordsResource returns a summary of every saved scan.
func (s *Server) handleRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	scans, err := s.ports.Records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	type recordInfo struct {
		ID        string `json:"id"`
		Source    string `json:"source"`
		Name      string `json:"name"`
		VisitDate string `json:"visit_date"`
		CreatedAt string `json:"created_at"`
	}

	infos := make([]recordInfo, len(scans))
	for i := range scans {
		name, _ := scans[i].Record.Value(domain.FieldName)
		visit, _ := scans[i].Record.Value(domain.FieldVisitDate)
		infos[i] = recordInfo{
			ID:        scans[i].ID,
			Source:    scans[i].Source,
			Name:      name,
			VisitDate: visit,
			CreatedAt: scans[i].CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling records: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleRecordResource returns one saved scan in full.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractScanID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	scan, err := s.ports.Records.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	data, err := json.MarshalIndent(scan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling record: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractScanID extracts the scan ID from a URI like dentract://records/{scanId}.
func extractScanID(uri string) string {
	const prefix = uriScheme + "records/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
