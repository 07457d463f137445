package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// FolderInput selects a configured folder.
type FolderInput struct {
	Folder string `json:"folder" jsonschema:"name of the configured folder, e.g. us or world"`
}

// JurisdictionInput selects one jurisdiction of a folder.
type JurisdictionInput struct {
	Folder string `json:"folder" jsonschema:"name of the configured folder, e.g. us or world"`
	Key    string `json:"key" jsonschema:"normalized jurisdiction key as returned by list_jurisdictions"`
}

func (s *Server) registerTools(server *sdk.Server) {
	sdk.AddTool(server, &sdk.Tool{
		Name:        "list_jurisdictions",
		Description: "List the jurisdictions of a folder's dataset with their keys, display names and number of days.",
	}, func(ctx context.Context, _ *sdk.CallToolRequest, in FolderInput) (*sdk.CallToolResult, JurisdictionList, error) {
		out, err := s.handleListJurisdictions(in.Folder)
		return nil, out, err
	})

	sdk.AddTool(server, &sdk.Tool{
		Name:        "analyze_jurisdiction",
		Description: "Analyze one jurisdiction: split its curve into rise/fall slices and report each slice's peak day and 7-day average, plus the chart's y-axis maximum.",
	}, func(ctx context.Context, _ *sdk.CallToolRequest, in JurisdictionInput) (*sdk.CallToolResult, AnalysisResult, error) {
		out, err := s.handleAnalyzeJurisdiction(in.Folder, in.Key)
		return nil, out, err
	})
}
