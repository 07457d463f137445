package mcp

import (
	"context"
	"fmt"
	"sync"

	"epicurve/internal/config"
	"epicurve/internal/ingest"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the curve analysis of the configured folders as MCP tools.
type Server struct {
	cfg      *config.AppConfig
	analysis *config.AnalysisConfig
	version  string

	mu       sync.Mutex
	datasets map[string]*ingest.Dataset
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, analysis *config.AnalysisConfig, version string) *Server {
	return &Server{
		cfg:      cfg,
		analysis: analysis,
		version:  version,
		datasets: make(map[string]*ingest.Dataset),
	}
}

// Serve runs the tool server over stdio until the client disconnects or ctx
// is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	server := sdk.NewServer(&sdk.Implementation{Name: "epicurve", Version: s.version}, nil)
	s.registerTools(server)

	log.Info().Str("version", s.version).Int("folders", len(s.analysis.Folders)).Msg("Serving tools over stdio")
	return server.Run(ctx, &sdk.StdioTransport{})
}

// dataset returns the loaded dataset of a folder, reading it on first use.
func (s *Server) dataset(folder string) (config.Folder, *ingest.Dataset, error) {
	f, ok := s.analysis.Folder(folder)
	if !ok {
		return config.Folder{}, nil, fmt.Errorf("unknown folder %q", folder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ds, ok := s.datasets[folder]; ok {
		return f, ds, nil
	}
	ds, err := ingest.LoadCSV(s.cfg.DatasetPath(f.Dataset), f.CSVOptions())
	if err != nil {
		return f, nil, err
	}
	s.datasets[folder] = ds
	return f, ds, nil
}
