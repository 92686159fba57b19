// Package mcpserver exposes resume analysis as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"errors"

	"github.com/drishanroy/resume-analysis-app/internal/types"
)

var (
	// ErrMissingAnalyzer is returned when the analyzer is not provided.
	ErrMissingAnalyzer = errors.New("mcp: analyzer is required")
	// ErrMissingDocuments is returned when the document reader is not provided.
	ErrMissingDocuments = errors.New("mcp: document reader is required")
)

// Analyzer runs one analysis. *analysis.Service implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalyzeRequest, data []byte) (*types.AnalysisResult, error)
}

// DocumentReader fetches document bytes by path or URI. *storage.Store implements it.
type DocumentReader interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

// Ports aggregates the services the MCP server depends on.
type Ports struct {
	Analyzer  Analyzer
	Documents DocumentReader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analyzer == nil {
		return ErrMissingAnalyzer
	}
	if p.Documents == nil {
		return ErrMissingDocuments
	}
	return nil
}
