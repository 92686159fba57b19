package mcpserver

import (
	"context"
	"strings"
	"time"

	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// AnalyzeInput is the input schema for the analyze_resume tool.
type AnalyzeInput struct {
	Path           string `json:"path" jsonschema:"path or s3:// URI of a PDF, DOCX or TXT resume"`
	TargetRole     string `json:"target_role,omitempty" jsonschema:"role the resume targets, used in the summary"`
	JobDescription string `json:"job_description,omitempty" jsonschema:"job description text to compare skills against"`
	JobURL         string `json:"job_url,omitempty" jsonschema:"job posting URL, fetched when job_description is empty"`
}

// HealthInput is the empty input of the health tool.
type HealthInput struct{}

// HealthOutput is the output schema for the health tool.
type HealthOutput struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_resume",
		Description: "Score a resume on a 0-10 rubric and suggest improvements, optionally against a job description",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health",
		Description: "Report server status and version",
	}, s.handleHealth)
}

func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, types.AnalysisResult, error) {
	start := time.Now()
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, types.AnalysisResult{}, &types.ValidationError{Field: "path", Message: "is required"}
	}
	loc, err := storage.ParseURI(path)
	if err != nil {
		return nil, types.AnalysisResult{}, err
	}

	data, err := s.ports.Documents.Read(ctx, path)
	if err != nil {
		return nil, types.AnalysisResult{}, err
	}

	req := types.AnalyzeRequest{
		Filename:       loc.Filename(),
		TargetRole:     strings.TrimSpace(input.TargetRole),
		JobDescription: input.JobDescription,
		JobURL:         strings.TrimSpace(input.JobURL),
	}
	result, err := s.ports.Analyzer.Analyze(ctx, req, data)
	if err != nil {
		return nil, types.AnalysisResult{}, err
	}

	s.logger.Info("analyze_resume completed",
		zap.String("filename", req.Filename),
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil, *result, nil
}

func (s *Server) handleHealth(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, HealthOutput, error) {
	return nil, HealthOutput{OK: true, Version: Version}, nil
}
