package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/drishanroy/resume-analysis-app/internal/observability"
	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Output formats.
const (
	formatJSON = "json"
	formatText = "text"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|s3://bucket/key>...",
	Short: "Analyze one or more resumes",
	Long: `Analyze PDF, DOCX or TXT resumes and print the scores, highlights, improvements
and job description comparison. Several documents are analyzed concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	targetRole  string
	jdText      string
	jdFile      string
	jdURL       string
	format      string
	concurrency int
)

func init() {
	analyzeCmd.Flags().StringVarP(&targetRole, "role", "r", "", "target role used in the summary")
	analyzeCmd.Flags().StringVar(&jdText, "jd", "", "job description text")
	analyzeCmd.Flags().StringVar(&jdFile, "jd-file", "", "path to a file containing the job description")
	analyzeCmd.Flags().StringVar(&jdURL, "jd-url", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or text")
	analyzeCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "maximum documents analyzed at once")

	rootCmd.AddCommand(analyzeCmd)
}

type documentReader interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

type analyzer interface {
	Analyze(ctx context.Context, req types.AnalyzeRequest, data []byte) (*types.AnalysisResult, error)
}

// fileResult is the outcome for one input document.
type fileResult struct {
	File   string                `json:"file"`
	Result *types.AnalysisResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unsupported format %q: expected json or text", format)
	}
	jd, err := jobDescription(jdText, jdFile)
	if err != nil {
		return err
	}
	if jdURL != "" {
		v.Set("fetch.enabled", true)
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	base := types.AnalyzeRequest{TargetRole: targetRole, JobDescription: jd, JobURL: jdURL}
	results := analyzeDocuments(ctx, a.documents, a.service, base, args, concurrency)

	for _, r := range results {
		if r.Error != "" {
			a.logger.Warn("analysis failed", zap.String("file", r.File), zap.String("error", r.Error))
		}
	}

	if err := writeResults(cmd.OutOrStdout(), results, format); err != nil {
		return err
	}
	if n := failedCount(results); n > 0 {
		return fmt.Errorf("%d of %d documents failed", n, len(results))
	}
	return nil
}

// jobDescription returns the inline text or the content of path. At most one
// may be set.
func jobDescription(text, path string) (string, error) {
	if text != "" && path != "" {
		return "", errors.New("--jd and --jd-file are mutually exclusive; provide only one")
	}
	if path == "" {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

// analyzeDocuments analyzes every input with at most limit running at once.
// Results keep the input order and a failure never cancels the others.
func analyzeDocuments(ctx context.Context, docs documentReader, an analyzer, base types.AnalyzeRequest, inputs []string, limit int) []fileResult {
	results := make([]fileResult, len(inputs))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, input := range inputs {
		g.Go(func() error {
			results[i] = analyzeDocument(ctx, docs, an, base, input)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func analyzeDocument(ctx context.Context, docs documentReader, an analyzer, base types.AnalyzeRequest, input string) fileResult {
	res := fileResult{File: input}

	loc, err := storage.ParseURI(input)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	data, err := docs.Read(ctx, input)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	req := base
	req.Filename = loc.Filename()
	result, err := an.Analyze(ctx, req, data)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Result = result
	return res
}

// writeResults prints a single result as the bare AnalysisResult and a batch
// as an array of per-file entries.
func writeResults(w io.Writer, results []fileResult, format string) error {
	if format == formatText {
		p := observability.NewPrinter(w)
		for _, r := range results {
			if r.Error != "" {
				fmt.Fprintf(w, "❌ %s: %s\n\n", r.File, r.Error)
				continue
			}
			p.PrintAnalysis(r.File, r.Result)
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 && results[0].Error == "" {
		return enc.Encode(results[0].Result)
	}
	return enc.Encode(results)
}

func failedCount(results []fileResult) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}
