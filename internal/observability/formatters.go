// Package observability renders analysis results for the CLI text output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/drishanroy/resume-analysis-app/internal/scoring"
	"github.com/drishanroy/resume-analysis-app/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > width {
			lines = append(lines, string(line))
			line = line[:0]
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the full report for one analyzed document.
func (p *Printer) PrintAnalysis(filename string, result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintScores(filename, result)
	p.PrintHighlights(result.Highlights)
	p.PrintImprovements(result.Improvements)
	p.PrintJDComparison(result.JDComparison)
	p.PrintSummary(result.TwoLineSummary)
}

// PrintScores outputs the overall score and each sub-score against its maximum.
func (p *Printer) PrintScores(filename string, result *types.AnalysisResult) {
	s := result.Subscores
	rows := []struct {
		name  string
		score float64
		max   float64
	}{
		{"Impact bullets", s.ImpactBullets, scoring.MaxBulletScore},
		{"Skill alignment", s.SkillAlignment, scoring.MaxSkillAlignment},
		{"Clarity & tone", s.ClarityTone, scoring.MaxClarity},
		{"Structure & ATS", s.StructureATS, scoring.MaxStructureATS},
		{"Projects", s.Projects, scoring.MaxProjects},
		{"Hygiene", s.Hygiene, scoring.MaxHygiene},
	}

	var sb strings.Builder
	if filename != "" {
		sb.WriteString(fmt.Sprintf("File:     %s\n", filename))
	}
	sb.WriteString(fmt.Sprintf("Overall:  %.1f / 10\n\n", result.OverallScore))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-18s %4.2f / %.1f\n", r.name, r.score, r.max))
	}

	p.printBox("RESUME SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHighlights outputs the detected skills and a sample of analyzed bullets.
func (p *Printer) PrintHighlights(h types.Highlights) {
	var sb strings.Builder
	if len(h.SkillsDetected) == 0 {
		sb.WriteString("No skills detected.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(h.SkillsDetected)))
		for _, line := range wrap(strings.Join(h.SkillsDetected, ", "), boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	if len(h.BulletsAnalyzed) > 0 {
		sb.WriteString("\nBullets analyzed:\n")
		count := min(len(h.BulletsAnalyzed), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(h.BulletsAnalyzed[i], 50)))
		}
		if len(h.BulletsAnalyzed) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(h.BulletsAnalyzed)-maxItemsToShow))
		}
	}

	p.printBox("HIGHLIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImprovements outputs each tip with its example fix.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintImprovements(improvements []types.Improvement) {
	if len(improvements) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO IMPROVEMENTS SUGGESTED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, imp := range improvements {
		sb.WriteString(fmt.Sprintf("⚠ [%s] ", imp.Section))
		issue := wrap(imp.Issue, boxWidth-8-len([]rune(imp.Section)))
		for j, line := range issue {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(line + "\n")
		}
		if len(issue) == 0 {
			sb.WriteString("\n")
		}
		for _, line := range wrap("e.g. "+imp.FixExample, boxWidth-8) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if i < len(improvements)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("IMPROVEMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJDComparison outputs coverage and skill gaps. Nothing is printed
// when no job description was supplied.
func (p *Printer) PrintJDComparison(c types.JDComparison) {
	if !c.HasJobDescription() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Coverage: %d%%\n", *c.CoveragePct))

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", title))
		for _, line := range wrap(strings.Join(items, ", "), boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}
	writeList("Matched", c.MatchedKeywords)
	writeList("Missing", c.MissingSkills)

	if len(c.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range c.Recommendations {
			for j, line := range wrap(rec, boxWidth-8) {
				prefix := "  • "
				if j > 0 {
					prefix = "    "
				}
				sb.WriteString(prefix + line + "\n")
			}
		}
	}

	p.printBox("JOB DESCRIPTION MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the two-line summary wrapped to the box width.
func (p *Printer) PrintSummary(summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}
	var lines []string
	for _, sentence := range strings.Split(summary, "\n") {
		lines = append(lines, wrap(sentence, boxWidth-4)...)
	}
	p.printBox("SUMMARY", strings.Join(lines, "\n"))
}
