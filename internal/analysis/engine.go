// Package analysis turns resume text into a scored critique.
//
// The Engine is a pure function of its inputs and the ontology it was built
// with, and is safe for concurrent use. Service adds document decoding and
// job description fetching around it.
package analysis

import (
	"errors"
	"math"

	"github.com/drishanroy/resume-analysis-app/internal/ontology"
	"github.com/drishanroy/resume-analysis-app/internal/parsing"
	"github.com/drishanroy/resume-analysis-app/internal/scoring"
	"github.com/drishanroy/resume-analysis-app/internal/skills"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"go.uber.org/zap"
)

// maxBulletsShown is the number of bullets echoed back in highlights.
const maxBulletsShown = 10

// ErrNoOntology is returned when an engine is built without an ontology.
var ErrNoOntology = errors.New("analysis engine requires an ontology")

// Engine scores resume text against an immutable ontology.
type Engine struct {
	ontology *ontology.Ontology
	fuzzy    skills.FuzzyMatcher
	grader   scoring.GradeLevel
	logger   *zap.Logger
	matcher  *skills.Matcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithGradeLevel replaces the readability oracle.
func WithGradeLevel(g scoring.GradeLevel) Option {
	return func(e *Engine) { e.grader = g }
}

// WithFuzzyMatcher replaces the fuzzy substring oracle.
func WithFuzzyMatcher(f skills.FuzzyMatcher) Option {
	return func(e *Engine) { e.fuzzy = f }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine. Defaults are Flesch-Kincaid readability, a
// Levenshtein partial ratio and a no-op logger.
func NewEngine(ont *ontology.Ontology, opts ...Option) (*Engine, error) {
	if ont == nil {
		return nil, ErrNoOntology
	}
	e := &Engine{
		ontology: ont,
		fuzzy:    skills.Levenshtein{},
		grader:   scoring.FleschKincaid{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.matcher = skills.NewMatcher(ont, e.fuzzy)
	return e, nil
}

// Analyze scores text. targetRole and jobDescription are optional.
func (e *Engine) Analyze(text, targetRole, jobDescription string) *types.AnalysisResult {
	sections := parsing.DetectSections(text)
	detected := e.matcher.Detect(text)

	// Bullets come from experience and projects only.
	bullets := parsing.Bullets(sections.Get(parsing.SectionExperience) + "\n" + sections.Get(parsing.SectionProjects))
	bulletReport := scoring.ScoreBullets(bullets, e.ontology)

	atsScore, atsReasons := scoring.StructureATS(text)

	subscores := types.Subscores{
		ImpactBullets:  bounded(bulletReport.Score, scoring.MaxBulletScore),
		SkillAlignment: bounded(scoring.SkillAlignment(len(detected)), scoring.MaxSkillAlignment),
		ClarityTone:    bounded(scoring.Clarity(text, e.grader), scoring.MaxClarity),
		StructureATS:   bounded(atsScore, scoring.MaxStructureATS),
		Projects:       bounded(scoring.ProjectsEvidence(sections.Get(parsing.SectionProjects)), scoring.MaxProjects),
		Hygiene:        bounded(scoring.Hygiene(text), scoring.MaxHygiene),
	}

	result := &types.AnalysisResult{
		OverallScore: scoring.Round(subscores.Total(), 2),
		Subscores:    subscores,
		Highlights: types.Highlights{
			SkillsDetected:  detected,
			BulletsAnalyzed: firstN(bullets, maxBulletsShown),
		},
		Improvements:   Improvements(sections, bullets, atsReasons),
		TwoLineSummary: Summary(detected, targetRole),
		JDComparison:   CompareJD(jobDescription, detected),
	}

	e.logger.Debug("analysis complete",
		zap.Strings("sections", sections.Names()),
		zap.Int("skills", len(detected)),
		zap.Int("bullets", len(bullets)),
		zap.Strings("bullet_reasons", bulletReport.Reasons),
		zap.Float64("overall_score", result.OverallScore),
	)
	return result
}

// bounded clamps a sub-score into [0, hi] and rounds it to two decimals.
func bounded(x, hi float64) float64 {
	return scoring.Round(math.Max(0, math.Min(hi, x)), 2)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
