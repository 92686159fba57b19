package analysis

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/drishanroy/resume-analysis-app/internal/ontology"
	"github.com/drishanroy/resume-analysis-app/internal/schemas"
	"github.com/drishanroy/resume-analysis-app/internal/scoring"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	schemafiles "github.com/drishanroy/resume-analysis-app/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubGrade struct {
	grade float64
	err   error
}

func (s stubGrade) Grade(string) (float64, error) { return s.grade, s.err }

type stubFuzzy map[string]int

func (s stubFuzzy) PartialRatio(needle, _ string) int { return s[needle] }

func testOntology() *ontology.Ontology {
	return ontology.New(ontology.Document{
		Skills: map[string][]string{
			"languages": {"Python", "SQL"},
			"data":      {"pandas", "Airflow"},
			"bi":        {"Tableau", "PowerBI"},
			"cloud":     {"Docker"},
		},
		ActionVerbs: []string{"built", "led"},
	})
}

func newTestEngine(t *testing.T, fuzzy stubFuzzy) *Engine {
	t.Helper()
	e, err := NewEngine(testOntology(), WithGradeLevel(stubGrade{grade: 11}), WithFuzzyMatcher(fuzzy))
	require.NoError(t, err)
	return e
}

const sampleResume = `Jane Doe
jane@example.com | +1 5551234567
Experience
- Built a dashboard reducing load time by 40%
- Led migration of Python services to Docker
- Wrote onboarding docs for the team
Projects
Resume Analyzer: goal was faster feedback; stack Go and PostgreSQL; cut review time 50%
Skills
Python, SQL, Docker, Tableau, pandas, Airflow`

func TestNewEngine_RequiresOntology(t *testing.T) {
	_, err := NewEngine(nil)
	assert.ErrorIs(t, err, ErrNoOntology)
}

func TestEngine_SampleResume(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{})
	jd := "We need Python, Airflow and Kubernetes; PowerBI a plus"

	result := e.Analyze(sampleResume, "Data Analyst", jd)

	assert.Equal(t, []string{"Airflow", "Docker", "Python", "SQL", "Tableau", "pandas"}, result.Highlights.SkillsDetected)
	assert.Equal(t, []string{
		"Built a dashboard reducing load time by 40%",
		"Led migration of Python services to Docker",
		"Wrote onboarding docs for the team",
		"Resume Analyzer: goal was faster feedback; stack Go and PostgreSQL; cut review time 50%",
	}, result.Highlights.BulletsAnalyzed)

	assert.Equal(t, 3.0, result.Subscores.ImpactBullets)
	assert.Equal(t, 1.2, result.Subscores.SkillAlignment)
	assert.InDelta(t, 1.925, result.Subscores.ClarityTone, 0.006)
	assert.Equal(t, 1.2, result.Subscores.StructureATS)
	assert.Equal(t, 1.0, result.Subscores.Projects)
	assert.Equal(t, 0.3, result.Subscores.Hygiene)
	assert.InDelta(t, 8.625, result.OverallScore, 0.006)

	require.Len(t, result.Improvements, 2)
	assert.Equal(t, types.Improvement{
		Section:    SectionExperienceProjects,
		Issue:      "Bullet lacks measurable result",
		FixExample: "Led ... resulting in {metric} (e.g., +23%, −120ms, 2× throughput).",
	}, result.Improvements[0])
	assert.Equal(t, SectionStructureATS, result.Improvements[1].Section)
	assert.Equal(t, scoring.ReasonFewBullets, result.Improvements[1].Issue)

	assert.Equal(t, "Early‑career Data Analyst candidate with hands‑on experience in Airflow, Docker, Python, SQL. "+
		"Delivers measurable outcomes through clear problem framing, rapid experimentation, and clean deliverables.",
		result.TwoLineSummary)

	require.NotNil(t, result.JDComparison.CoveragePct)
	assert.Equal(t, 67, *result.JDComparison.CoveragePct)
	assert.Equal(t, []string{"Airflow", "Python"}, result.JDComparison.MatchedKeywords)
	assert.Equal(t, []string{"powerbi"}, result.JDComparison.MissingSkills)
	assert.Equal(t, []string{"Add a bullet showing powerbi in context of a project/result."}, result.JDComparison.Recommendations)
}

func TestEngine_BuiltBulletScenario(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{})

	result := e.Analyze("Experience\n- Built a dashboard reducing load time by 40%", "", "")

	assert.Equal(t, []string{"Built a dashboard reducing load time by 40%"}, result.Highlights.BulletsAnalyzed)
	// Verb (0.8) and metric (1.2) hits alone reach the 3.0 cap after scaling.
	assert.Equal(t, 3.0, result.Subscores.ImpactBullets)
}

func TestEngine_EmptyDocument(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{})

	result := e.Analyze("", "", "")

	assert.Equal(t, []string{}, result.Highlights.BulletsAnalyzed)
	assert.Equal(t, []string{}, result.Highlights.SkillsDetected)
	assert.Equal(t, 0.0, result.Subscores.ImpactBullets)
	assert.LessOrEqual(t, result.Subscores.Hygiene, 0.3)
	assert.Nil(t, result.JDComparison.CoveragePct)
	assert.Empty(t, result.JDComparison.MissingSkills)
	assert.Empty(t, result.JDComparison.MatchedKeywords)
	assert.Empty(t, result.JDComparison.Recommendations)

	sections := make([]string, 0, len(result.Improvements))
	for _, tip := range result.Improvements {
		sections = append(sections, tip.Section)
	}
	assert.Equal(t, []string{SectionSkills, SectionProjects, SectionStructureATS}, sections)
	assert.Contains(t, result.TwoLineSummary, "Early‑career technology candidate")
	assert.Contains(t, result.TwoLineSummary, "impactful projects")
}

func TestEngine_FuzzyPowerBI(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{"powerbi": 95})

	result := e.Analyze("Dashboards built in Power BI", "", "")

	assert.Contains(t, result.Highlights.SkillsDetected, "PowerBI")
}

func TestEngine_JDDockerAirflow(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{})

	result := e.Analyze("Shipped services on Docker", "", "Requirements: docker airflow")

	require.NotNil(t, result.JDComparison.CoveragePct)
	assert.Equal(t, []string{"Docker"}, result.JDComparison.MatchedKeywords)
	assert.Contains(t, result.JDComparison.MissingSkills, "airflow")
	assert.Equal(t, 50, *result.JDComparison.CoveragePct)
}

func TestEngine_LongDocumentATS(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{})
	text := "Skills\n" + strings.Repeat("- item\n", 6)
	text += strings.Repeat("x", 20000-len(text))

	result := e.Analyze(text, "", "")

	assert.Equal(t, 1.1, result.Subscores.StructureATS)
	var atsTips []types.Improvement
	for _, tip := range result.Improvements {
		if tip.Section == SectionStructureATS {
			atsTips = append(atsTips, tip)
		}
	}
	require.Len(t, atsTips, 1)
	assert.Equal(t, scoring.ReasonTooLong, atsTips[0].Issue)
}

func TestEngine_ReadabilityFailureFallsBack(t *testing.T) {
	e, err := NewEngine(testOntology(), WithGradeLevel(stubGrade{err: errors.New("no oracle")}), WithFuzzyMatcher(stubFuzzy{}))
	require.NoError(t, err)

	result := e.Analyze("", "", "")

	// 0.4 fallback + 0.3 concision without bullets + 0.5 tense balance.
	assert.Equal(t, 1.2, result.Subscores.ClarityTone)
}

func TestEngine_Bounds(t *testing.T) {
	e, err := NewEngine(testOntology())
	require.NoError(t, err)

	inputs := []string{
		"",
		sampleResume,
		strings.Repeat(sampleResume+"\n", 40),
		"\t\t\t",
		strings.Repeat("- Built Python SQL Docker pipelines cutting cost 30%\n", 50),
	}
	for i, in := range inputs {
		r := e.Analyze(in, "", "python docker")
		s := r.Subscores
		assert.GreaterOrEqual(t, r.OverallScore, 0.0, "input %d", i)
		assert.LessOrEqual(t, r.OverallScore, 10.0, "input %d", i)
		assert.True(t, s.ImpactBullets >= 0 && s.ImpactBullets <= 3.0, "input %d", i)
		assert.True(t, s.SkillAlignment >= 0 && s.SkillAlignment <= 2.0, "input %d", i)
		assert.True(t, s.ClarityTone >= 0 && s.ClarityTone <= 2.0, "input %d", i)
		assert.True(t, s.StructureATS >= 0 && s.StructureATS <= 1.5, "input %d", i)
		assert.True(t, s.Projects >= 0 && s.Projects <= 1.0, "input %d", i)
		assert.True(t, s.Hygiene >= 0 && s.Hygiene <= 0.5, "input %d", i)
		assert.LessOrEqual(t, len(r.Highlights.BulletsAnalyzed), 10)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e, err := NewEngine(testOntology())
	require.NoError(t, err)

	first, err := json.Marshal(e.Analyze(sampleResume, "Engineer", "python docker sql"))
	require.NoError(t, err)
	second, err := json.Marshal(e.Analyze(sampleResume, "Engineer", "python docker sql"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestEngine_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := NewEngine(testOntology(), WithLogger(zap.New(core)), WithFuzzyMatcher(stubFuzzy{}))
	require.NoError(t, err)

	e.Analyze(sampleResume, "", "")

	entries := logs.FilterMessage("analysis complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(6), entries[0].ContextMap()["skills"])
}

func TestEngine_ResultMatchesSchema(t *testing.T) {
	e := newTestEngine(t, stubFuzzy{})

	tests := []struct {
		name string
		text string
		jd   string
	}{
		{name: "sample with jd", text: sampleResume, jd: "Python, Airflow and Kubernetes"},
		{name: "sample without jd", text: sampleResume},
		{name: "empty document", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(e.Analyze(tt.text, "", tt.jd))
			require.NoError(t, err)
			assert.NoError(t, schemas.ValidateBytes(schemafiles.AnalysisResult, raw))
		})
	}
}
