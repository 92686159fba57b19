package analysis

import (
	"testing"

	"github.com/drishanroy/resume-analysis-app/internal/parsing"
	"github.com/drishanroy/resume-analysis-app/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImprovements(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		bullets  []string
		reasons  []string
		sections []string
		fix      string
	}{
		{
			name:     "all good",
			text:     "Projects\nApp\nSkills\nGo Python SQL Docker Redis Kafka",
			bullets:  []string{"Cut latency 30%"},
			sections: []string{},
		},
		{
			name:     "unquantified bullet uses capitalized first word",
			text:     "Projects\nApp\nSkills\nGo Python SQL Docker Redis Kafka",
			bullets:  []string{"Cut latency 30%", "DEPLOYED the service"},
			sections: []string{SectionExperienceProjects},
			fix:      "Deployed ... resulting in {metric} (e.g., +23%, −120ms, 2× throughput).",
		},
		{
			name:     "only first three bullets are checked",
			text:     "Projects\nApp\nSkills\nGo Python SQL Docker Redis Kafka",
			bullets:  []string{"A 10%", "B 20%", "C 30%", "Wrote docs"},
			sections: []string{},
		},
		{
			name:     "thin skills and no projects",
			text:     "Skills\nGo Python",
			sections: []string{SectionSkills, SectionProjects},
		},
		{
			name:     "ats reasons joined",
			text:     "Projects\nApp\nSkills\nGo Python SQL Docker Redis Kafka",
			reasons:  []string{scoring.ReasonTabs, scoring.ReasonFewBullets},
			sections: []string{SectionStructureATS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := Improvements(parsing.DetectSections(tt.text), tt.bullets, tt.reasons)

			got := make([]string, 0, len(tips))
			for _, tip := range tips {
				got = append(got, tip.Section)
			}
			assert.Equal(t, tt.sections, got)

			if tt.fix != "" {
				require.NotEmpty(t, tips)
				assert.Equal(t, tt.fix, tips[0].FixExample)
			}
			if len(tt.reasons) > 0 {
				last := tips[len(tips)-1]
				assert.Equal(t, "Tabs/tables may hurt ATS parsing.; Too few bullet points detected.", last.Issue)
				assert.Equal(t, fixStructureATS, last.FixExample)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Led", capitalize("LED"))
	assert.Equal(t, "Éclair", capitalize("éCLAIR"))
	assert.Equal(t, "", capitalize(""))
}
