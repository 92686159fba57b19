package analysis

import (
	"fmt"

	"github.com/drishanroy/resume-analysis-app/internal/parsing"
	"github.com/drishanroy/resume-analysis-app/internal/scoring"
	"github.com/drishanroy/resume-analysis-app/internal/types"
)

// canonicalSkills are the skills reported as missing when a job description asks for them.
var canonicalSkills = []string{
	"python", "sql", "powerbi", "docker", "airflow", "react",
	"tableau", "pandas", "numpy", "tensorflow", "pytorch",
}

const (
	maxMissingSkills   = 8
	maxRecommendations = 5
	recommendationFmt  = "Add a bullet showing %s in context of a project/result."
)

// CompareJD measures how many job description keywords the detected skills
// cover. An empty job description yields a nil coverage and empty lists; a
// whitespace-only one is still compared and covers 0%.
func CompareJD(jobDescription string, detected []string) types.JDComparison {
	if jobDescription == "" {
		return types.JDComparison{
			MissingSkills:   []string{},
			MatchedKeywords: []string{},
			Recommendations: []string{},
		}
	}

	jdTokens := parsing.WhitespaceTokens(jobDescription)

	have := make(map[string]struct{}, len(detected))
	matched := make([]string, 0, len(detected))
	for _, s := range detected {
		key := parsing.Normalize(s)
		have[key] = struct{}{}
		if jdTokens.Contains(key) {
			matched = append(matched, s)
		}
	}

	missing := make([]string, 0, len(canonicalSkills))
	for _, s := range canonicalSkills {
		if _, ok := have[s]; ok {
			continue
		}
		if jdTokens.Contains(s) {
			missing = append(missing, s)
		}
	}

	coverage := int(scoring.Round(100*float64(len(matched))/float64(max(1, len(matched)+len(missing))), 0))

	recs := make([]string, 0, maxRecommendations)
	for _, m := range firstN(missing, maxRecommendations) {
		recs = append(recs, fmt.Sprintf(recommendationFmt, m))
	}

	return types.JDComparison{
		CoveragePct:     &coverage,
		MissingSkills:   firstN(missing, maxMissingSkills),
		MatchedKeywords: matched,
		Recommendations: recs,
	}
}
