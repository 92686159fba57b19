// Package scoring computes the bounded rubric sub-scores of a resume.
package scoring

import (
	"strings"

	"github.com/drishanroy/resume-analysis-app/internal/parsing"
)

// Bullet score weights and cap.
const (
	actionWeight   = 0.8
	metricWeight   = 1.2
	techWeight     = 1.0
	MaxBulletScore = 3.0
)

// Bullet score reasons.
const (
	ReasonNoBullets = "No bullet points detected."
	ReasonNoVerbs   = "Many bullets lack strong action verbs."
	ReasonNoMetrics = "Few bullets quantify impact (%, #, time)."
	ReasonNoTech    = "Bullets often miss concrete tech/context."
)

// techKeywords are matched as lowercase substrings of each bullet.
var techKeywords = []string{
	"python", "sql", "react", "docker", "pandas", "tensorflow",
	"pytorch", "powerbi", "tableau", "fastapi", "flask", "airflow",
}

// VerbSet reports whether a word is a recognized action verb.
type VerbSet interface {
	IsActionVerb(word string) bool
}

// BulletReport is the score of a bullet list and the reasons it lost points.
type BulletReport struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// ScoreBullets scores bullets for action verbs, quantified impact and technical context.
func ScoreBullets(bullets []string, verbs VerbSet) BulletReport {
	if len(bullets) == 0 {
		return BulletReport{Score: 0, Reasons: []string{ReasonNoBullets}}
	}

	var actionHits, metricHits, techHits int
	for _, b := range bullets {
		first := parsing.FirstWord(b)
		if first == "" {
			continue
		}
		if verbs.IsActionVerb(strings.ToLower(first)) {
			actionHits++
		}
		if parsing.HasMetric(b) {
			metricHits++
		}
		if containsTechKeyword(b) {
			techHits++
		}
	}

	n := float64(len(bullets))
	composite := actionWeight*float64(actionHits)/n +
		metricWeight*float64(metricHits)/n +
		techWeight*float64(techHits)/n
	score := Round(min(MaxBulletScore, Round(composite*3.0, 2)), 2)

	reasons := make([]string, 0, 3)
	half := n / 2
	if float64(actionHits) < half {
		reasons = append(reasons, ReasonNoVerbs)
	}
	if float64(metricHits) < half {
		reasons = append(reasons, ReasonNoMetrics)
	}
	if float64(techHits) < half {
		reasons = append(reasons, ReasonNoTech)
	}

	return BulletReport{Score: score, Reasons: reasons}
}

func containsTechKeyword(bullet string) bool {
	lower := strings.ToLower(bullet)
	for _, kw := range techKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
