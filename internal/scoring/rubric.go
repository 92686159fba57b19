package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/drishanroy/resume-analysis-app/internal/parsing"
)

// Sub-score caps.
const (
	MaxSkillAlignment = 2.0
	MaxClarity        = 2.0
	MaxStructureATS   = 1.5
	MaxProjects       = 1.0
	MaxHygiene        = 0.5
)

// Structure/ATS penalty reasons.
const (
	ReasonTooLong       = "Resume likely exceeds recommended length."
	ReasonTabs          = "Tabs/tables may hurt ATS parsing."
	ReasonFewBullets    = "Too few bullet points detected."
	ReasonNoHeaderHints = "Missing standard section headers."
)

const (
	longBulletWords   = 28
	maxResumeLength   = 18000
	minBulletMarkers  = 5
	minHygieneLength  = 500
	skillSaturation   = 10
	noBulletConcision = 0.3
)

var (
	pastTensePattern    = regexp.MustCompile(`\b\w+ed\b`)
	presentTensePattern = regexp.MustCompile(`\b\w+ing\b`)
	problemPattern      = regexp.MustCompile(`(?i)(problem|challenge|goal)`)
	approachPattern     = regexp.MustCompile(`(?i)(approach|method|stack|tech)`)
	phonePattern        = regexp.MustCompile(`\+?\d{7,}`)
)

// Concision rewards short bullets: 0.7 when none exceed 28 words, 0.3 when there are no bullets.
func Concision(text string) float64 {
	bullets := parsing.Bullets(text)
	if len(bullets) == 0 {
		return noBulletConcision
	}
	long := 0
	for _, b := range bullets {
		if len(strings.Fields(b)) > longBulletWords {
			long++
		}
	}
	frac := float64(long) / float64(len(bullets))
	return math.Max(0, 0.7-0.7*frac)
}

// TenseBalance scores in [0.2, 0.5] from counts of words ending in -ed and -ing.
// The suffix counts are a lexical proxy, not grammatical tense.
func TenseBalance(text string) float64 {
	lower := strings.ToLower(text)
	past := len(pastTensePattern.FindAllString(lower, -1))
	present := len(presentTensePattern.FindAllString(lower, -1))
	ratio := float64(min(past, present)) / float64(past+present+1)
	return 0.2 + 0.3*(1-ratio)
}

// Clarity sums readability, concision and tense balance, capped at 2.0.
func Clarity(text string, oracle GradeLevel) float64 {
	sum := Readability(text, oracle) + Concision(text) + TenseBalance(text)
	return math.Min(MaxClarity, Round(sum, 2))
}

// StructureATS starts at 1.5 and subtracts a penalty per formatting problem,
// returning the score and one reason per penalty.
func StructureATS(text string) (float64, []string) {
	score := MaxStructureATS
	reasons := make([]string, 0, 4)

	if utf8.RuneCountInString(text) > maxResumeLength {
		reasons = append(reasons, ReasonTooLong)
		score -= 0.4
	}
	if strings.Contains(text, "\t") {
		reasons = append(reasons, ReasonTabs)
		score -= 0.3
	}
	if strings.Count(text, "•")+strings.Count(text, "-") < minBulletMarkers {
		reasons = append(reasons, ReasonFewBullets)
		score -= 0.3
	}
	if !parsing.ContainsHeaderHint(text) {
		reasons = append(reasons, ReasonNoHeaderHints)
		score -= 0.3
	}

	return math.Max(0, Round(score, 2)), reasons
}

// ProjectsEvidence scores a projects section for problem framing, approach and measured results.
func ProjectsEvidence(projects string) float64 {
	score := 0.0
	if problemPattern.MatchString(projects) {
		score += 0.3
	}
	if approachPattern.MatchString(projects) {
		score += 0.3
	}
	if parsing.HasMetric(projects) {
		score += 0.4
	}
	return math.Min(MaxProjects, Round(score, 2))
}

// Hygiene checks for contact details and a minimum length.
func Hygiene(text string) float64 {
	score := MaxHygiene
	if !strings.Contains(text, "@") {
		score -= 0.2
	}
	if !phonePattern.MatchString(text) {
		score -= 0.1
	}
	if utf8.RuneCountInString(text) < minHygieneLength {
		score -= 0.2
	}
	return math.Max(0, Round(score, 2))
}

// SkillAlignment is a density proxy that saturates at 10 detected skills.
func SkillAlignment(skillCount int) float64 {
	n := min(skillSaturation, max(0, skillCount))
	return math.Min(MaxSkillAlignment, Round(2.0*float64(n)/skillSaturation, 2))
}
