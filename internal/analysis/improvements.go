package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/drishanroy/resume-analysis-app/internal/parsing"
	"github.com/drishanroy/resume-analysis-app/internal/types"
)

const (
	bulletsChecked = 3
	minSkillWords  = 6
)

// Improvement sections and messages.
const (
	SectionExperienceProjects = "Experience/Projects"
	SectionSkills             = "Skills"
	SectionProjects           = "Projects"
	SectionStructureATS       = "Structure/ATS"

	issueNoMetric     = "Bullet lacks measurable result"
	issueThinSkills   = "Skills too generic or short"
	issueNoProjects   = "Missing or weak projects section"
	fixThinSkills     = "Group as Languages / Libraries / Tools with 4–6 items each."
	fixNoProjects     = "Add 2 projects with Problem→Approach→Result and links."
	fixStructureATS   = "Use simple headers and bullet lists; avoid tables/columns."
	fixNoMetricFormat = "%s ... resulting in {metric} (e.g., +23%%, −120ms, 2× throughput)."
)

// Improvements builds the tip list in fixed order: one unquantified bullet
// among the first three, a thin skills section, a missing projects section,
// then the Structure/ATS reasons joined into one tip.
func Improvements(sections parsing.Sections, bullets []string, atsReasons []string) []types.Improvement {
	tips := make([]types.Improvement, 0, 4)

	for _, b := range firstN(bullets, bulletsChecked) {
		if parsing.HasMetric(b) {
			continue
		}
		tips = append(tips, types.Improvement{
			Section:    SectionExperienceProjects,
			Issue:      issueNoMetric,
			FixExample: fmt.Sprintf(fixNoMetricFormat, capitalize(parsing.FirstWord(b))),
		})
		break
	}

	if len(strings.Fields(sections.Get(parsing.SectionSkills))) < minSkillWords {
		tips = append(tips, types.Improvement{
			Section:    SectionSkills,
			Issue:      issueThinSkills,
			FixExample: fixThinSkills,
		})
	}

	if sections.Get(parsing.SectionProjects) == "" {
		tips = append(tips, types.Improvement{
			Section:    SectionProjects,
			Issue:      issueNoProjects,
			FixExample: fixNoProjects,
		})
	}

	if len(atsReasons) > 0 {
		tips = append(tips, types.Improvement{
			Section:    SectionStructureATS,
			Issue:      strings.Join(atsReasons, "; "),
			FixExample: fixStructureATS,
		})
	}

	return tips
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToTitle(runes[0])
	return string(runes)
}
