package analysis

import "strings"

const (
	defaultRole      = "technology"
	fallbackSkills   = "impactful projects"
	maxSummarySkills = 4
)

// Summary renders the two-sentence candidate summary.
func Summary(detected []string, targetRole string) string {
	role := strings.TrimSpace(targetRole)
	if role == "" {
		role = defaultRole
	}
	top := fallbackSkills
	if len(detected) > 0 {
		top = strings.Join(firstN(detected, maxSummarySkills), ", ")
	}
	return "Early‑career " + role + " candidate with hands‑on experience in " + top + ". " +
		"Delivers measurable outcomes through clear problem framing, rapid experimentation, and clean deliverables."
}
