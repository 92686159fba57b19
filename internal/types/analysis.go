// Package types provides the request and result types shared by the analysis
// engine and its transports.
package types

// AnalysisResult is the complete critique of one resume. It is built once per
// analysis and not modified afterwards.
type AnalysisResult struct {
	OverallScore   float64       `json:"overall_score"`
	Subscores      Subscores     `json:"subscores"`
	Highlights     Highlights    `json:"highlights"`
	Improvements   []Improvement `json:"improvements"`
	TwoLineSummary string        `json:"two_line_summary"`
	JDComparison   JDComparison  `json:"jd_comparison"`
}

// Subscores holds the six bounded rubric dimensions.
type Subscores struct {
	ImpactBullets  float64 `json:"impact_bullets"`
	SkillAlignment float64 `json:"skill_alignment"`
	ClarityTone    float64 `json:"clarity_tone"`
	StructureATS   float64 `json:"structure_ats"`
	Projects       float64 `json:"projects"`
	Hygiene        float64 `json:"hygiene"`
}

// Total returns the unrounded sum of all sub-scores.
func (s Subscores) Total() float64 {
	return s.ImpactBullets + s.SkillAlignment + s.ClarityTone + s.StructureATS + s.Projects + s.Hygiene
}

// Highlights lists detected skills and a sample of analyzed bullets.
type Highlights struct {
	SkillsDetected  []string `json:"skills_detected"`
	BulletsAnalyzed []string `json:"bullets_analyzed"`
}

// Improvement is one actionable tip.
type Improvement struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	FixExample string `json:"fix_example"`
}

// JDComparison compares detected skills with a job description.
// CoveragePct is nil when no job description was supplied.
type JDComparison struct {
	CoveragePct     *int     `json:"coverage_pct"`
	MissingSkills   []string `json:"missing_skills"`
	MatchedKeywords []string `json:"matched_keywords"`
	Recommendations []string `json:"recommendations"`
}

// HasJobDescription reports whether the comparison was computed against a job description.
func (c JDComparison) HasJobDescription() bool {
	return c.CoveragePct != nil
}
