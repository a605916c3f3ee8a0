package score

// Job is the target role a resume is scored against. Immutable once handed
// to the scorer.
type Job struct {
	JobTitle  string `json:"jobTitle"`
	Seniority string `json:"seniority"` // junior | mid | senior
	Industry  string `json:"industry"`
}

// SectionScores holds the per-category scores, each in [0, 100].
type SectionScores struct {
	SkillsMatch        int `json:"skillsMatch"`
	ExperienceMatch    int `json:"experienceMatch"`
	Education          int `json:"education"`
	ATSReadability     int `json:"atsReadability"`
	AchievementQuality int `json:"achievementQuality"`
}

// ActionItem is one prioritized suggestion. Why always explains the reason
// the action was raised.
type ActionItem struct {
	Priority int    `json:"priority"`
	Text     string `json:"text"`
	Why      string `json:"why"`
}

// Rewrite is a suggested bullet rewrite. The deterministic path never
// produces rewrites; the field exists so the report shape matches the
// AI-backed one.
type Rewrite struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
}

// ChecklistItem is one ATS readiness check.
type ChecklistItem struct {
	Item   string `json:"item"`
	Passed bool   `json:"passed"`
}

// SkillMatch records where a matched keyword was found.
type SkillMatch struct {
	Skill    string   `json:"skill"`
	Evidence []string `json:"evidence"`
}

// Explainability carries the score derivation for display.
type Explainability struct {
	SkillMatches   []SkillMatch `json:"skillMatches"`
	ScoreBreakdown string       `json:"scoreBreakdown"`
}

// Report is the complete scoring result. All score fields are clamped to
// [0, 100] and TopActions never exceeds seven entries.
type Report struct {
	OverallScore  int             `json:"overallScore"`
	Summary       string          `json:"summary"`
	SectionScores SectionScores   `json:"sectionScores"`
	TopActions    []ActionItem    `json:"topActions"`
	Rewrites      []Rewrite       `json:"rewrites"`
	KeywordsToAdd []string        `json:"keywordsToAdd"`
	ATSChecklist  []ChecklistItem `json:"atsChecklist"`
	Explain       Explainability  `json:"explainability"`
}
