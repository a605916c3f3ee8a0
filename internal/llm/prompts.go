package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a resume screening engine. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."

// reportSchema mirrors the shape produced by the rule-based scorer so model
// output and fallback output stay interchangeable.
const reportSchema = `{
  "overallScore": 0,
  "summary": "",
  "sectionScores": {
    "skillsMatch": 0,
    "experienceMatch": 0,
    "education": 0,
    "atsReadability": 0,
    "achievementQuality": 0
  },
  "topActions": [{"priority": 1, "text": "", "why": ""}],
  "rewrites": [{"original": "", "improved": ""}],
  "keywordsToAdd": [""],
  "atsChecklist": [{"item": "", "passed": true}],
  "explainability": {
    "skillMatches": [{"skill": "", "evidence": [""]}],
    "scoreBreakdown": ""
  }
}`

// BuildSystemPrompt returns the system message for a scoring request.
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the scoring request for a parsed resume and job.
func BuildUserPrompt(input ScoreInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score this resume against the target role. All scores are integers 0-100. Cap topActions at 7 entries.\n\n")
	fmt.Fprintf(&b, "Target role: %s\n", orNA(input.JobTitle))
	fmt.Fprintf(&b, "Seniority: %s\n", orNA(input.Seniority))
	fmt.Fprintf(&b, "Industry: %s\n\n", orNA(input.Industry))
	fmt.Fprintf(&b, "Parsed resume JSON:\n%s\n\n", input.ResumeJSON)
	fmt.Fprintf(&b, "Respond with JSON matching this schema exactly:\n%s", reportSchema)
	return b.String()
}

// BuildFixPrompt renders the repair request for malformed model output.
func BuildFixPrompt(raw []byte) string {
	return fmt.Sprintf("Fix this JSON to match the schema exactly. Output JSON only:\n%s\n\nSchema:\n%s", string(raw), reportSchema)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
