package analyses

import (
	"encoding/json"
	"fmt"

	"resume-screener/internal/score"
)

// decodeReport parses a model response into a Report and rejects anything
// that violates the report contract. A rejected response sends the analysis
// down the deterministic path instead of storing garbage.
func decodeReport(raw json.RawMessage) (score.Report, error) {
	var report score.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return score.Report{}, fmt.Errorf("llm output parse: %w", err)
	}
	if err := validateReport(report); err != nil {
		return score.Report{}, fmt.Errorf("llm output invalid: %w", err)
	}
	return report, nil
}

func validateReport(r score.Report) error {
	scores := map[string]int{
		"overallScore":       r.OverallScore,
		"skillsMatch":        r.SectionScores.SkillsMatch,
		"experienceMatch":    r.SectionScores.ExperienceMatch,
		"education":          r.SectionScores.Education,
		"atsReadability":     r.SectionScores.ATSReadability,
		"achievementQuality": r.SectionScores.AchievementQuality,
	}
	for name, v := range scores {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
	}
	if r.Summary == "" {
		return fmt.Errorf("summary is empty")
	}
	if len(r.TopActions) > 7 {
		return fmt.Errorf("too many actions: %d", len(r.TopActions))
	}
	for i, action := range r.TopActions {
		if action.Text == "" {
			return fmt.Errorf("action %d has empty text", i)
		}
		if action.Priority < 1 {
			return fmt.Errorf("action %d has invalid priority %d", i, action.Priority)
		}
	}
	if len(r.ATSChecklist) == 0 {
		return fmt.Errorf("ats checklist is empty")
	}
	for i, item := range r.ATSChecklist {
		if item.Item == "" {
			return fmt.Errorf("checklist item %d is unnamed", i)
		}
	}
	return nil
}

// reportToMap converts a Report into the JSON shape stored on the analysis.
func reportToMap(r score.Report) (map[string]any, error) {
	return toMap(r)
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
