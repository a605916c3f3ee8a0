package score

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"resume-screener/internal/parse"
)

// Scoring weights for the overall score. Skills dominate deliberately: a
// strong keyword match is the best deterministic signal available without a
// model call.
const (
	weightSkills      = 0.5
	weightExperience  = 0.25
	weightATS         = 0.1
	weightAchievement = 0.05
	weightEducation   = 0.1

	domainMismatchPenalty = 50
)

var numericEvidenceRe = regexp.MustCompile(`\d+%|\$[\d,]+|\d+x|\d+ `)

// Fallback produces a complete Report from a parsed resume and job profile
// without any external call. It is a pure function and the guaranteed path
// when the model-backed analysis is unavailable or returns garbage.
func Fallback(resume parse.Resume, job Job) Report {
	lowerText := strings.ToLower(resume.RawText)
	lowerSkills := make([]string, len(resume.Skills))
	for i, s := range resume.Skills {
		lowerSkills[i] = strings.ToLower(s)
	}

	keywords := jobKeywords(job.JobTitle, job.Industry)

	var matched, missing []string
	for _, kw := range keywords {
		if keywordPresent(kw, lowerText, lowerSkills) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	skillsScore := 50
	if len(keywords) > 0 {
		skillsScore = int(math.Round(float64(len(matched)) / float64(len(keywords)) * 100))
	}

	// Wrong-field resumes score low regardless of superficial overlap: an ML
	// resume aimed at a workflow-engineering role loses a flat 50 points.
	jobDomain := detectJobDomain(strings.ToLower(job.JobTitle))
	resumeDomains := detectResumeDomains(lowerText, lowerSkills)
	if jobDomain != "" && len(resumeDomains) > 0 && !containsString(resumeDomains, jobDomain) {
		skillsScore -= domainMismatchPenalty
		if skillsScore < 0 {
			skillsScore = 0
		}
	}
	if len(matched) < 3 && len(keywords) >= 8 && skillsScore > 25 {
		skillsScore = 25
	}

	hasExperience := len(resume.Experience) > 0
	totalBullets := 0
	var expBuilder strings.Builder
	for _, e := range resume.Experience {
		totalBullets += len(e.Bullets)
		expBuilder.WriteString(strings.ToLower(strings.Join(e.Bullets, " ")))
		expBuilder.WriteString(" ")
	}
	expText := expBuilder.String()

	experienceScore := 0
	if hasExperience {
		experienceScore = 40
	}
	experienceScore += min(totalBullets*5, 40)
	if len(resume.Experience) >= 2 {
		experienceScore += 20
	}
	experienceScore = min(experienceScore, 100)

	expMatches := 0
	for _, kw := range keywords {
		if strings.Contains(expText, kw) {
			expMatches++
		}
	}
	if expMatches < 2 {
		experienceScore = min(experienceScore, 40)
	}

	hasEducation := len(resume.Education) > 0
	hasCerts := len(resume.Certifications) > 0
	educationScore := 20
	if hasEducation {
		educationScore = 70
	}
	if hasCerts {
		educationScore += 30
	}

	atsScore := 0
	if resume.Email != "" {
		atsScore += 25
	}
	if resume.Phone != "" {
		atsScore += 15
	}
	if resume.Name != "" {
		atsScore += 20
	}
	hasSkills := len(resume.Skills) > 0
	if hasSkills {
		atsScore += 25
	}
	if hasExperience {
		atsScore += 15
	}

	numberedBullets := 0
	for _, e := range resume.Experience {
		for _, b := range e.Bullets {
			if numericEvidenceRe.MatchString(b) {
				numberedBullets++
			}
		}
	}
	achievementScore := min(100, numberedBullets*20+20)

	overall := int(math.Round(
		float64(skillsScore)*weightSkills +
			float64(experienceScore)*weightExperience +
			float64(atsScore)*weightATS +
			float64(achievementScore)*weightAchievement +
			float64(min(educationScore, 100))*weightEducation,
	))

	level := scoreLevel(overall)

	matches := make([]SkillMatch, 0, len(matched))
	for _, kw := range matched {
		matches = append(matches, SkillMatch{
			Skill:    kw,
			Evidence: []string{"Found in resume skills or text"},
		})
	}

	return Report{
		OverallScore: clamp(overall),
		Summary:      buildSummary(resume, job, overall, level, matched, missing),
		SectionScores: SectionScores{
			SkillsMatch:        clamp(skillsScore),
			ExperienceMatch:    clamp(experienceScore),
			Education:          clamp(educationScore),
			ATSReadability:     clamp(atsScore),
			AchievementQuality: clamp(achievementScore),
		},
		TopActions:    buildActions(resume, missing, numberedBullets),
		Rewrites:      []Rewrite{},
		KeywordsToAdd: missing,
		ATSChecklist: []ChecklistItem{
			{Item: "Contact information (name, email, phone) is clearly listed", Passed: resume.Email != "" && resume.Phone != "" && resume.Name != ""},
			{Item: "Skills section is present and populated", Passed: hasSkills},
			{Item: "Work experience includes company names and dates", Passed: hasExperience},
			{Item: "Education section is present", Passed: hasEducation},
			{Item: "Resume uses standard section headings", Passed: true},
			{Item: "No complex formatting (tables, columns) detected", Passed: true},
			{Item: "Includes relevant keywords for the target role", Passed: skillsScore >= 50},
		},
		Explain: Explainability{
			SkillMatches: matches,
			ScoreBreakdown: fmt.Sprintf(
				"Skills (50%%): %d | Experience (25%%): %d | ATS (10%%): %d | Achievement (5%%): %d | Education (10%%): %d",
				clamp(skillsScore), clamp(experienceScore), clamp(atsScore), clamp(achievementScore), clamp(educationScore)),
		},
	}
}

func keywordPresent(kw, lowerText string, lowerSkills []string) bool {
	if strings.Contains(lowerText, kw) {
		return true
	}
	for _, s := range lowerSkills {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func scoreLevel(overall int) string {
	switch {
	case overall >= 85:
		return "Strong"
	case overall >= 70:
		return "Good"
	case overall >= 50:
		return "Moderate"
	default:
		return "Low"
	}
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
