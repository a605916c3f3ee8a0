package score

import (
	"fmt"
	"strings"

	"resume-screener/internal/parse"
)

// buildSummary assembles the templated report summary: match level, up to
// three matched and missing skills, and a closing line keyed on the score.
func buildSummary(resume parse.Resume, job Job, overall int, level string, matched, missing []string) string {
	name := resume.Name
	if name == "" {
		name = "The candidate"
	}

	parts := []string{
		fmt.Sprintf("%s match (%d/100) for the %s role.", level, overall, job.JobTitle),
	}
	if len(matched) > 0 {
		parts = append(parts, fmt.Sprintf("%s shows relevant skills including %s.", name, strings.Join(firstN(matched, 3), ", ")))
	}
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("Key areas to strengthen: add experience with %s.", strings.Join(firstN(missing, 3), ", ")))
	}
	if overall < 70 {
		parts = append(parts, "Consider tailoring bullet points with metrics and impact statements to better demonstrate fit.")
	} else {
		parts = append(parts, "A few focused edits will make this application stand out even more.")
	}
	return strings.Join(parts, " ")
}
