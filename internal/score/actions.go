package score

import (
	"fmt"
	"strings"

	"resume-screener/internal/parse"
)

const maxActions = 7

// buildActions assembles the prioritized action list. Checks run in a fixed
// order so the output is deterministic; the list is capped at seven and every
// entry carries its justification.
func buildActions(resume parse.Resume, missing []string, numberedBullets int) []ActionItem {
	var actions []ActionItem
	add := func(text, why string) {
		actions = append(actions, ActionItem{Priority: len(actions) + 1, Text: text, Why: why})
	}

	if len(missing) > 0 {
		add(
			fmt.Sprintf("Add missing skills: %s", strings.Join(firstN(missing, 4), ", ")),
			"These keywords are expected for this role but not found in your resume.",
		)
	}
	if numberedBullets < 3 {
		add(
			"Add quantifiable metrics to your experience bullets",
			"Most bullets lack numbers. Use percentages, dollar amounts, or user counts.",
		)
	}
	if resume.Summary == "" {
		add(
			"Add a professional summary at the top of your resume",
			"A concise summary helps recruiters quickly understand your fit.",
		)
	}
	for _, e := range resume.Experience {
		if len(e.Bullets) == 0 {
			add(
				"Add bullet points for all experience entries",
				"Some positions have no bullets — describe your responsibilities and achievements.",
			)
			break
		}
	}
	if len(resume.Projects) == 0 {
		add(
			"Add a projects section to showcase relevant work",
			"Projects demonstrate hands-on skills and initiative.",
		)
	}
	if resume.LinkedInURL == "" {
		add(
			"Include your LinkedIn profile URL",
			"LinkedIn adds credibility and lets recruiters learn more about you.",
		)
	}
	add(
		"Tailor resume language to mirror the job description",
		"Using the same terminology as the job posting improves ATS matching.",
	)

	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}
