package score

import "strings"

// Generic skill vocabularies keyed by role family. Up to six terms of each
// matched family (three for communication, which applies to every role) feed
// the derived keyword set.
var (
	technicalTerms     = []string{"programming", "coding", "software", "development", "engineering", "technical", "system", "database", "api", "cloud", "devops"}
	businessTerms      = []string{"management", "strategy", "analysis", "planning", "operations", "process", "project", "stakeholder", "business", "finance"}
	dataTerms          = []string{"data", "analytics", "sql", "python", "statistics", "machine learning", "ai", "visualization", "reporting"}
	designTerms        = []string{"design", "ux", "ui", "user", "interface", "visual", "figma", "sketch", "wireframe", "prototype"}
	communicationTerms = []string{"communication", "presentation", "writing", "collaboration", "teamwork", "leadership", "agile", "scrum"}
)

var titleStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {},
}

// jobKeywords derives the keyword set for a job title and optional industry:
// the title's own words, the industry, role-family vocabularies triggered by
// title substrings, and a few communication terms for every role.
// The result is deduplicated, preserving derivation order, and lowercased.
func jobKeywords(jobTitle, industry string) []string {
	title := strings.ToLower(jobTitle)

	var keywords []string
	for _, word := range strings.Fields(title) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := titleStopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}

	if industry != "" {
		keywords = append(keywords, strings.ToLower(industry))
	}

	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(title, s) {
				return true
			}
		}
		return false
	}

	if contains("engineer", "developer", "programmer") {
		keywords = append(keywords, firstN(technicalTerms, 6)...)
	}
	if contains("data", "analyst", "scientist") {
		keywords = append(keywords, firstN(dataTerms, 6)...)
	}
	if contains("manager", "director", "lead") {
		keywords = append(keywords, firstN(businessTerms, 6)...)
	}
	if contains("design", "ux", "ui") {
		keywords = append(keywords, firstN(designTerms, 6)...)
	}
	keywords = append(keywords, firstN(communicationTerms, 3)...)

	return dedupe(keywords)
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
