package parse

import (
	"regexp"
	"strings"
)

const summaryMaxLen = 500

var (
	emailRe    = regexp.MustCompile(`[\w._%+-]+@[\w.-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+`)
	websiteRe  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w.-]+\.[a-zA-Z]{2,}(?:/[\w.-]*)?`)

	phoneLineRe   = regexp.MustCompile(`^\+?\d[\d\s()\-]{6,}`)
	bulletLeadRe  = regexp.MustCompile(`^[•·\-–—▪■]\s*`)
	bulletStartRe = regexp.MustCompile(`^[•·\-–—▪■]`)
	hasLetterRe   = regexp.MustCompile(`[A-Za-z]`)
	skillSplitRe  = regexp.MustCompile(`[,|•·]`)
	skillTrimRe   = regexp.MustCompile(`^[-–—\s]+|[-–—\s]+$`)

	vocabRes = compileVocab()
)

func compileVocab() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(commonSkills))
	for _, s := range commonSkills {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(s)+`\b`))
	}
	return out
}

// ExtractFields normalizes the text, splits it into sections, and pulls out
// structured resume fields. It always returns a complete Resume; fields that
// could not be detected are zero-valued and noted in Warnings.
func ExtractFields(text string) Resume {
	normalized := Normalize(text)
	sections := SplitSections(normalized)

	r := Resume{
		Name:           detectName(sections[SectionHeader]),
		Email:          emailRe.FindString(text),
		Phone:          phoneRe.FindString(text),
		LinkedInURL:    linkedinRe.FindString(text),
		WebsiteURL:     detectWebsite(text),
		Summary:        truncate(sections["summary"], summaryMaxLen),
		Skills:         extractSkills(sections["skills"], text),
		Experience:     extractExperience(sections["experience"]),
		Education:      extractEducation(sections["education"]),
		Projects:       extractProjects(sections["projects"]),
		Certifications: extractLines(sections["certifications"]),
		Achievements:   extractLines(sections["achievements"]),
		RawText:        text,
	}

	if r.Name == "" {
		r.Warnings = append(r.Warnings, "Could not detect candidate name.")
	}
	if r.Email == "" {
		r.Warnings = append(r.Warnings, "Could not detect email address.")
	}
	if len(r.Skills) == 0 {
		r.Warnings = append(r.Warnings, "Could not detect skills — consider listing them clearly.")
	}
	if len(r.Experience) == 0 {
		r.Warnings = append(r.Warnings, "Could not detect work experience sections.")
	}
	return r
}

// detectName picks the first plausible line out of the first eight header
// lines: short, contains a letter, and is not contact info or a bullet.
func detectName(header string) string {
	lines := nonEmptyLines(header)
	if len(lines) > 8 {
		lines = lines[:8]
	}
	for _, line := range lines {
		if strings.Contains(line, "@") ||
			strings.Contains(line, "http") ||
			strings.Contains(line, "linkedin") ||
			phoneLineRe.MatchString(line) ||
			bulletStartRe.MatchString(line) {
			continue
		}
		if len(line) > 1 && len(line) < 60 && hasLetterRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// detectWebsite returns the first URL-shaped match that is not a LinkedIn
// profile or a mail host; those are covered by their own fields.
func detectWebsite(text string) string {
	for _, m := range websiteRe.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "linkedin") || strings.Contains(lower, "gmail") {
			continue
		}
		return m
	}
	return ""
}

// extractSkills splits the skills section on commas, pipes, and bullet
// glyphs, discarding category labels before a colon ("Languages: Go, C").
// When that yields fewer than three skills, the whole text is scanned against
// the common-skills vocabulary. The result is deduplicated case-insensitively,
// keeping first-seen casing and order.
func extractSkills(section, fullText string) []string {
	var skills []string
	for _, line := range strings.Split(section, "\n") {
		if idx := strings.Index(line, ":"); idx >= 0 {
			line = line[idx+1:]
		}
		for _, part := range skillSplitRe.Split(line, -1) {
			part = strings.TrimSpace(skillTrimRe.ReplaceAllString(part, ""))
			if len(part) > 0 && len(part) < 60 {
				skills = append(skills, part)
			}
		}
	}

	if len(skills) < 3 {
		for i, re := range vocabRes {
			if re.MatchString(fullText) {
				skills = append(skills, commonSkills[i])
			}
		}
	}

	return dedupeFold(skills)
}

// extractLines returns one entry per non-trivial line, bullet glyph stripped.
// Used for certifications and achievements.
func extractLines(section string) []string {
	var out []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(bulletLeadRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(line) > 3 {
			out = append(out, line)
		}
	}
	return out
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
