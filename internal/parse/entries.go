package parse

import (
	"regexp"
	"strings"
)

var (
	monthAlt = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s*\d{0,4}`

	// Date ranges in the forms "01/2020 - 02/2021", "2023 – Present",
	// "Jan 2024 - Mar 2025", and mixes thereof.
	dateRangeRe = regexp.MustCompile(`(?i)(?:\d{1,2}/\d{4}|\d{4}|` + monthAlt + `)\s*[-–—]+\s*(?:present|current|\d{1,2}/\d{4}|\d{4}|` + monthAlt + `)`)

	bulletLineRe   = regexp.MustCompile(`^[•·\-–—▪■]\s`)
	dashSplitRe    = regexp.MustCompile(`[-–—]`)
	segmentSplitRe = regexp.MustCompile(`\s{2,}|[|]`)
	yearRangeRe    = regexp.MustCompile(`(?i)\d{4}\s*[-–—]\s*(?:\d{4}|present)`)
	degreeRe       = regexp.MustCompile(`(?i)(?:b\.?e\.?|b\.?s\.?|b\.?a\.?|b\.?tech|m\.?s\.?|m\.?a\.?|m\.?tech|ph\.?d|bachelor|master|mba|associate|diploma|degree|b\.?sc|m\.?sc)`)
	projectDateRe  = regexp.MustCompile(`\d{1,2}/\d{4}\s*[-–—]\s*\d{1,2}/\d{4}`)
)

// extractExperience folds over the section's lines carrying the entry under
// construction. A non-bullet line holding a date range closes the previous
// entry and opens a new one; bullet lines and long continuation lines
// accumulate onto the open entry.
func extractExperience(section string) []ExperienceEntry {
	if strings.TrimSpace(section) == "" {
		return nil
	}

	var entries []ExperienceEntry
	var current *ExperienceEntry

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		isBullet := bulletLineRe.MatchString(trimmed)
		dateMatch := ""
		if !isBullet {
			dateMatch = dateRangeRe.FindString(trimmed)
		}

		switch {
		case dateMatch != "":
			if current != nil {
				entries = append(entries, *current)
			}
			current = newEntryFromDateLine(trimmed, dateMatch)

		case current != nil && isBullet:
			if text := bulletLeadRe.ReplaceAllString(trimmed, ""); text != "" {
				current.Bullets = append(current.Bullets, text)
			}

		case current != nil && !isBullet && len(trimmed) > 10:
			// Continuation or sub-title text under the open role.
			current.Bullets = append(current.Bullets, trimmed)

		case current == nil && !isBullet && len(trimmed) > 5:
			// Role header without dates on the same line.
			current = &ExperienceEntry{Company: trimmed, Title: trimmed}
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

func newEntryFromDateLine(line, dateMatch string) *ExperienceEntry {
	remaining := strings.TrimSpace(strings.ReplaceAll(strings.Replace(line, dateMatch, "", 1), ",", " "))

	var parts []string
	for _, p := range segmentSplitRe.Split(remaining, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	entry := &ExperienceEntry{
		Title:     remaining,
		Company:   remaining,
		StartDate: rangeStart(dateMatch),
		EndDate:   rangeEnd(dateMatch),
	}
	if len(parts) > 0 {
		entry.Title = parts[0]
	}
	if len(parts) > 1 {
		entry.Company = parts[1]
	}
	if len(parts) > 2 {
		entry.Location = parts[2]
	}
	return entry
}

func rangeStart(dateRange string) string {
	segs := dashSplitRe.Split(dateRange, -1)
	return strings.TrimSpace(segs[0])
}

func rangeEnd(dateRange string) string {
	segs := dashSplitRe.Split(dateRange, -1)
	return strings.TrimSpace(segs[len(segs)-1])
}

// extractEducation returns one entry per degree-keyword line. The first
// non-trivial line is accepted even without a degree keyword so a sparse
// education section still yields an entry. The trailing year range, when
// present, is lifted into the dates and stripped from the stored text;
// institution and degree deliberately carry the same stripped line.
func extractEducation(section string) []EducationEntry {
	if strings.TrimSpace(section) == "" {
		return nil
	}

	var entries []EducationEntry
	for _, line := range strings.Split(section, "\n") {
		if len(strings.TrimSpace(line)) <= 3 {
			continue
		}
		trimmed := strings.TrimSpace(bulletLeadRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(trimmed) < 5 {
			continue
		}
		if !degreeRe.MatchString(trimmed) && len(entries) > 0 {
			continue
		}

		dateMatch := yearRangeRe.FindString(trimmed)
		stripped := strings.TrimSpace(yearRangeRe.ReplaceAllString(trimmed, ""))
		entry := EducationEntry{Institution: stripped, Degree: stripped}
		if dateMatch != "" {
			entry.StartDate = rangeStart(dateMatch)
			entry.EndDate = rangeEnd(dateMatch)
		}
		entries = append(entries, entry)
	}
	return entries
}

// extractProjects opens a project on each non-bullet line and joins
// subsequent bullet lines into its description.
func extractProjects(section string) []ProjectEntry {
	if strings.TrimSpace(section) == "" {
		return nil
	}

	var projects []ProjectEntry
	var current *ProjectEntry

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 3 {
			continue
		}
		isBullet := bulletLineRe.MatchString(trimmed)

		if !isBullet {
			if current != nil {
				projects = append(projects, *current)
			}
			current = &ProjectEntry{
				Name:  strings.TrimSpace(projectDateRe.ReplaceAllString(trimmed, "")),
				Stack: []string{},
			}
			continue
		}
		if current != nil {
			text := bulletLeadRe.ReplaceAllString(trimmed, "")
			if current.Description != "" {
				current.Description += " " + text
			} else {
				current.Description = text
			}
		}
	}

	if current != nil {
		projects = append(projects, *current)
	}
	return projects
}
