package parse

import (
	"regexp"
	"sort"
	"strings"
)

// SectionHeader is the canonical key for the implicit text before the first
// recognized heading; name detection reads from it.
const SectionHeader = "header"

type sectionPattern struct {
	key string
	re  *regexp.Regexp
}

// Ordered heading patterns. Only the first occurrence of each heading counts:
// a second "Experience" heading later in the document is swallowed into the
// first section's body rather than opening a new one.
var sectionPatterns = []sectionPattern{
	{"summary", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:summary|objective|profile|about\s+me)[ \t]*(?:\n|$)`)},
	{"education", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:education|academic|qualifications?)[ \t]*(?:\n|$)`)},
	{"skills", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:(?:technical\s+)?skills|core\s+competencies|technologies)[ \t]*(?:\n|$)`)},
	{"experience", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:(?:professional\s+|work\s+)?experience|work\s+history|employment)[ \t]*(?:\n|$)`)},
	{"projects", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:(?:personal\s+|side\s+)?projects)[ \t]*(?:\n|$)`)},
	{"certifications", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:certifications?|licenses?)[ \t]*(?:\n|$)`)},
	{"achievements", regexp.MustCompile(`(?i)(?:^|\n)[ \t]*(?:achievements?|awards?|honors?)[ \t]*(?:\n|$)`)},
}

// SplitSections partitions normalized text into named section bodies. A
// heading that never matches simply leaves that section absent from the map;
// everything before the first matched heading becomes the "header" section.
func SplitSections(text string) map[string]string {
	type hit struct {
		key        string
		start, end int
	}

	hits := make([]hit, 0, len(sectionPatterns))
	for _, sp := range sectionPatterns {
		if loc := sp.re.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{key: sp.key, start: loc[0], end: loc[1]})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	sections := map[string]string{SectionHeader: ""}
	if len(hits) == 0 {
		sections[SectionHeader] = text
		return sections
	}

	sections[SectionHeader] = strings.TrimSpace(text[:hits[0].start])
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		sections[h.key] = strings.TrimSpace(text[h.end:end])
	}
	return sections
}
