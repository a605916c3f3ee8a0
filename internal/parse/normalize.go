package parse

import (
	"regexp"
	"strings"
)

// Heading phrases that get forced onto their own line, in match order.
// Longer phrases come before their shorter substrings ("Technical Skills"
// before "Skills") so the longer form wins.
var headingPhrases = []string{
	"Summary", "Objective", "Profile", "About Me",
	"Education", "Academic",
	"Technical Skills", "Skills", "Core Competencies", "Technologies",
	"Professional Experience", "Work Experience", "Experience", "Work History", "Employment",
	"Personal Projects", "Projects",
	"Certifications", "Licenses",
	"Achievements", "Awards", "Honors",
	"References",
}

var (
	hspaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
	inlineBullet  = regexp.MustCompile(` ([•·▪■]) `)
	inlineDateRe  = regexp.MustCompile(`\s+(\d{1,2}/\d{4}\s*[-–—])`)
	multiNewline  = regexp.MustCompile("\n{3,}")
	headingBreaks = compileHeadingBreaks()
)

func compileHeadingBreaks() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(headingPhrases))
	for _, h := range headingPhrases {
		// A heading appearing mid-line: some non-whitespace char, a run of
		// spaces, the phrase, then a newline, capital letter, bullet, dash,
		// or end of text. Already line-leading headings are left alone so a
		// promoted heading is not touched again.
		re := regexp.MustCompile(`(?i)([^\s])([ \t]+)(` + regexp.QuoteMeta(h) + `)[ \t]*(\n|[A-Z]|[•·-]|$)`)
		out = append(out, re)
	}
	return out
}

// Normalize repairs line-break structure in text extracted from binary
// document formats. PDF extraction in particular tends to join whole pages
// into one run-on line, which breaks every downstream line-oriented
// heuristic. No characters are removed beyond whitespace collapsing.
//
// Known limitations: a heading word inside running prose ("continuing
// education credits") can be promoted to its own line; section splitting
// tolerates the occasional misfire. And when a heading is directly followed
// by a date token ("Experience 01/2020 - ..."), one pass inserts the date
// newline and only the next pass promotes the heading, so the output is
// stable from the second application on rather than strictly idempotent.
func Normalize(raw string) string {
	t := hspaceRunRe.ReplaceAllString(raw, " ")

	for _, re := range headingBreaks {
		t = re.ReplaceAllString(t, "${1}\n${3}\n${4}")
	}

	t = inlineBullet.ReplaceAllString(t, "\n${1} ")
	t = inlineDateRe.ReplaceAllString(t, "\n${1}")
	t = multiNewline.ReplaceAllString(t, "\n\n")

	return strings.TrimSpace(t)
}
