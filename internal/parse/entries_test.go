package parse

import "testing"

func TestExtractExperienceEntryBoundaries(t *testing.T) {
	section := "01/2020 - 02/2021 Engineer Acme\n• Did X\n03/2021 - Present Lead Beta\n• Did Y"

	entries := extractExperience(section)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}

	first, second := entries[0], entries[1]
	if first.StartDate != "01/2020" || first.EndDate != "02/2021" {
		t.Fatalf("first entry dates: %q - %q", first.StartDate, first.EndDate)
	}
	if len(first.Bullets) != 1 || first.Bullets[0] != "Did X" {
		t.Fatalf("first entry bullets: %v", first.Bullets)
	}
	if second.StartDate != "03/2021" || second.EndDate != "Present" {
		t.Fatalf("second entry dates: %q - %q", second.StartDate, second.EndDate)
	}
	if len(second.Bullets) != 1 || second.Bullets[0] != "Did Y" {
		t.Fatalf("second entry bullets: %v", second.Bullets)
	}
}

func TestExtractExperienceSegmentsOnPipes(t *testing.T) {
	section := "01/2020 - 02/2021 Senior Engineer | Acme Corp | Denver\n• Built things"

	entries := extractExperience(section)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Title != "Senior Engineer" || e.Company != "Acme Corp" || e.Location != "Denver" {
		t.Fatalf("unexpected segmentation: %+v", e)
	}
}

func TestExtractExperienceDatelessHeader(t *testing.T) {
	section := "Acme Corporation\n• Did something useful here"

	entries := extractExperience(section)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Company != "Acme Corporation" || e.Title != "Acme Corporation" {
		t.Fatalf("dateless header should seed title and company: %+v", e)
	}
	if e.StartDate != "" || e.EndDate != "" {
		t.Fatalf("dateless entry should have empty dates: %+v", e)
	}
	if len(e.Bullets) != 1 {
		t.Fatalf("bullets: %v", e.Bullets)
	}
}

func TestExtractExperienceContinuationLines(t *testing.T) {
	section := "01/2020 - 02/2021 Engineer Acme\nPayments platform team\n• Did X"

	entries := extractExperience(section)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Bullets) != 2 {
		t.Fatalf("continuation line should join bullets: %v", entries[0].Bullets)
	}
}

func TestExtractExperienceMonthNameRanges(t *testing.T) {
	section := "Jan 2024 - Mar 2025 Engineer Acme\n• Did X"

	entries := extractExperience(section)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].StartDate == "" || entries[0].EndDate == "" {
		t.Fatalf("expected month-name dates parsed: %+v", entries[0])
	}
}

func TestExtractEducation(t *testing.T) {
	section := "B.S. Computer Science, State University 2012 - 2016\nHonors: cum laude"

	entries := extractEducation(section)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.StartDate != "2012" || e.EndDate != "2016" {
		t.Fatalf("dates: %q - %q", e.StartDate, e.EndDate)
	}
	if e.Institution != e.Degree {
		t.Fatalf("institution and degree should carry the same stripped line: %+v", e)
	}
	if e.Institution == "" || yearRangeRe.MatchString(e.Institution) {
		t.Fatalf("year range should be stripped: %q", e.Institution)
	}
}

func TestExtractEducationFallbackFirstLine(t *testing.T) {
	section := "State University, Computer Science"

	entries := extractEducation(section)
	if len(entries) != 1 {
		t.Fatalf("a degree-less first line should still open an entry, got %+v", entries)
	}
}

func TestExtractProjects(t *testing.T) {
	section := "Inventory Tracker 01/2020 - 03/2020\n• CLI for warehouse counts\n• Synced nightly to Postgres\nSide Scroller\n• Small game in Go"

	projects := extractProjects(section)
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d: %+v", len(projects), projects)
	}
	if projects[0].Name != "Inventory Tracker" {
		t.Fatalf("date range should be stripped from name: %q", projects[0].Name)
	}
	if projects[0].Description != "CLI for warehouse counts Synced nightly to Postgres" {
		t.Fatalf("bullets should be space-joined: %q", projects[0].Description)
	}
	if len(projects[1].Stack) != 0 {
		t.Fatalf("stack stays empty: %+v", projects[1])
	}
}
