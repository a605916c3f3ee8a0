package parse

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Roe
jane.roe@example.com
(555) 123-4567
linkedin.com/in/janeroe

Summary
Backend engineer with six years building payment systems.

Skills
Languages: Go, Python, SQL
Tools: Docker, Kubernetes

Experience
01/2020 - 02/2021 Senior Engineer  Acme Corp  Denver
• Cut checkout latency by 45%
• Led a team of 4 engineers
03/2021 - Present Staff Engineer  Beta LLC
• Shipped the billing pipeline

Education
B.S. Computer Science, State University 2012 - 2016

Certifications
AWS Solutions Architect

Achievements
Hackathon winner 2019`

func TestExtractFieldsContact(t *testing.T) {
	r := ExtractFields(sampleResume)

	if r.Name != "Jane Roe" {
		t.Fatalf("name: got %q", r.Name)
	}
	if r.Email != "jane.roe@example.com" {
		t.Fatalf("email: got %q", r.Email)
	}
	if r.Phone == "" {
		t.Fatalf("expected phone to be detected")
	}
	if r.LinkedInURL != "linkedin.com/in/janeroe" {
		t.Fatalf("linkedin: got %q", r.LinkedInURL)
	}
	if len(r.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", r.Warnings)
	}
}

func TestExtractFieldsSkillsSection(t *testing.T) {
	r := ExtractFields(sampleResume)

	want := []string{"Go", "Python", "SQL", "Docker", "Kubernetes"}
	if len(r.Skills) != len(want) {
		t.Fatalf("skills: got %v", r.Skills)
	}
	for i, s := range want {
		if r.Skills[i] != s {
			t.Fatalf("skills[%d]: got %q want %q (all: %v)", i, r.Skills[i], s, r.Skills)
		}
	}
}

func TestExtractFieldsSkillsDedupCaseInsensitive(t *testing.T) {
	r := ExtractFields("Jane Roe\n\nSkills\nPython, python, PYTHON")

	count := 0
	for _, s := range r.Skills {
		if strings.EqualFold(s, "python") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one python entry, got %v", r.Skills)
	}
}

func TestExtractFieldsSkillsVocabularyFallback(t *testing.T) {
	// No skills section; fewer than three parsed skills triggers the
	// vocabulary scan over the whole text.
	r := ExtractFields("Jane Roe\nBuilt services with Docker and PostgreSQL, deployed on AWS.")

	found := map[string]bool{}
	for _, s := range r.Skills {
		found[strings.ToLower(s)] = true
	}
	for _, want := range []string{"docker", "postgresql", "aws"} {
		if !found[want] {
			t.Fatalf("expected %q in fallback skills, got %v", want, r.Skills)
		}
	}
}

func TestExtractFieldsEmptyInput(t *testing.T) {
	r := ExtractFields("")

	if r.Name != "" || r.Email != "" {
		t.Fatalf("expected empty name and email, got %q %q", r.Name, r.Email)
	}
	if len(r.Skills) != 0 || len(r.Experience) != 0 {
		t.Fatalf("expected no skills or experience, got %v %v", r.Skills, r.Experience)
	}
	if len(r.Warnings) < 4 {
		t.Fatalf("expected at least 4 warnings, got %v", r.Warnings)
	}
}

func TestExtractFieldsSummaryTruncated(t *testing.T) {
	long := strings.Repeat("words and more words ", 60)
	r := ExtractFields("Jane Roe\n\nSummary\n" + long)

	if len([]rune(r.Summary)) > 500 {
		t.Fatalf("summary exceeds 500 chars: %d", len([]rune(r.Summary)))
	}
}

func TestExtractFieldsListsAndRawText(t *testing.T) {
	r := ExtractFields(sampleResume)

	if len(r.Certifications) != 1 || r.Certifications[0] != "AWS Solutions Architect" {
		t.Fatalf("certifications: got %v", r.Certifications)
	}
	if len(r.Achievements) != 1 || r.Achievements[0] != "Hackathon winner 2019" {
		t.Fatalf("achievements: got %v", r.Achievements)
	}
	if r.RawText != sampleResume {
		t.Fatal("rawText must be the unmodified input")
	}
}

func TestDetectWebsiteSkipsLinkedInAndMailHosts(t *testing.T) {
	got := detectWebsite("linkedin.com/in/janeroe jane@gmail.com https://janeroe.dev/portfolio")
	if !strings.Contains(got, "janeroe.dev") {
		t.Fatalf("expected personal site, got %q", got)
	}
}
