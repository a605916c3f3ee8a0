package parse

import (
	"strings"
	"testing"
)

func TestNormalizeInsertsHeadingBreaks(t *testing.T) {
	raw := "John Doe Summary Seasoned engineer shipping backend systems Experience Acme Corp 01/2020 - 02/2021 built APIs"
	got := Normalize(raw)

	if !strings.Contains(got, "\nSummary\n") {
		t.Fatalf("expected Summary on its own line, got:\n%s", got)
	}
	if !strings.Contains(got, "\nExperience\n") {
		t.Fatalf("expected Experience on its own line, got:\n%s", got)
	}
}

func TestNormalizeBulletAndDateBreaks(t *testing.T) {
	raw := "Acme Corp • Built the billing pipeline • Cut costs 01/2020 - 02/2021"
	got := Normalize(raw)

	if strings.Count(got, "\n•") != 2 {
		t.Fatalf("expected two bullet line breaks, got:\n%s", got)
	}
	if !strings.Contains(got, "\n01/2020 -") {
		t.Fatalf("expected newline before date range, got:\n%s", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("a   b\tc\n\n\n\n\nd")
	if strings.Contains(got, "  ") {
		t.Fatalf("expected horizontal whitespace collapsed, got %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("expected newline runs capped at two, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"already\nSummary\nwell formed\nExperience\n01/2020 - 02/2021 Engineer Acme\n• Did X",
		"John Doe Summary Seasoned engineer Experience Acme Corp 01/2020 - 02/2021 • built • shipped",
		"plain paragraph with no structure at all",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalizeStableFromSecondPass(t *testing.T) {
	// A heading directly followed by a date token needs two passes: the
	// first inserts the date newline, the second promotes the heading.
	in := "John Doe seasoned dev Experience 01/2020 - 02/2021 Engineer Acme"

	once := Normalize(in)
	twice := Normalize(once)
	thrice := Normalize(twice)
	if twice != thrice {
		t.Fatalf("normalize not stable after two passes:\ntwice:  %q\nthrice: %q", twice, thrice)
	}
	if !strings.Contains(twice, "\nExperience\n") {
		t.Fatalf("heading not promoted by second pass: %q", twice)
	}
}

func TestNormalizeNeverDropsNonWhitespace(t *testing.T) {
	raw := "Jane Roe Skills Go, SQL Experience Beta LLC 03/2019 - 04/2022"
	got := Normalize(raw)

	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\n' {
				return -1
			}
			return r
		}, s)
	}
	if strip(raw) != strip(got) {
		t.Fatalf("normalize altered non-whitespace content:\nin:  %q\nout: %q", raw, got)
	}
}
