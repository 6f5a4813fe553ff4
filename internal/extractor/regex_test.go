package extractor

import (
	"strings"
	"testing"
)

func TestBuildIdentifierRegexDelimiters(t *testing.T) {
	re := buildIdentifierRegex("URS0000000001")

	matches := []string{
		"urs0000000001 is expressed",
		"(urs0000000001)",
		"\"urs0000000001\"",
		"see urs0000000001.",
		"urs0000000001,",
		"start urs0000000001",
		"urs0000000001",
	}
	for _, m := range matches {
		if !re.MatchString(m) {
			t.Errorf("expected match in %q", m)
		}
	}

	noMatches := []string{
		"urs0000000001a is not it",
		"xurs0000000001",
		"urs00000000012",
	}
	for _, m := range noMatches {
		if re.MatchString(m) {
			t.Errorf("expected no match in %q", m)
		}
	}
}

func TestPreScreen(t *testing.T) {
	raw := []byte("<p>This article discusses <b>URS0000000001_9606</b> in detail.</p>")
	if !PreScreen(raw, "URS0000000001_9606") {
		t.Error("expected pre-screen to find identifier across tag boundary removal")
	}
	if PreScreen(raw, "URS9999999999_9606") {
		t.Error("expected pre-screen miss for absent identifier")
	}
}

func TestSanitizeDropsListedTags(t *testing.T) {
	raw := []byte(`<sec><p>keep this</p><table-wrap><table><tr><td>drop this</td></tr></table></table-wrap></sec>`)
	out := string(Sanitize(raw))
	if strings.Contains(out, "drop this") {
		t.Errorf("expected table-wrap content removed, got %q", out)
	}
	if !strings.Contains(out, "keep this") {
		t.Errorf("expected surrounding content preserved, got %q", out)
	}
}
