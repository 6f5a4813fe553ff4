package extractor

import "regexp"

// tagStripRegex strips all XML/HTML tags, non-greedy, for the pre-screen
// flat-text pass.
var tagStripRegex = regexp.MustCompile(`<.*?>`)

// sanitizeTags are the element names whose bodies are dropped wholesale
// before parsing — figure/table captions and supplementary blocks that
// inflate noise.
var sanitizeTags = []string{
	"counts", "table-wrap", "table", "fig-group", "fig", "supplementary-material",
}

// buildSanitizeRegex compiles a case-insensitive, dot-matches-newline regex
// that matches a full <tag ...>...</tag> element body for the given tag
// name. Go's RE2 engine has no backreferences, so each tag gets its own
// compiled pattern instead of a single \1-backreferenced one.
func buildSanitizeRegex(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + tag + `\b[^>]*>.*?</` + tag + `>`)
}

var sanitizeRegexes = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(sanitizeTags))
	for i, tag := range sanitizeTags {
		out[i] = buildSanitizeRegex(tag)
	}
	return out
}()

// buildIdentifierRegex returns the canonical identifier-matching regex: a
// word-boundary-like delimiter on the left from
// {start-of-string, whitespace, '(', '"', ''', '“', ';'} and on the right
// from {end-of-string, whitespace, '.', ',', ':', ';', '?', ''', '"', '”',
// '/', ')'}, applied case-insensitively against the lower-cased identifier.
func buildIdentifierRegex(identifier string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(identifier)
	pattern := `(?i)(^|[\s("'“;])` + escaped + `($|[\s.,:;?'"”/)])`
	return regexp.MustCompile(pattern)
}

// sectionTitleRules assigns a title's lower-cased text to a section bucket,
// checked in order. The first match wins.
var sectionTitleRules = []struct {
	re     *regexp.Regexp
	bucket string
}{
	{regexp.MustCompile(`intro.+`), "intro"},
	{regexp.MustCompile(`results`), "results"},
	{regexp.MustCompile(`discussion`), "discussion"},
	{regexp.MustCompile(`conclusion`), "conclusion"},
	{regexp.MustCompile(`method.+`), "method"},
}
