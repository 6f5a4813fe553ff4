package extractor

import "strings"

// PreScreen strips all tags from raw, lower-cases the remainder, and tests
// the identifier regex against the flat text. A false result means the
// article must be skipped before any XML parsing is attempted.
func PreScreen(raw []byte, identifier string) bool {
	flat := strings.ToLower(tagStripRegex.ReplaceAllString(string(raw), " "))
	return buildIdentifierRegex(identifier).MatchString(flat)
}

// Sanitize drops the body of every element listed in sanitizeTags before the
// document is parsed, removing figure/table captions and supplementary
// blocks that would otherwise pollute section text.
func Sanitize(raw []byte) []byte {
	out := raw
	for _, re := range sanitizeRegexes {
		out = re.ReplaceAll(out, nil)
	}
	return out
}
