package extractor

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// avoidSet holds the element names skipped (along with their whole subtree)
// while collecting paragraph text. Elements are compared by their local
// name (xmlquery keeps a namespace prefix in Node.Prefix, apart from
// Node.Data), so the bare MathML names also match "mml:"-prefixed elements;
// the "mml:"-prefixed names are listed as well.
var avoidSet = buildAvoidSet()

func buildAvoidSet() map[string]bool {
	names := []string{
		"xref", "ext-link", "media", "caption", "monospace", "label",
		"disp-formula", "inline-formula", "inline-graphic", "def", "def-list",
		"def-item", "term", "funding-source", "award-id", "graphic",
		"alternatives", "tex-math", "sec-meta", "kwd-group", "kwd", "object-id",
	}
	mathml := []string{
		"math", "semantics", "annotation", "annotation-xml", "mrow", "mi", "mn",
		"mo", "mtext", "mspace", "ms", "mglyph", "msub", "msup", "msubsup",
		"munder", "mover", "munderover", "mmultiscripts", "mfrac", "msqrt",
		"mroot", "mtable", "mtr", "mtd", "mlabeledtr", "menclose", "mfenced",
		"mpadded", "mphantom", "mstyle", "merror", "maction",
	}
	set := make(map[string]bool, len(names)+len(mathml)*2)
	for _, n := range names {
		set[n] = true
	}
	for _, n := range mathml {
		set[n] = true
		set["mml:"+n] = true
	}
	return set
}

// sectionOf classifies a body/sec element's title text into a bucket,
// following the ordered title rules. Sections with no title, or no rule
// match, fall into SectionOther.
func sectionOf(sec *xmlquery.Node) model.SectionBucket {
	title := xmlquery.FindOne(sec, "title")
	if title == nil {
		return model.SectionOther
	}
	text := strings.ToLower(strings.TrimSpace(title.InnerText()))
	if text == "" {
		return model.SectionOther
	}
	for _, rule := range sectionTitleRules {
		if rule.re.MatchString(text) {
			return model.SectionBucket(rule.bucket)
		}
	}
	return model.SectionOther
}

// collectParagraphText walks every <p> descendant of sec, concatenating
// text while skipping subtrees whose root tag is in avoidSet. Paragraphs of
// one token or fewer after whitespace collapse are discarded.
func collectParagraphText(sec *xmlquery.Node) string {
	var out []string
	for _, p := range xmlquery.Find(sec, ".//p") {
		text := collapseWhitespace(collectText(p))
		if countTokens(text) <= 1 {
			continue
		}
		out = append(out, text)
	}
	return strings.Join(out, " ")
}

// collectText concatenates the text of n and its descendants, skipping any
// element subtree whose tag is in avoidSet.
func collectText(n *xmlquery.Node) string {
	var sb strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(node *xmlquery.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode:
				sb.WriteString(c.Data)
				sb.WriteString(" ")
			case xmlquery.ElementNode:
				if avoidSet[c.Data] {
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countTokens(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Fields(s))
}
