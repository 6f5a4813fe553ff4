package extractor

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// abstractExcludedTypes are the abstract @abstract-type / @specific-use
// values that disqualify an <abstract> element from contributing to the
// matched abstract text.
var abstractExcludedTypes = map[string]bool{
	"teaser": true, "web-summary": true, "summary": true, "precis": true,
	"graphical": true, "author-highlights": true,
}

// extractTitle reads front/article-meta/title-group/article-title and
// concatenates its descendant text. Returns "" if absent.
func extractTitle(doc *xmlquery.Node) string {
	n := xmlquery.FindOne(doc, "//front/article-meta/title-group/article-title")
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.InnerText())
}

// hasTransTitleGroup reports whether the article carries a translated
// title group, the language-filter signal for "not in English".
func hasTransTitleGroup(doc *xmlquery.Node) bool {
	return xmlquery.FindOne(doc, "//front/article-meta/title-group/trans-title-group") != nil
}

// extractAbstractText concatenates the descendant text of every qualifying
// <abstract> element.
func extractAbstractText(doc *xmlquery.Node) string {
	var parts []string
	for _, a := range xmlquery.Find(doc, "//abstract") {
		if abstractExcludedTypes[attrValue(a, "abstract-type")] {
			continue
		}
		if abstractExcludedTypes[attrValue(a, "specific-use")] {
			continue
		}
		text := strings.TrimSpace(a.InnerText())
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func attrValue(n *xmlquery.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Name.Local == name {
			return strings.ToLower(attr.Value)
		}
	}
	return ""
}

// findText runs a relative XPath expression against n and returns the
// matched node's concatenated descendant text, or "" if nothing matched.
func findText(n *xmlquery.Node, expr string) string {
	m := xmlquery.FindOne(n, expr)
	if m == nil {
		return ""
	}
	return m.InnerText()
}

// articleMeta collects the bibliographic fields of an article: type,
// authors, external ids, publication year, and journal name.
type articleMeta struct {
	Type    string
	Author  string
	PMID    string
	DOI     string
	Year    *int
	Journal string
}

func extractArticleMeta(doc *xmlquery.Node) articleMeta {
	var m articleMeta

	if root := xmlquery.FindOne(doc, "//article"); root != nil {
		m.Type = titleCaseHyphenated(attrValue(root, "article-type"))
	}

	var authors []string
	for _, name := range xmlquery.Find(doc, "//front/article-meta/contrib-group//name") {
		surname := strings.TrimSpace(findText(name, "surname"))
		given := strings.TrimSpace(findText(name, "given-names"))
		switch {
		case surname != "" && given != "":
			authors = append(authors, surname+", "+given)
		case surname != "":
			authors = append(authors, surname)
		}
	}
	m.Author = strings.Join(authors, "; ")

	for _, id := range xmlquery.Find(doc, "//front/article-meta/article-id") {
		switch attrValue(id, "pub-id-type") {
		case "pmid":
			m.PMID = strings.TrimSpace(id.InnerText())
		case "doi":
			m.DOI = strings.TrimSpace(id.InnerText())
		}
	}

	for _, pd := range xmlquery.Find(doc, "//front/article-meta/pub-date") {
		t := attrValue(pd, "pub-type")
		if t == "" {
			t = attrValue(pd, "date-type")
		}
		if t == "epub" || t == "ppub" || t == "pub" {
			if y := findText(pd, "year"); y != "" {
				if year, err := strconv.Atoi(strings.TrimSpace(y)); err == nil {
					m.Year = &year
					break
				}
			}
		}
	}

	if j := findText(doc, "//journal-title-group/journal-title"); j != "" {
		m.Journal = strings.TrimSpace(j)
	} else {
		m.Journal = strings.TrimSpace(findText(doc, "//journal-meta/journal-title"))
	}

	return m
}

// titleCaseHyphenated normalizes "research-article" to "Research Article".
func titleCaseHyphenated(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ReplaceAll(s, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
