// Package extractor implements the article extraction pass: given raw
// full-text XML and a job identifier, it decides whether the identifier is
// actually discussed in the article and, if so, produces the structured
// record the consumer worker persists.
package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// Extract runs the full pipeline for one article. A false second return
// means the article was skipped (pre-screen miss, language filter, or
// missing title) and no error occurred.
func Extract(identifier string, raw []byte) (*model.ExtractedArticle, bool, error) {
	idRe := buildIdentifierRegex(identifier)
	lowerID := strings.ToLower(identifier)

	if !PreScreen(raw, identifier) {
		return nil, false, nil
	}

	sanitized := Sanitize(raw)
	doc, err := xmlquery.Parse(bytes.NewReader(sanitized))
	if err != nil {
		return nil, false, fmt.Errorf("extractor: parse: %w", err)
	}

	if hasTransTitleGroup(doc) {
		return nil, false, nil
	}

	title := extractTitle(doc)
	if title == "" {
		return nil, false, nil
	}

	abstractText := extractAbstractText(doc)
	abstractSentences := matchingAbstractSentences(abstractText, idRe)

	bodySentences := make(map[model.SectionBucket][]string)
	for _, sec := range xmlquery.Find(doc, "//body/sec") {
		bucket := sectionOf(sec)
		text := collectParagraphText(sec)
		if text == "" {
			continue
		}
		windows := bodySentenceWindows(text, idRe)
		if len(windows) == 0 {
			continue
		}
		bodySentences[bucket] = append(bodySentences[bucket], windows...)
	}

	idInTitle := idRe.MatchString(strings.ToLower(title))
	idInAbstract := len(abstractSentences) > 0
	idInBody := anyBucketNonEmpty(bodySentences)

	if !idInAbstract && !idInBody {
		bodySentences[model.SectionOther] = append(
			bodySentences[model.SectionOther],
			fmt.Sprintf("%s found in an image, table or supplementary material", lowerID),
		)
		idInBody = true
	}

	meta := extractArticleMeta(doc)

	score := len(abstractSentences)
	for _, s := range bodySentences {
		score += len(s)
	}

	article := &model.ExtractedArticle{
		Title:             title,
		Abstract:          abstractText,
		Author:            meta.Author,
		PMID:              meta.PMID,
		DOI:               meta.DOI,
		Journal:           meta.Journal,
		Type:              meta.Type,
		Year:              meta.Year,
		Score:             score,
		IDInTitle:         idInTitle,
		IDInAbstract:      idInAbstract,
		IDInBody:          idInBody,
		AbstractSentences: abstractSentences,
		BodySentences:     bodySentences,
	}
	return article, true, nil
}

func anyBucketNonEmpty(m map[model.SectionBucket][]string) bool {
	for _, s := range m {
		if len(s) > 0 {
			return true
		}
	}
	return false
}
