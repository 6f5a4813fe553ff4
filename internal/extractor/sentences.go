package extractor

import (
	"regexp"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

func getTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	return tokenizer, tokenizerErr
}

// splitSentences tokenizes text into trimmed, non-empty sentence strings
// using the Punkt-style tokenizer, falling back to splitting at every '.'
// if the tokenizer failed to load.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	tok, err := getTokenizer()
	if err != nil {
		return fallbackSplit(text)
	}
	sents := tok.Tokenize(text)
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		t := strings.TrimSpace(s.Text)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func fallbackSplit(text string) []string {
	parts := strings.Split(text, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// matchingAbstractSentences keeps every sentence whose lower-cased form
// matches the identifier regex.
func matchingAbstractSentences(text string, idRe *regexp.Regexp) []string {
	var out []string
	for _, s := range splitSentences(text) {
		if idRe.MatchString(strings.ToLower(s)) {
			out = append(out, s)
		}
	}
	return out
}

// bodySentenceWindows tokenizes text into sentences and, for every sentence
// matching the identifier regex with more than three whitespace-delimited
// tokens, emits a context window of predecessor+match+successor joined by a
// space.
func bodySentenceWindows(text string, idRe *regexp.Regexp) []string {
	all := splitSentences(text)
	var out []string
	for i, s := range all {
		if countTokens(s) <= 3 {
			continue
		}
		if !idRe.MatchString(strings.ToLower(s)) {
			continue
		}
		var window []string
		if i > 0 {
			window = append(window, all[i-1])
		}
		window = append(window, s)
		if i < len(all)-1 {
			window = append(window, all[i+1])
		}
		out = append(out, strings.Join(window, " "))
	}
	return out
}
