// Package classifier implements the relevance-classifier batch pass: clean
// each article's abstract, run inference, and persist the verdict.
package classifier

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/RNAcentral/rnacentral-references/internal/store"
)

const (
	fetchRetries = 3
	retryBackoff = 2 * time.Second
)

var (
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	bracketRe = regexp.MustCompile(`\[[^\]]*\]`)
	urlRe     = regexp.MustCompile(`https?://\S+`)
)

// Model runs relevance inference over a cleaned abstract, returning whether
// the article is RNA-related and the model's confidence.
type Model interface {
	Predict(abstract string) (rnaRelated bool, probability float64)
}

// Runner drives one paged batch pass over the Store.
type Runner struct {
	store     *store.Store
	model     Model
	batchSize int
}

// New builds a Runner.
func New(st *store.Store, model Model, batchSize int) *Runner {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Runner{store: st, model: model, batchSize: batchSize}
}

// Run processes every non-retracted article once, in pmcid order. Each page
// fetch is attempted up to fetchRetries times in total, with a fixed backoff;
// individual update failures are logged and do not abort the pass.
func (r *Runner) Run(ctx context.Context) error {
	after := ""
	for {
		pmcids, abstracts, err := r.fetchPage(ctx, after)
		if err != nil {
			return err
		}
		if len(pmcids) == 0 {
			return nil
		}

		for i, pmcid := range pmcids {
			cleaned := CleanAbstract(abstracts[i])
			rnaRelated, probability := r.model.Predict(cleaned)
			probability = roundTo2DP(probability)

			if err := r.store.UpdateClassification(ctx, pmcid, rnaRelated, probability); err != nil {
				slog.Error("classifier: update failed", "pmcid", pmcid, "err", err)
				continue
			}
		}

		after = pmcids[len(pmcids)-1]
	}
}

func (r *Runner) fetchPage(ctx context.Context, after string) ([]string, []string, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchRetries; attempt++ {
		pmcids, abstracts, err := r.store.GetArticlesForClassification(ctx, after, r.batchSize)
		if err == nil {
			return pmcids, abstracts, nil
		}
		lastErr = err
		slog.Warn("classifier: fetch page failed, retrying", "attempt", attempt, "err", err)
		if attempt < fetchRetries {
			time.Sleep(retryBackoff)
		}
	}
	return nil, nil, lastErr
}

// CleanAbstract lowercases, strips HTML tags, bracketed notes, and URLs,
// then collapses whitespace.
func CleanAbstract(abstract string) string {
	s := strings.ToLower(abstract)
	s = tagRe.ReplaceAllString(s, " ")
	s = bracketRe.ReplaceAllString(s, " ")
	s = urlRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func roundTo2DP(p float64) float64 {
	return math.Round(p*100) / 100
}
