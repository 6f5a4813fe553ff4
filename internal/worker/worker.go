// Package worker implements the consumer process: registration lifecycle,
// the submit-job HTTP handler, and the seek_references job body.
package worker

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/RNAcentral/rnacentral-references/internal/extractor"
	"github.com/RNAcentral/rnacentral-references/internal/litclient"
	"github.com/RNAcentral/rnacentral-references/internal/model"
	"github.com/RNAcentral/rnacentral-references/internal/notify"
	"github.com/RNAcentral/rnacentral-references/internal/store"
)

const (
	defaultSearchLimit = 1_000_000
	fetchPause         = 600 * time.Millisecond
	registerRefresh    = 30 * time.Second
)

// Worker owns one Consumer row and processes at most one job at a time,
// at most one job executes at a time.
type Worker struct {
	store  *store.Store
	client *litclient.Client
	notify *notify.Publisher

	ip   string
	port string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New builds a Worker bound to ip:port. It does not register until Start is
// called.
func New(st *store.Store, client *litclient.Client, pub *notify.Publisher, ip, port string) *Worker {
	return &Worker{store: st, client: client, notify: pub, ip: ip, port: port}
}

// Start registers the consumer row and spawns the background refresh task
// that keeps the registration alive. Cancel ctx (or call Stop) to shut
// down cleanly.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.store.RegisterConsumer(ctx, w.ip, w.port); err != nil {
		return err
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	go w.refreshLoop(refreshCtx)
	return nil
}

// Stop cancels the background refresh task.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *Worker) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(registerRefresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.store.RegisterConsumer(ctx, w.ip, w.port); err != nil {
				slog.Warn("worker: registration refresh failed", "err", err)
			}
		}
	}
}

// SubmitJob handles the body of POST /submit-job: it transitions the
// consumer to busy and the job to started, then spawns seek_references in
// the background. Returns immediately once the
// transitions are persisted.
func (w *Worker) SubmitJob(ctx context.Context, jobID string) error {
	if err := w.store.SetConsumer(ctx, w.ip, model.ConsumerBusy, &jobID); err != nil {
		return err
	}
	if err := w.store.SetJobStatus(ctx, jobID, model.JobStarted); err != nil {
		return err
	}

	lastSearch, err := w.store.GetSearchDate(ctx, jobID)
	if err != nil {
		slog.Error("worker: read search date failed", "job_id", jobID, "err", err)
		lastSearch = nil
	}

	go w.seekReferences(context.Background(), jobID, lastSearch)
	return nil
}

// seekReferences is the job body. Background errors are logged; the
// canonical path never auto-transitions the job to error — the job is left
// `started` on an uncaught failure.
func (w *Worker) seekReferences(ctx context.Context, jobID string, lastSearch *time.Time) {
	query, searchLimit, err := w.store.GetQueryAndLimit(ctx, jobID)
	if err != nil {
		slog.Error("worker: read query/limit failed", "job_id", jobID, "err", err)
		return
	}
	limit := defaultSearchLimit
	if searchLimit != nil {
		limit = *searchLimit
	}

	identifier := jobID
	queryFilter := ""
	if query != nil {
		queryFilter = stripIdentifier(*query, identifier)
	}

	hits, err := w.collectHits(ctx, identifier, queryFilter, lastSearch, limit)
	if err != nil {
		slog.Error("worker: search failed", "job_id", jobID, "err", err)
		return
	}

	incremental := lastSearch != nil && len(hits) > 0
	priorHitCount := 0
	if incremental {
		seen, err := w.store.GetPMCIDInResult(ctx, jobID)
		if err != nil {
			slog.Error("worker: read prior results failed", "job_id", jobID, "err", err)
			return
		}
		priorHitCount, err = w.store.GetHitCount(ctx, jobID)
		if err != nil {
			slog.Error("worker: read prior hit_count failed", "job_id", jobID, "err", err)
			return
		}
		hits = filterSeen(hits, seen)
	}

	hitCount := 0
	for i, h := range hits {
		if i > 0 {
			time.Sleep(fetchPause)
		}

		raw := w.client.FetchFullText(ctx, h.PMCID)
		if raw == nil {
			continue
		}

		article, matched, err := extractor.Extract(identifier, raw)
		if err != nil {
			slog.Warn("worker: extractor error", "pmcid", h.PMCID, "err", err)
			continue
		}
		if !matched {
			continue
		}

		if _, exists, err := w.store.GetPMCID(ctx, h.PMCID); err != nil {
			slog.Error("worker: get pmcid failed", "pmcid", h.PMCID, "err", err)
			continue
		} else if !exists {
			if err := w.store.SaveArticle(ctx, model.Article{
				PMCID:    h.PMCID,
				Title:    article.Title,
				Abstract: article.Abstract,
				Author:   article.Author,
				PMID:     article.PMID,
				DOI:      article.DOI,
				Journal:  article.Journal,
				Type:     article.Type,
				Year:     article.Year,
				Score:    article.Score,
				CitedBy:  h.CitedBy,
			}); err != nil {
				slog.Error("worker: save article failed", "pmcid", h.PMCID, "err", err)
				continue
			}
		}

		resultID, inserted, err := w.store.SaveResult(ctx, model.Result{
			PMCID:        h.PMCID,
			JobID:        jobID,
			IDInTitle:    article.IDInTitle,
			IDInAbstract: article.IDInAbstract,
			IDInBody:     article.IDInBody,
		})
		if err != nil {
			slog.Error("worker: save result failed", "pmcid", h.PMCID, "job_id", jobID, "err", err)
			continue
		}
		if !inserted {
			continue
		}

		if err := w.store.SaveAbstractSentences(ctx, resultID, article.AbstractSentences); err != nil {
			slog.Error("worker: save abstract sentences failed", "result_id", resultID, "err", err)
		}
		if err := w.store.SaveBodySentences(ctx, resultID, flattenBodySentences(article.BodySentences)); err != nil {
			slog.Error("worker: save body sentences failed", "result_id", resultID, "err", err)
		}

		hitCount++
	}

	if incremental {
		hitCount += priorHitCount
	}

	if err := w.store.SaveHitCount(ctx, jobID, hitCount); err != nil {
		slog.Error("worker: save hit_count failed", "job_id", jobID, "err", err)
		return
	}
	if err := w.store.SetJobStatus(ctx, jobID, model.JobSuccess); err != nil {
		slog.Error("worker: set job success failed", "job_id", jobID, "err", err)
		return
	}
	if err := w.store.SetConsumer(ctx, w.ip, model.ConsumerAvailable, nil); err != nil {
		slog.Error("worker: release consumer failed", "err", err)
	}
	w.notify.JobFinished(ctx, jobID, string(model.JobSuccess))
}

// collectHits pages through search until next_cursor is null or the
// accumulated list reaches limit, de-duplicating PMCIDs.
func (w *Worker) collectHits(ctx context.Context, identifier, queryFilter string, since *time.Time, limit int) ([]litclient.Hit, error) {
	query := litclient.BuildQuery(identifier, queryFilter, since)

	seen := make(map[string]bool)
	var out []litclient.Hit
	cursor := "*"
	for {
		hits, next, err := w.client.Search(ctx, query, cursor)
		if err != nil {
			return nil, err
		}
		for _, h := range hits {
			if seen[h.PMCID] {
				continue
			}
			seen[h.PMCID] = true
			out = append(out, h)
			if len(out) >= limit {
				return out, nil
			}
		}
		if next == "" {
			break
		}
		cursor = next
	}
	return out, nil
}

func filterSeen(hits []litclient.Hit, seen []string) []litclient.Hit {
	skip := make(map[string]bool, len(seen))
	for _, p := range seen {
		skip[p] = true
	}
	var out []litclient.Hit
	for _, h := range hits {
		if !skip[h.PMCID] {
			out = append(out, h)
		}
	}
	return out
}

// stripIdentifier removes the identifier itself from a stored query filter,
// since the literature query already embeds it.
func stripIdentifier(query, identifier string) string {
	replaced := strings.ReplaceAll(query, identifier, "")
	return strings.TrimSpace(replaced)
}

func flattenBodySentences(buckets map[model.SectionBucket][]string) []store.BodySentenceInput {
	var out []store.BodySentenceInput
	for bucket, sentences := range buckets {
		for _, s := range sentences {
			out = append(out, store.BodySentenceInput{Sentence: s, Location: bucket})
		}
	}
	return out
}
