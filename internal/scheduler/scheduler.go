// Package scheduler wires up the cron job that periodically pairs pending
// jobs with idle consumers and dispatches them.
package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/RNAcentral/rnacentral-references/internal/model"
	"github.com/RNAcentral/rnacentral-references/internal/notify"
	"github.com/RNAcentral/rnacentral-references/internal/store"
)

const dispatchTimeout = 10 * time.Second

// Scheduler wraps robfig/cron and runs the fixed-period dispatch tick.
type Scheduler struct {
	cron   *cron.Cron
	store  *store.Store
	notify *notify.Publisher
	http   *http.Client
	spec   string // cron spec, e.g. "@every 3500ms"
}

// New creates a Scheduler that ticks on spec (a robfig/cron expression).
func New(st *store.Store, pub *notify.Publisher, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		store:  st,
		notify: pub,
		http:   &http.Client{Timeout: dispatchTimeout},
		spec:   spec,
	}
}

// Start registers the dispatch tick and starts the cron runtime.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: cron.AddFunc: %w", err)
	}
	s.cron.Start()
	slog.Info("scheduler: started", "spec", s.spec)
	return nil
}

// Stop halts the cron runtime and waits for any in-flight tick to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	slog.Info("scheduler: stopped")
}

// tick is one dispatch iteration: pair the 8 oldest pending jobs against all
// idle consumers and dispatch one-to-one.
func (s *Scheduler) tick(ctx context.Context) {
	jobs, err := s.store.FindJobsToRun(ctx)
	if err != nil {
		slog.Error("scheduler: find jobs to run failed", "err", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	consumers, err := s.store.FindAvailableConsumers(ctx)
	if err != nil {
		slog.Error("scheduler: find available consumers failed", "err", err)
		return
	}

	n := len(jobs)
	if len(consumers) < n {
		n = len(consumers)
	}
	for i := 0; i < n; i++ {
		s.dispatch(ctx, consumers[i], jobs[i])
	}
}

// dispatch issues a single-attempt HTTP POST to the consumer's /submit-job.
// Connection errors, non-2xx responses, and timeouts are logged and
// swallowed — the job stays pending for the next tick.
func (s *Scheduler) dispatch(ctx context.Context, consumer model.Consumer, job model.Job) {
	body, err := json.Marshal(map[string]string{"job_id": job.JobID})
	if err != nil {
		slog.Error("scheduler: marshal dispatch body failed", "job_id", job.JobID, "err", err)
		return
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s:%s/submit-job", consumer.IP, consumer.Port)
	req, err := http.NewRequestWithContext(dispatchCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		slog.Error("scheduler: build dispatch request failed", "job_id", job.JobID, "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Warn("scheduler: dispatch transport error", "job_id", job.JobID, "consumer", consumer.IP, "err", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("scheduler: dispatch non-2xx", "job_id", job.JobID, "consumer", consumer.IP, "status", resp.StatusCode)
		return
	}

	s.notify.JobDispatched(ctx, job.JobID)
}
