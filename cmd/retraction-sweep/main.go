// rnacentral-references retraction-sweep
//
// One-shot batch pass: checks every article not yet marked retracted against EuropePMC's
// status-update feed and marks newly-retracted PMCIDs. Intended to be run
// periodically out-of-band, not as a long-lived service.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/RNAcentral/rnacentral-references/internal/config"
	"github.com/RNAcentral/rnacentral-references/internal/db"
	"github.com/RNAcentral/rnacentral-references/internal/litclient"
	"github.com/RNAcentral/rnacentral-references/internal/store"
)

const (
	batchSize     = 30
	batchInterval = 300 * time.Millisecond
)

func main() {
	cfg, err := config.LoadRetractionSweep()
	if err != nil {
		slog.Error("retraction-sweep: config error", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("retraction-sweep: postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool)
	client := litclient.New(cfg.EuropePMC)

	pmcids, err := st.GetAllPMCID(ctx)
	if err != nil {
		slog.Error("retraction-sweep: failed to list articles", "err", err)
		os.Exit(1)
	}

	slog.Info("retraction-sweep: starting pass", "article_count", len(pmcids))

	var totalRetracted int
	for i := 0; i < len(pmcids); i += batchSize {
		end := i + batchSize
		if end > len(pmcids) {
			end = len(pmcids)
		}
		batch := pmcids[i:end]

		retracted, err := client.CheckRetractions(ctx, batch)
		if err != nil {
			slog.Error("retraction-sweep: status check failed", "err", err, "batch_start", i)
			continue
		}
		if len(retracted) > 0 {
			if err := st.MarkRetracted(ctx, retracted); err != nil {
				slog.Error("retraction-sweep: failed to mark retracted", "err", err, "pmcids", retracted)
				continue
			}
			totalRetracted += len(retracted)
			slog.Info("retraction-sweep: marked retracted", "pmcids", retracted)
		}

		if end < len(pmcids) {
			time.Sleep(batchInterval)
		}
	}

	slog.Info("retraction-sweep: pass complete", "newly_retracted", totalRetracted)
}
