// rnacentral-references classifier
//
// One-shot batch pass: scores every non-retracted article's abstract for
// RNA relevance and persists the verdict. Intended to be run periodically
// out-of-band (cron, k8s CronJob) rather than as a long-lived service.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/RNAcentral/rnacentral-references/internal/classifier"
	"github.com/RNAcentral/rnacentral-references/internal/config"
	"github.com/RNAcentral/rnacentral-references/internal/db"
	"github.com/RNAcentral/rnacentral-references/internal/store"
)

func main() {
	cfg, err := config.LoadClassifier()
	if err != nil {
		slog.Error("classifier: config error", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("classifier: postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool)
	runner := classifier.New(st, classifier.StubModel{}, cfg.BatchSize)

	slog.Info("classifier: starting pass", "batch_size", cfg.BatchSize)
	if err := runner.Run(ctx); err != nil {
		slog.Error("classifier: pass failed", "err", err)
		os.Exit(1)
	}
	slog.Info("classifier: pass complete")
}
