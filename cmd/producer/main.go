// rnacentral-references producer
//
// Accepts job submissions over HTTP, periodically pairs the oldest pending
// jobs with idle consumers, and dispatches them. Also exposes GET
// /api/results/{job_id} and GET /api/hit_count for downstream readers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RNAcentral/rnacentral-references/internal/config"
	"github.com/RNAcentral/rnacentral-references/internal/db"
	"github.com/RNAcentral/rnacentral-references/internal/notify"
	"github.com/RNAcentral/rnacentral-references/internal/scheduler"
	"github.com/RNAcentral/rnacentral-references/internal/store"
	"github.com/RNAcentral/rnacentral-references/internal/submitapi"
)

func main() {
	cfg, err := config.LoadProducer()
	if err != nil {
		slog.Error("producer: config error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.Info("producer: connecting to postgres")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("producer: postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("producer: connecting to redis")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("producer: redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	if cfg.Migrate {
		slog.Info("producer: running schema migration")
		if err := store.Migrate(ctx, pool); err != nil {
			slog.Error("producer: migration failed", "err", err)
			os.Exit(1)
		}
	}

	st := store.New(pool)
	pub := notify.New(rdb)

	sched := scheduler.New(st, pub, cfg.DispatchPeriod)
	if err := sched.Start(ctx); err != nil {
		slog.Error("producer: scheduler start failed", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	api := submitapi.New(st)
	mux := http.NewServeMux()
	mux.Handle("/", api.Handler())
	mux.HandleFunc("/health", healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("producer: listening", "addr", srv.Addr, "dispatch_period", cfg.DispatchPeriod)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("producer: http server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("producer: shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("producer: http shutdown error", "err", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "rnacentral-references-producer"})
}
