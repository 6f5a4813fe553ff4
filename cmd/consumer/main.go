// rnacentral-references consumer
//
// Registers itself as an available worker, accepts one job at a time from
// the producer over POST /submit-job, and runs the seek_references job body
// against the external literature API.
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
	"github.com/RNAcentral/rnacentral-references/internal/litclient"
	"github.com/RNAcentral/rnacentral-references/internal/notify"
	"github.com/RNAcentral/rnacentral-references/internal/store"
	"github.com/RNAcentral/rnacentral-references/internal/worker"
)

func main() {
	cfg, err := config.LoadConsumer()
	if err != nil {
		slog.Error("consumer: config error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.Info("consumer: connecting to postgres")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("consumer: postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("consumer: connecting to redis")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("consumer: redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	if cfg.Migrate {
		slog.Info("consumer: running schema migration")
		if err := store.Migrate(ctx, pool); err != nil {
			slog.Error("consumer: migration failed", "err", err)
			os.Exit(1)
		}
	}

	st := store.New(pool)
	pub := notify.New(rdb)
	client := litclient.New(cfg.EuropePMC)

	w := worker.New(st, client, pub, cfg.Host, cfg.Port)
	if err := w.Start(ctx); err != nil {
		slog.Error("consumer: registration failed", "err", err)
		os.Exit(1)
	}
	defer w.Stop()

	mux := http.NewServeMux()
	mux.Handle("/", w.Handler())
	mux.HandleFunc("/health", healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("consumer: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("consumer: http server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("consumer: shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("consumer: http shutdown error", "err", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "rnacentral-references-consumer"})
}
