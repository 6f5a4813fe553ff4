package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgxpool.Pool with the litscan-specific operations shared by
// the producer and consumer processes. Methods are grouped across jobs.go,
// consumers.go, articles.go, results.go, metadata.go, and classifier.go.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for callers that need direct SELECTs
// beyond this package's curated surface.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }
