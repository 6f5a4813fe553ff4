// Package store implements the durable job/consumer/article state shared by
// the producer and consumer processes. All operations are
// asynchronous-over-a-pool (pgxpool already multiplexes network I/O) and
// surface exactly two error kinds: ConnectionError for transport failures
// and QueryError for everything else SQL-side. Uniqueness violations on
// consumer registration, metadata dedup, and Result (pmcid, job_id) are the
// store's concurrency-control primitive and are swallowed by the callers in
// this package, not raised as errors.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a unique-constraint failure.
const uniqueViolation = "23505"

// ConnectionError wraps a transport-level failure talking to Postgres.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("store: connection error in %s: %v", e.Op, e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps a SQL or constraint failure that is NOT an expected
// duplicate-key condition.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("store: query error in %s: %v", e.Op, e.Err) }
func (e *QueryError) Unwrap() error { return e.Err }

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505) — the "expected duplicate" condition callers in
// this package treat as a benign no-op rather than a failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

// classify wraps err as a QueryError when Postgres itself reported it (a
// *pgconn.PgError) and as a ConnectionError otherwise; any other error,
// including a client-side scan or encode failure, becomes ConnectionError.
// Callers that need to swallow unique violations must check isUniqueViolation
// BEFORE calling classify.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &QueryError{Op: op, Err: err}
	}
	return &ConnectionError{Op: op, Err: err}
}
