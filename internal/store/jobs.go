package store

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// SaveJob inserts a new pending Job row. jobID is the caller-normalized
// (lower-cased) primary key; displayID preserves the original case.
func (s *Store) SaveJob(ctx context.Context, jobID, displayID string, query *string, searchLimit *int) (string, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO litscan_job (job_id, display_id, query, search_limit, status, submitted)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		jobID, displayID, query, searchLimit, model.JobPending, time.Now().UTC(),
	)
	if err != nil {
		return "", classify("SaveJob", err)
	}
	return jobID, nil
}

// SearchPerformed looks up a Job by normalized id, case-insensitively.
func (s *Store) SearchPerformed(ctx context.Context, value string) (string, bool, error) {
	var jobID string
	err := s.pool.QueryRow(ctx,
		`SELECT job_id FROM litscan_job WHERE job_id = $1`,
		strings.ToLower(value),
	).Scan(&jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, classify("SearchPerformed", err)
	}
	return jobID, true, nil
}

// SetJobStatus transitions a Job's status, setting `finished` when the new
// status is terminal (success or error).
func (s *Store) SetJobStatus(ctx context.Context, jobID string, status model.JobStatus) error {
	if status == model.JobSuccess || status == model.JobError {
		_, err := s.pool.Exec(ctx,
			`UPDATE litscan_job SET status = $1, finished = $2 WHERE job_id = $3`,
			status, time.Now().UTC(), jobID,
		)
		return classify("SetJobStatus", err)
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE litscan_job SET status = $1 WHERE job_id = $2`,
		status, jobID,
	)
	return classify("SetJobStatus", err)
}

// SaveHitCount persists the hit_count for a job.
func (s *Store) SaveHitCount(ctx context.Context, jobID string, n int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE litscan_job SET hit_count = $1 WHERE job_id = $2`,
		n, jobID,
	)
	return classify("SaveHitCount", err)
}

// GetHitCount returns the current stored hit_count for a job (0 if null).
func (s *Store) GetHitCount(ctx context.Context, jobID string) (int, error) {
	var n *int
	err := s.pool.QueryRow(ctx,
		`SELECT hit_count FROM litscan_job WHERE job_id = $1`, jobID,
	).Scan(&n)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, classify("GetHitCount", err)
	}
	if n == nil {
		return 0, nil
	}
	return *n, nil
}

// GetQueryAndLimit returns the stored query filter and search limit for a job.
func (s *Store) GetQueryAndLimit(ctx context.Context, jobID string) (*string, *int, error) {
	var query *string
	var limit *int
	err := s.pool.QueryRow(ctx,
		`SELECT query, search_limit FROM litscan_job WHERE job_id = $1`, jobID,
	).Scan(&query, &limit)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, classify("GetQueryAndLimit", err)
	}
	return query, limit, nil
}

// GetSearchDate returns `finished` of the last run of jobID, or nil if the
// job has never completed.
func (s *Store) GetSearchDate(ctx context.Context, jobID string) (*time.Time, error) {
	var finished *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT finished FROM litscan_job WHERE job_id = $1`, jobID,
	).Scan(&finished)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, classify("GetSearchDate", err)
	}
	return finished, nil
}

// FindJobsToRun returns the 8 oldest pending jobs, ascending by submitted.
func (s *Store) FindJobsToRun(ctx context.Context) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT job_id, display_id, query, search_limit, status, submitted, finished, hit_count
		 FROM litscan_job
		 WHERE status = $1
		 ORDER BY submitted ASC
		 LIMIT 8`,
		model.JobPending,
	)
	if err != nil {
		return nil, classify("FindJobsToRun", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.JobID, &j.DisplayID, &j.Query, &j.SearchLimit, &j.Status, &j.Submitted, &j.Finished, &j.HitCount); err != nil {
			return nil, classify("FindJobsToRun", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, classify("FindJobsToRun", rows.Err())
}

// ResetForRescan wipes a job's derived rows (Results cascade to sentences)
// and hit_count/finished, then re-queues it as pending — preserving the Job
// row itself.
func (s *Store) ResetForRescan(ctx context.Context, jobID string, query *string, searchLimit *int) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM litscan_result WHERE job_id = $1`, jobID,
	)
	if err != nil {
		return classify("ResetForRescan", err)
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE litscan_job
		 SET status = $1, finished = NULL, hit_count = NULL, query = $2, search_limit = $3, submitted = $4
		 WHERE job_id = $5`,
		model.JobPending, query, searchLimit, time.Now().UTC(), jobID,
	)
	return classify("ResetForRescan", err)
}
