package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// SaveResult inserts a Result row. Uniqueness on (pmcid, job_id) is swallowed
// — a duplicate means another consumer already recorded this hit for this
// job. Returns (id, inserted).
func (s *Store) SaveResult(ctx context.Context, r model.Result) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO litscan_result (pmcid, job_id, id_in_title, id_in_abstract, id_in_body)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (pmcid, job_id) DO NOTHING
		 RETURNING id`,
		r.PMCID, r.JobID, r.IDInTitle, r.IDInAbstract, r.IDInBody,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			// ON CONFLICT DO NOTHING suppressed the insert: already known.
			return 0, false, nil
		}
		if isUniqueViolation(err) {
			return 0, false, nil
		}
		return 0, false, classify("SaveResult", err)
	}
	return id, true, nil
}

// GetPMCIDInResult returns every PMCID already recorded as a Result for
// jobID — used by the consumer to skip already-seen articles on an
// incremental run.
func (s *Store) GetPMCIDInResult(ctx context.Context, jobID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT pmcid FROM litscan_result WHERE job_id = $1`, jobID,
	)
	if err != nil {
		return nil, classify("GetPMCIDInResult", err)
	}
	defer rows.Close()

	var pmcids []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, classify("GetPMCIDInResult", err)
		}
		pmcids = append(pmcids, p)
	}
	return pmcids, classify("GetPMCIDInResult", rows.Err())
}

// SaveAbstractSentences batch-inserts abstract sentences for one Result,
// preserving document order.
func (s *Store) SaveAbstractSentences(ctx context.Context, resultID int64, sentences []string) error {
	if len(sentences) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, sentence := range sentences {
		batch.Queue(
			`INSERT INTO litscan_abstract_sentence (result_id, sentence) VALUES ($1, $2)`,
			resultID, sentence,
		)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range sentences {
		if _, err := br.Exec(); err != nil {
			return classify("SaveAbstractSentences", err)
		}
	}
	return nil
}

// BodySentenceInput is one sentence to persist under a section bucket.
type BodySentenceInput struct {
	Sentence string
	Location model.SectionBucket
}

// SaveBodySentences batch-inserts body sentences for one Result.
func (s *Store) SaveBodySentences(ctx context.Context, resultID int64, sentences []BodySentenceInput) error {
	if len(sentences) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, sentence := range sentences {
		batch.Queue(
			`INSERT INTO litscan_body_sentence (result_id, sentence, location) VALUES ($1, $2, $3)`,
			resultID, sentence.Sentence, string(sentence.Location),
		)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range sentences {
		if _, err := br.Exec(); err != nil {
			return classify("SaveBodySentences", err)
		}
	}
	return nil
}

// GetJobResults returns the full result set for a job as the API-facing
// JobResult shape. job_id is matched exactly; callers lower-case it first
// so that the API lookup is case-insensitive.
func (s *Store) GetJobResults(ctx context.Context, jobID string) ([]model.JobResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.job_id, r.pmcid, a.title, a.author, a.pmid, a.doi, a.year, a.journal,
		        a.score, a.cited_by, a.retracted, r.id_in_title, r.id_in_abstract, r.id_in_body
		 FROM litscan_result r
		 JOIN litscan_article a ON a.pmcid = r.pmcid
		 WHERE r.job_id = $1`,
		jobID,
	)
	if err != nil {
		return nil, classify("GetJobResults", err)
	}
	defer rows.Close()

	type row struct {
		id    int64
		jr    model.JobResult
	}
	var out []row
	for rows.Next() {
		var rr row
		if err := rows.Scan(
			&rr.id, &rr.jr.JobID, &rr.jr.PMCID, &rr.jr.Title, &rr.jr.Author, &rr.jr.PMID, &rr.jr.DOI,
			&rr.jr.Year, &rr.jr.Journal, &rr.jr.Score, &rr.jr.CitedBy, &rr.jr.Retracted,
			&rr.jr.IDInTitle, &rr.jr.IDInAbstract, &rr.jr.IDInBody,
		); err != nil {
			return nil, classify("GetJobResults", err)
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("GetJobResults", err)
	}

	results := make([]model.JobResult, 0, len(out))
	for _, rr := range out {
		jr := rr.jr

		abstractRows, err := s.pool.Query(ctx,
			`SELECT sentence FROM litscan_abstract_sentence WHERE result_id = $1 ORDER BY id`, rr.id,
		)
		if err != nil {
			return nil, classify("GetJobResults", err)
		}
		for abstractRows.Next() {
			var sentence string
			if err := abstractRows.Scan(&sentence); err != nil {
				abstractRows.Close()
				return nil, classify("GetJobResults", err)
			}
			jr.AbstractSentence = append(jr.AbstractSentence, sentence)
		}
		abstractRows.Close()

		bodyRows, err := s.pool.Query(ctx,
			`SELECT location, sentence FROM litscan_body_sentence WHERE result_id = $1 ORDER BY location, id`, rr.id,
		)
		if err != nil {
			return nil, classify("GetJobResults", err)
		}
		for bodyRows.Next() {
			var bs model.JobBodySentence
			if err := bodyRows.Scan(&bs.Location, &bs.Sentence); err != nil {
				bodyRows.Close()
				return nil, classify("GetJobResults", err)
			}
			jr.BodySentence = append(jr.BodySentence, bs)
		}
		bodyRows.Close()

		results = append(results, jr)
	}

	return results, nil
}

// GetHitCountByURS aggregates SUM(hit_count) per primary_id for jobs linked
// to the 'rnacentral' database.
func (s *Store) GetHitCountByURS(ctx context.Context) ([]model.HitCountRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT d.primary_id, SUM(j.hit_count) AS total
		 FROM litscan_database d
		 JOIN litscan_job j ON j.job_id = d.job_id
		 WHERE d.name = 'rnacentral' AND j.hit_count > 0
		 GROUP BY d.primary_id
		 HAVING SUM(j.hit_count) > 0`,
	)
	if err != nil {
		return nil, classify("GetHitCountByURS", err)
	}
	defer rows.Close()

	var out []model.HitCountRow
	for rows.Next() {
		var row model.HitCountRow
		if err := rows.Scan(&row.URS, &row.HitCount); err != nil {
			return nil, classify("GetHitCountByURS", err)
		}
		out = append(out, row)
	}
	return out, classify("GetHitCountByURS", rows.Err())
}
