package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// MetadataInput is one (job_id, name, primary_id) link to upsert.
type MetadataInput struct {
	JobID     *string
	Name      string
	PrimaryID *string
}

// SaveMetadata batch-inserts Metadata rows. Duplicates on the composite
// (name, job_id, primary_id) constraint are swallowed.
func (s *Store) SaveMetadata(ctx context.Context, rows []MetadataInput) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(
			`INSERT INTO litscan_database (name, job_id, primary_id) VALUES ($1, $2, $3)
			 ON CONFLICT (name, job_id, primary_id) DO NOTHING`,
			r.Name, r.JobID, r.PrimaryID,
		)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil && !isUniqueViolation(err) {
			return classify("SaveMetadata", err)
		}
	}
	return nil
}

// SearchMetadata checks whether a (job_id, name, primary_id) link already
// exists, returning its id.
func (s *Store) SearchMetadata(ctx context.Context, jobID *string, name string, primaryID *string) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM litscan_database
		 WHERE name = $1
		   AND job_id IS NOT DISTINCT FROM $2
		   AND primary_id IS NOT DISTINCT FROM $3`,
		name, jobID, primaryID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, classify("SearchMetadata", err)
	}
	return id, true, nil
}

// GetManuallyAnnotated returns every ManuallyAnnotated row linked to urs.
func (s *Store) GetManuallyAnnotated(ctx context.Context, urs string) ([]model.ManuallyAnnotated, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, pmcid, urs FROM litscan_manually_annotated WHERE urs = $1`, urs,
	)
	if err != nil {
		return nil, classify("GetManuallyAnnotated", err)
	}
	defer rows.Close()

	var out []model.ManuallyAnnotated
	for rows.Next() {
		var m model.ManuallyAnnotated
		if err := rows.Scan(&m.ID, &m.PMCID, &m.URS); err != nil {
			return nil, classify("GetManuallyAnnotated", err)
		}
		out = append(out, m)
	}
	return out, classify("GetManuallyAnnotated", rows.Err())
}

// SaveManuallyAnnotated links pmcid to urs as a manually annotated article.
func (s *Store) SaveManuallyAnnotated(ctx context.Context, pmcid, urs string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO litscan_manually_annotated (pmcid, urs) VALUES ($1, $2)`,
		pmcid, urs,
	)
	if isUniqueViolation(err) {
		return nil
	}
	return classify("SaveManuallyAnnotated", err)
}
