package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// GetPMCID returns pmcid if an Article with that PMCID already exists.
func (s *Store) GetPMCID(ctx context.Context, pmcid string) (string, bool, error) {
	var got string
	err := s.pool.QueryRow(ctx,
		`SELECT pmcid FROM litscan_article WHERE pmcid = $1`, pmcid,
	).Scan(&got)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, classify("GetPMCID", err)
	}
	return got, true, nil
}

// SaveArticle inserts a new Article row. Immutable once inserted except for
// Retracted.
func (s *Store) SaveArticle(ctx context.Context, a model.Article) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO litscan_article (pmcid, title, abstract, author, pmid, doi, journal, type, year, score, cited_by, retracted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (pmcid) DO NOTHING`,
		a.PMCID, a.Title, a.Abstract, a.Author, a.PMID, a.DOI, a.Journal, a.Type, a.Year, a.Score, a.CitedBy, a.Retracted,
	)
	return classify("SaveArticle", err)
}

// GetAllPMCID returns the PMCID of every article not yet marked retracted,
// for the retraction sweep that periodically re-checks EuropePMC's
// status-update feed.
func (s *Store) GetAllPMCID(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT pmcid FROM litscan_article WHERE retracted IS NOT TRUE`)
	if err != nil {
		return nil, classify("GetAllPMCID", err)
	}
	defer rows.Close()

	var pmcids []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, classify("GetAllPMCID", err)
		}
		pmcids = append(pmcids, p)
	}
	return pmcids, classify("GetAllPMCID", rows.Err())
}

// MarkRetracted sets retracted = true for the given PMCIDs.
func (s *Store) MarkRetracted(ctx context.Context, pmcids []string) error {
	if len(pmcids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE litscan_article SET retracted = TRUE WHERE pmcid = ANY($1)`,
		pmcids,
	)
	return classify("MarkRetracted", err)
}
