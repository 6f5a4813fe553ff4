package store

import "context"

// GetArticlesForClassification returns up to limit non-retracted articles
// with pmcid > afterPMCID, ordered by pmcid, for the relevance classifier's
// paged batch pass.
func (s *Store) GetArticlesForClassification(ctx context.Context, afterPMCID string, limit int) ([]string, []string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT pmcid, abstract FROM litscan_article
		 WHERE retracted IS NOT TRUE AND pmcid > $1
		 ORDER BY pmcid ASC
		 LIMIT $2`,
		afterPMCID, limit,
	)
	if err != nil {
		return nil, nil, classify("GetArticlesForClassification", err)
	}
	defer rows.Close()

	var pmcids, abstracts []string
	for rows.Next() {
		var pmcid, abstract string
		if err := rows.Scan(&pmcid, &abstract); err != nil {
			return nil, nil, classify("GetArticlesForClassification", err)
		}
		pmcids = append(pmcids, pmcid)
		abstracts = append(abstracts, abstract)
	}
	return pmcids, abstracts, classify("GetArticlesForClassification", rows.Err())
}

// UpdateClassification persists the relevance-classifier verdict for pmcid.
func (s *Store) UpdateClassification(ctx context.Context, pmcid string, rnaRelated bool, probability float64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE litscan_article SET rna_related = $1, probability = $2 WHERE pmcid = $3`,
		rnaRelated, probability, pmcid,
	)
	return classify("UpdateClassification", err)
}
