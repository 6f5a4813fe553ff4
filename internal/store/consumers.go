package store

import (
	"context"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

// RegisterConsumer inserts a new Consumer row. A duplicate primary key (the
// consumer re-registering after a restart) is swallowed as a no-op.
func (s *Store) RegisterConsumer(ctx context.Context, ip, port string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO litscan_consumer (ip, status, port) VALUES ($1, $2, $3)`,
		ip, model.ConsumerAvailable, port,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return classify("RegisterConsumer", err)
	}
	return nil
}

// SetConsumer updates a consumer's status and job_id. jobID is nil when the
// consumer becomes available again: job_id is non-null iff status = busy.
func (s *Store) SetConsumer(ctx context.Context, ip string, status model.ConsumerStatus, jobID *string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE litscan_consumer SET status = $1, job_id = $2 WHERE ip = $3`,
		status, jobID, ip,
	)
	return classify("SetConsumer", err)
}

// FindAvailableConsumers returns every consumer row with status = available.
func (s *Store) FindAvailableConsumers(ctx context.Context) ([]model.Consumer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ip, status, port, job_id FROM litscan_consumer WHERE status = $1`,
		model.ConsumerAvailable,
	)
	if err != nil {
		return nil, classify("FindAvailableConsumers", err)
	}
	defer rows.Close()

	var consumers []model.Consumer
	for rows.Next() {
		var c model.Consumer
		if err := rows.Scan(&c.IP, &c.Status, &c.Port, &c.JobID); err != nil {
			return nil, classify("FindAvailableConsumers", err)
		}
		consumers = append(consumers, c)
	}
	return consumers, classify("FindAvailableConsumers", rows.Err())
}
