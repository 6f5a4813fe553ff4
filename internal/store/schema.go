package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// dropStatements and createStatements mirror original_source's
// database/models.py migrate(): a full drop-and-recreate, not a
// forward-migration framework. Order matters — children before parents on
// drop, parents before children on create.
var dropStatements = []string{
	`DROP TABLE IF EXISTS litscan_load_organism`,
	`DROP TABLE IF EXISTS litscan_organism`,
	`DROP TABLE IF EXISTS litscan_body_sentence`,
	`DROP TABLE IF EXISTS litscan_abstract_sentence`,
	`DROP TABLE IF EXISTS litscan_manually_annotated`,
	`DROP TABLE IF EXISTS litscan_result`,
	`DROP TABLE IF EXISTS litscan_article`,
	`DROP TABLE IF EXISTS litscan_database`,
	`DROP TABLE IF EXISTS litscan_job`,
	`DROP TABLE IF EXISTS litscan_consumer`,
}

var createStatements = []string{
	`CREATE TABLE litscan_consumer (
		ip VARCHAR(45) PRIMARY KEY,
		status VARCHAR(10) NOT NULL,
		job_id VARCHAR(100),
		port VARCHAR(5)
	)`,
	`CREATE TABLE litscan_job (
		job_id VARCHAR(100) PRIMARY KEY,
		display_id VARCHAR(100),
		query TEXT,
		search_limit INTEGER,
		submitted TIMESTAMP,
		finished TIMESTAMP,
		status VARCHAR(10),
		hit_count INTEGER
	)`,
	`CREATE TABLE litscan_article (
		pmcid VARCHAR(15) PRIMARY KEY,
		title TEXT,
		abstract TEXT,
		author TEXT,
		pmid VARCHAR(100),
		doi VARCHAR(100),
		journal VARCHAR(255),
		type VARCHAR(100),
		year INTEGER,
		score INTEGER,
		cited_by INTEGER,
		retracted BOOLEAN,
		rna_related BOOLEAN,
		probability REAL
	)`,
	`CREATE TABLE litscan_organism (
		id SERIAL PRIMARY KEY,
		pmcid VARCHAR(15),
		organism INTEGER,
		FOREIGN KEY (pmcid) REFERENCES litscan_article(pmcid) ON UPDATE CASCADE ON DELETE CASCADE,
		CONSTRAINT pmcid_organism UNIQUE (pmcid, organism)
	)`,
	`CREATE TABLE litscan_result (
		id SERIAL PRIMARY KEY,
		pmcid VARCHAR(15),
		job_id VARCHAR(100),
		id_in_title BOOLEAN,
		id_in_abstract BOOLEAN,
		id_in_body BOOLEAN,
		FOREIGN KEY (pmcid) REFERENCES litscan_article(pmcid) ON UPDATE CASCADE ON DELETE CASCADE,
		FOREIGN KEY (job_id) REFERENCES litscan_job(job_id) ON UPDATE CASCADE ON DELETE CASCADE,
		CONSTRAINT pmcid_job_id UNIQUE (pmcid, job_id)
	)`,
	`CREATE TABLE litscan_abstract_sentence (
		id SERIAL PRIMARY KEY,
		result_id INTEGER,
		sentence TEXT,
		FOREIGN KEY (result_id) REFERENCES litscan_result(id) ON UPDATE CASCADE ON DELETE CASCADE
	)`,
	`CREATE TABLE litscan_body_sentence (
		id SERIAL PRIMARY KEY,
		result_id INTEGER,
		sentence TEXT,
		location TEXT,
		FOREIGN KEY (result_id) REFERENCES litscan_result(id) ON UPDATE CASCADE ON DELETE CASCADE
	)`,
	`CREATE TABLE litscan_database (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50),
		job_id VARCHAR(100),
		primary_id VARCHAR(100),
		FOREIGN KEY (job_id) REFERENCES litscan_job(job_id) ON UPDATE CASCADE ON DELETE CASCADE,
		FOREIGN KEY (primary_id) REFERENCES litscan_job(job_id) ON UPDATE CASCADE ON DELETE CASCADE,
		CONSTRAINT name_job_primary UNIQUE (name, job_id, primary_id)
	)`,
	`CREATE TABLE litscan_manually_annotated (
		id SERIAL PRIMARY KEY,
		pmcid VARCHAR(15),
		urs VARCHAR(100),
		FOREIGN KEY (pmcid) REFERENCES litscan_article(pmcid) ON UPDATE CASCADE ON DELETE CASCADE,
		FOREIGN KEY (urs) REFERENCES litscan_job(job_id) ON UPDATE CASCADE ON DELETE CASCADE
	)`,
	`CREATE TABLE litscan_load_organism (
		id SERIAL PRIMARY KEY,
		pmid VARCHAR(100),
		organism INTEGER,
		CONSTRAINT pmid_organism UNIQUE (pmid, organism)
	)`,
	`CREATE INDEX ON litscan_article (pmcid) WHERE retracted IS FALSE`,
	`CREATE INDEX ON litscan_result (job_id)`,
	`CREATE INDEX ON litscan_database (job_id)`,
	`CREATE INDEX ON litscan_manually_annotated (urs)`,
	`CREATE INDEX ON litscan_abstract_sentence (result_id)`,
	`CREATE INDEX ON litscan_body_sentence (result_id)`,
}

// Migrate drops and recreates the full schema. Intended for the MIGRATE
// startup flag — it is destructive and must never run against a production
// database that holds data the operator wants to keep.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range dropStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: drop: %w", err)
		}
	}
	for _, stmt := range createStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: create: %w", err)
		}
	}
	return nil
}
