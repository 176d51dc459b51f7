package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/crewcast-studio/enrich-cli/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool (pgxmock in tests).
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS lookups (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	domain     TEXT NOT NULL,
	provider   TEXT NOT NULL,
	found      BOOLEAN NOT NULL DEFAULT false,
	email      TEXT NOT NULL DEFAULT '',
	error      TEXT NOT NULL DEFAULT '',
	cost_usd   DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_lookups_domain ON lookups(domain);
CREATE INDEX IF NOT EXISTS idx_lookups_provider ON lookups(provider);
CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordLookup(ctx context.Context, lookup *Lookup) error {
	lookup.ID = uuid.New().String()
	lookup.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO lookups (id, domain, provider, found, email, error, cost_usd, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		lookup.ID, lookup.Domain, lookup.Provider, lookup.Found,
		lookup.Email, lookup.Error, lookup.CostUSD, lookup.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert lookup")
}

func (s *PostgresStore) ListLookups(ctx context.Context, filter Filter) ([]Lookup, error) {
	query := `SELECT id, domain, provider, found, email, error, cost_usd, created_at
	          FROM lookups WHERE 1=1`
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Domain != "" {
		query += ` AND domain = ` + arg(filter.Domain)
	}
	if filter.Provider != "" {
		query += ` AND provider = ` + arg(filter.Provider)
	}
	if filter.FoundOnly {
		query += ` AND found`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)

	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list lookups")
	}
	defer rows.Close()

	var lookups []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.Domain, &l.Provider, &l.Found, &l.Email, &l.Error, &l.CostUSD, &l.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lookup")
		}
		lookups = append(lookups, l)
	}
	return lookups, eris.Wrap(rows.Err(), "postgres: list lookups iterate")
}

func (s *PostgresStore) Summarize(ctx context.Context) (*Summary, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE found), COALESCE(SUM(cost_usd), 0) FROM lookups`,
	)

	var sum Summary
	if err := row.Scan(&sum.Lookups, &sum.Found, &sum.TotalCostUSD); err != nil {
		return nil, eris.Wrap(err, "postgres: summarize")
	}
	return &sum, nil
}
