package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS lookups (
	id         TEXT PRIMARY KEY,
	domain     TEXT NOT NULL,
	provider   TEXT NOT NULL,
	found      INTEGER NOT NULL DEFAULT 0,
	email      TEXT NOT NULL DEFAULT '',
	error      TEXT NOT NULL DEFAULT '',
	cost_usd   REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_lookups_domain ON lookups(domain);
CREATE INDEX IF NOT EXISTS idx_lookups_provider ON lookups(provider);
CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordLookup(ctx context.Context, lookup *Lookup) error {
	lookup.ID = uuid.New().String()
	lookup.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (id, domain, provider, found, email, error, cost_usd, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		lookup.ID, lookup.Domain, lookup.Provider, boolToInt(lookup.Found),
		lookup.Email, lookup.Error, lookup.CostUSD, lookup.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert lookup")
}

func (s *SQLiteStore) ListLookups(ctx context.Context, filter Filter) ([]Lookup, error) {
	query := `SELECT id, domain, provider, found, email, error, cost_usd, created_at
	          FROM lookups WHERE 1=1`
	var args []any

	if filter.Domain != "" {
		query += ` AND domain = ?`
		args = append(args, filter.Domain)
	}
	if filter.Provider != "" {
		query += ` AND provider = ?`
		args = append(args, filter.Provider)
	}
	if filter.FoundOnly {
		query += ` AND found = 1`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list lookups")
	}
	defer rows.Close()

	var lookups []Lookup
	for rows.Next() {
		var l Lookup
		var found int
		if err := rows.Scan(&l.ID, &l.Domain, &l.Provider, &found, &l.Email, &l.Error, &l.CostUSD, &l.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lookup")
		}
		l.Found = found != 0
		lookups = append(lookups, l)
	}
	return lookups, eris.Wrap(rows.Err(), "sqlite: list lookups iterate")
}

func (s *SQLiteStore) Summarize(ctx context.Context) (*Summary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(found), 0), COALESCE(SUM(cost_usd), 0) FROM lookups`,
	)

	var sum Summary
	if err := row.Scan(&sum.Lookups, &sum.Found, &sum.TotalCostUSD); err != nil {
		return nil, eris.Wrap(err, "sqlite: summarize")
	}
	return &sum, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
