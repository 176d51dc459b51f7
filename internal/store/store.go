// Package store persists the lookup ledger: one row per enrichment
// attempt, recording which provider answered, what it found, and what the
// query cost. Two drivers share the interface: SQLite for the single-user
// CLI default and Postgres for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crewcast-studio/enrich-cli/internal/config"
)

// Lookup is one ledger entry.
type Lookup struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Provider  string    `json:"provider"`
	Found     bool      `json:"found"`
	Email     string    `json:"email,omitempty"`
	Error     string    `json:"error,omitempty"`
	CostUSD   float64   `json:"cost_usd"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter specifies criteria for listing ledger entries.
type Filter struct {
	Domain    string `json:"domain,omitempty"`
	Provider  string `json:"provider,omitempty"`
	FoundOnly bool   `json:"found_only,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Summary aggregates the ledger: total lookups, hits, and accumulated
// provider spend.
type Summary struct {
	Lookups      int     `json:"lookups"`
	Found        int     `json:"found"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// Store defines the ledger persistence interface.
type Store interface {
	// RecordLookup appends one entry, assigning its ID and timestamp.
	RecordLookup(ctx context.Context, lookup *Lookup) error
	// ListLookups returns entries matching the filter, newest first.
	ListLookups(ctx context.Context, filter Filter) ([]Lookup, error)
	// Summarize aggregates the whole ledger.
	Summarize(ctx context.Context) (*Summary, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store named by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "enrich.db"
		}
		return NewSQLite(path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
