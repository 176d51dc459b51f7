package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewcast-studio/enrich-cli/internal/config"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func record(t *testing.T, s Store, l Lookup) Lookup {
	t.Helper()
	require.NoError(t, s.RecordLookup(context.Background(), &l))
	return l
}

func TestSQLite_RecordAssignsIdentity(t *testing.T) {
	s := newTestStore(t)

	l := record(t, s, Lookup{Domain: "acme.com", Provider: "apollo", Found: true, Email: "jane@acme.com", CostUSD: 0.03})

	assert.NotEmpty(t, l.ID)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestSQLite_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	record(t, s, Lookup{Domain: "a.com", Provider: "apollo"})
	record(t, s, Lookup{Domain: "b.com", Provider: "lusha", Found: true, Email: "x@b.com", CostUSD: 0.05})

	got, err := s.ListLookups(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordering is by timestamp; same-second inserts may tie, so assert
	// membership rather than position.
	domains := []string{got[0].Domain, got[1].Domain}
	assert.ElementsMatch(t, []string{"a.com", "b.com"}, domains)
}

func TestSQLite_ListFilters(t *testing.T) {
	s := newTestStore(t)

	record(t, s, Lookup{Domain: "a.com", Provider: "apollo", Found: true, Email: "x@a.com", CostUSD: 0.03})
	record(t, s, Lookup{Domain: "a.com", Provider: "website_scraper"})
	record(t, s, Lookup{Domain: "b.com", Provider: "apollo"})

	got, err := s.ListLookups(context.Background(), Filter{Domain: "a.com"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListLookups(context.Background(), Filter{Provider: "apollo"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListLookups(context.Background(), Filter{FoundOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x@a.com", got[0].Email)

	got, err = s.ListLookups(context.Background(), Filter{Domain: "a.com", Provider: "apollo", FoundOnly: true})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLite_ListPagination(t *testing.T) {
	s := newTestStore(t)

	for range 5 {
		record(t, s, Lookup{Domain: "a.com", Provider: "apollo"})
	}

	got, err := s.ListLookups(context.Background(), Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListLookups(context.Background(), Filter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLite_Summarize(t *testing.T) {
	s := newTestStore(t)

	record(t, s, Lookup{Domain: "a.com", Provider: "apollo", Found: true, CostUSD: 0.03})
	record(t, s, Lookup{Domain: "b.com", Provider: "lusha", CostUSD: 0.05})
	record(t, s, Lookup{Domain: "c.com", Provider: "website_scraper", Found: true})

	sum, err := s.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Lookups)
	assert.Equal(t, 2, sum.Found)
	assert.InDelta(t, 0.08, sum.TotalCostUSD, 1e-9)
}

func TestSQLite_SummarizeEmptyLedger(t *testing.T) {
	s := newTestStore(t)

	sum, err := s.Summarize(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.Lookups)
	assert.Zero(t, sum.TotalCostUSD)
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestOpen_DriverDispatch(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite", Path: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	_ = s.Close()

	_, err = Open(context.Background(), config.StoreConfig{Driver: "oracle"})
	assert.Error(t, err)
}
