package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgres_RecordLookup(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO lookups`).
		WithArgs(pgxmock.AnyArg(), "acme.com", "lusha", true, "jane@acme.com", "", 0.05, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	l := Lookup{Domain: "acme.com", Provider: "lusha", Found: true, Email: "jane@acme.com", CostUSD: 0.05}
	require.NoError(t, s.RecordLookup(context.Background(), &l))

	assert.NotEmpty(t, l.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListLookups(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM lookups`).
		WithArgs("acme.com", 100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "domain", "provider", "found", "email", "error", "cost_usd", "created_at"}).
			AddRow("id-1", "acme.com", "apollo", true, "jane@acme.com", "", 0.03, now).
			AddRow("id-2", "acme.com", "website_scraper", false, "", "", 0.0, now))

	got, err := s.ListLookups(context.Background(), Filter{Domain: "acme.com"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "apollo", got[0].Provider)
	assert.True(t, got[0].Found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Summarize(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"count", "found", "sum"}).AddRow(7, 3, 0.21))

	sum, err := s.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, sum.Lookups)
	assert.Equal(t, 3, sum.Found)
	assert.InDelta(t, 0.21, sum.TotalCostUSD, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS lookups`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
