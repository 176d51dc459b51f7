package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/crewcast-studio/enrich-cli/internal/config"
	"github.com/crewcast-studio/enrich-cli/internal/enrich"
	"github.com/crewcast-studio/enrich-cli/internal/fetcher"
	"github.com/crewcast-studio/enrich-cli/internal/store"
	"github.com/crewcast-studio/enrich-cli/pkg/apollo"
	"github.com/crewcast-studio/enrich-cli/pkg/lusha"
)

// buildService assembles the enrichment service from config. Every
// configured provider is registered; the service itself skips the
// unavailable ones per lookup.
func buildService(c *config.Config) *enrich.Service {
	apolloClient := apollo.NewClient(c.Apollo.Key, apollo.WithBaseURL(c.Apollo.BaseURL))
	lushaClient := lusha.NewClient(c.Lusha.Key, lusha.WithBaseURL(c.Lusha.BaseURL))
	fetch := fetcher.NewHTTP(fetcher.HTTPOptions{
		Timeout:     time.Duration(c.Scraper.TimeoutSecs) * time.Second,
		PerHostRate: rate.Limit(c.Scraper.RequestsPerSec),
	})

	return enrich.NewService(c.Strategy,
		enrich.NewApolloProvider(c.Apollo, c.Features, apolloClient),
		enrich.NewLushaProvider(c.Lusha, c.Features, lushaClient),
		enrich.NewScraperProvider(c.Scraper, fetch),
	)
}

// initStore opens and migrates the lookup ledger.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
