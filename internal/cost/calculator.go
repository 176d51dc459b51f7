// Package cost holds per-lookup pricing for the enrichment providers.
package cost

import "github.com/crewcast-studio/enrich-cli/internal/config"

// Rates holds per-provider USD pricing for one queried lookup. The
// website scraper is always free, so it has no entry.
type Rates struct {
	ApolloPerLookup float64 `yaml:"apollo_per_lookup" mapstructure:"apollo_per_lookup"`
	LushaPerLookup  float64 `yaml:"lusha_per_lookup" mapstructure:"lusha_per_lookup"`
}

// FromConfig derives Rates from the loaded configuration.
func FromConfig(cfg *config.Config) Rates {
	return Rates{
		ApolloPerLookup: cfg.Apollo.CostPerLookup,
		LushaPerLookup:  cfg.Lusha.CostPerLookup,
	}
}

// Calculator answers pricing questions for lookups and batches.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// PerLookup returns the cost of one queried lookup for a provider name.
// Unknown and free providers cost zero.
func (c *Calculator) PerLookup(provider string) float64 {
	switch provider {
	case "apollo":
		return c.rates.ApolloPerLookup
	case "lusha":
		return c.rates.LushaPerLookup
	}
	return 0
}

// Batch estimates the cost of running n lookups against one provider.
func (c *Calculator) Batch(provider string, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * c.PerLookup(provider)
}
