package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crewcast-studio/enrich-cli/internal/cost"
)

var providersBatch int

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show provider availability and estimated lookup cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildService(cfg)
		calc := cost.NewCalculator(cost.FromConfig(cfg))

		type providerInfo struct {
			Name       string  `yaml:"name"`
			Available  bool    `yaml:"available"`
			CostPerHit float64 `yaml:"cost_per_lookup_usd"`
			BatchCost  float64 `yaml:"batch_cost_usd,omitempty"`
		}
		type report struct {
			Providers []providerInfo `yaml:"providers"`
			Strategy  string         `yaml:"strategy"`
			Primary   string         `yaml:"primary,omitempty"`
			Estimated float64        `yaml:"estimated_cost_per_lookup_usd"`
		}

		r := report{
			Primary:   cfg.Strategy.Primary,
			Estimated: svc.EstimatedCost(),
		}
		if cfg.Strategy.Parallel {
			r.Strategy = "parallel"
		} else {
			r.Strategy = "sequential"
		}

		for _, p := range svc.Providers() {
			info := providerInfo{
				Name:       p.Name(),
				Available:  p.Enabled(),
				CostPerHit: calc.PerLookup(p.Name()),
			}
			if providersBatch > 0 {
				info.BatchCost = calc.Batch(p.Name(), providersBatch)
			}
			r.Providers = append(r.Providers, info)
		}

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(r)
	},
}

func init() {
	providersCmd.Flags().IntVar(&providersBatch, "batch", 0, "also show the cost of N lookups per provider")
	rootCmd.AddCommand(providersCmd)
}
