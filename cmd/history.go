package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewcast-studio/enrich-cli/internal/store"
)

var (
	historyDomain   string
	historyProvider string
	historyFound    bool
	historyLimit    int
	historyOffset   int
	historySummary  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lookups and accumulated provider spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if historySummary {
			sum, err := st.Summarize(ctx)
			if err != nil {
				return err
			}
			return enc.Encode(sum)
		}

		lookups, err := st.ListLookups(ctx, store.Filter{
			Domain:    historyDomain,
			Provider:  historyProvider,
			FoundOnly: historyFound,
			Limit:     historyLimit,
			Offset:    historyOffset,
		})
		if err != nil {
			return err
		}
		if lookups == nil {
			lookups = []store.Lookup{}
		}
		return enc.Encode(lookups)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDomain, "domain", "", "filter by domain")
	historyCmd.Flags().StringVar(&historyProvider, "provider", "", "filter by provider")
	historyCmd.Flags().BoolVar(&historyFound, "found", false, "only lookups that found an email")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "max entries to show")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "entries to skip")
	historyCmd.Flags().BoolVar(&historySummary, "summary", false, "show aggregate totals instead of entries")
	rootCmd.AddCommand(historyCmd)
}
