package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crewcast-studio/enrich-cli/internal/enrich"
	"github.com/crewcast-studio/enrich-cli/internal/store"
)

var (
	lookupDomain   string
	lookupName     string
	lookupFirst    string
	lookupLast     string
	lookupEmail    string
	lookupLinkedIn string
	lookupLanguage string
	lookupProvider string
	lookupRecord   bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Find a contact email for a company domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := buildService(cfg)

		req := enrich.Request{
			Domain:         lookupDomain,
			PersonName:     lookupName,
			FirstName:      lookupFirst,
			LastName:       lookupLast,
			Email:          lookupEmail,
			LinkedInURL:    lookupLinkedIn,
			TargetLanguage: lookupLanguage,
		}

		var resp enrich.Response
		if lookupProvider != "" {
			resp = svc.FindEmailWith(ctx, lookupProvider, req)
		} else {
			resp = svc.FindEmail(ctx, req)
		}

		zap.L().Info("lookup complete",
			zap.String("domain", lookupDomain),
			zap.String("provider", resp.Provider),
			zap.Bool("found", resp.Found),
			zap.Float64("cost_usd", resp.CostEstimate),
		)

		if lookupRecord {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			entry := store.Lookup{
				Domain:   enrich.CleanDomain(lookupDomain),
				Provider: resp.Provider,
				Found:    resp.Found,
				Email:    resp.Email,
				Error:    resp.Error,
				CostUSD:  resp.CostEstimate,
			}
			if err := st.RecordLookup(ctx, &entry); err != nil {
				// A ledger failure must not hide the lookup result.
				zap.L().Warn("ledger write failed", zap.Error(err))
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupDomain, "domain", "", "company domain or URL (required)")
	lookupCmd.Flags().StringVar(&lookupName, "name", "", "contact full name")
	lookupCmd.Flags().StringVar(&lookupFirst, "first", "", "contact first name")
	lookupCmd.Flags().StringVar(&lookupLast, "last", "", "contact last name")
	lookupCmd.Flags().StringVar(&lookupEmail, "email", "", "known email to enrich from")
	lookupCmd.Flags().StringVar(&lookupLinkedIn, "linkedin", "", "contact LinkedIn URL")
	lookupCmd.Flags().StringVar(&lookupLanguage, "language", "", "target language for contact-page paths (ISO 639-1)")
	lookupCmd.Flags().StringVar(&lookupProvider, "provider", "", "force a single provider (apollo, lusha, website_scraper)")
	lookupCmd.Flags().BoolVar(&lookupRecord, "record", true, "record the lookup in the ledger")
	_ = lookupCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(lookupCmd)
}
