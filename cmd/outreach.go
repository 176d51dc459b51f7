package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crewcast-studio/enrich-cli/internal/enrich"
	"github.com/crewcast-studio/enrich-cli/internal/outreach"
	"github.com/crewcast-studio/enrich-cli/pkg/anthropic"
)

var (
	outreachDomain string
	outreachEmail  string
	outreachPitch  string
)

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Draft an outreach email for a company contact",
	Long:  "Enriches the domain (unless --email is given), then drafts a personalized first-touch email with Claude.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		drafter := outreach.NewDrafter(cfg.Anthropic, anthropic.NewClient(cfg.Anthropic.Key))
		if !drafter.Enabled() {
			return eris.New("outreach: set anthropic.key to enable drafting")
		}

		req := outreach.Request{
			Domain:   enrich.CleanDomain(outreachDomain),
			Email:    outreachEmail,
			PitchFor: outreachPitch,
		}

		if req.Email == "" {
			resp := buildService(cfg).FindEmail(ctx, enrich.Request{Domain: outreachDomain})
			if !resp.Found {
				if resp.Error != "" {
					return eris.Errorf("enrichment failed: %s", resp.Error)
				}
				return eris.Errorf("no email found for %s", req.Domain)
			}
			req.Email = resp.Email
			req.Contact = enrich.Contact{
				FirstName:   resp.FirstName,
				LastName:    resp.LastName,
				Title:       resp.Title,
				LinkedInURL: resp.LinkedInURL,
			}
			zap.L().Info("contact enriched for outreach",
				zap.String("domain", req.Domain),
				zap.String("provider", resp.Provider),
			)
		}

		draft, err := drafter.Draft(ctx, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

func init() {
	outreachCmd.Flags().StringVar(&outreachDomain, "domain", "", "company domain (required)")
	outreachCmd.Flags().StringVar(&outreachEmail, "email", "", "contact email (skips enrichment)")
	outreachCmd.Flags().StringVar(&outreachPitch, "pitch", "", "what the contact is being invited to")
	_ = outreachCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(outreachCmd)
}
