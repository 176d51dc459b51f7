// Package outreach drafts first-touch emails for enriched contacts using
// the Anthropic API.
package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/crewcast-studio/enrich-cli/internal/config"
	"github.com/crewcast-studio/enrich-cli/internal/enrich"
	"github.com/crewcast-studio/enrich-cli/pkg/anthropic"
)

const (
	draftMaxTokens = 1024

	systemPrompt = `You write short, personal cold-outreach emails inviting a company
representative to appear as a podcast guest. Be specific to the company,
never generic. Output the subject on the first line prefixed with
"Subject: ", then a blank line, then the body. No placeholders.`
)

// Request describes one draft: the enriched contact plus the pitch angle.
type Request struct {
	Domain   string
	Contact  enrich.Contact
	Email    string
	PitchFor string // the show or topic the invite is for
}

// Draft is one generated email.
type Draft struct {
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	Model   string  `json:"model"`
	CostUSD float64 `json:"cost_usd"`
}

// Drafter generates outreach drafts.
type Drafter struct {
	cfg    config.AnthropicConfig
	client anthropic.Client
}

// NewDrafter creates a Drafter. The client may be nil when no API key is
// configured; Draft reports that as an error.
func NewDrafter(cfg config.AnthropicConfig, client anthropic.Client) *Drafter {
	return &Drafter{cfg: cfg, client: client}
}

// Enabled reports whether drafting is configured.
func (d *Drafter) Enabled() bool {
	return d.cfg.Key != "" && d.client != nil
}

// Draft generates one outreach email for the request's contact.
func (d *Drafter) Draft(ctx context.Context, req Request) (*Draft, error) {
	if !d.Enabled() {
		return nil, eris.New("outreach: anthropic API key not configured")
	}
	if req.Email == "" {
		return nil, eris.New("outreach: contact email is required")
	}

	resp, err := d.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     d.cfg.Model,
		MaxTokens: draftMaxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "outreach: draft")
	}
	resp.Usage.LogCost(resp.Model, "outreach_draft")

	subject, body := splitDraft(resp.Text)
	if body == "" {
		return nil, eris.New("outreach: model returned an empty draft")
	}

	return &Draft{
		Subject: subject,
		Body:    body,
		Model:   resp.Model,
		CostUSD: resp.Usage.EstimateCost(resp.Model),
	}, nil
}

// buildPrompt renders what we know about the contact into the user turn.
// Unknown fields are omitted rather than sent as empty lines.
func buildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company domain: %s\n", req.Domain)
	fmt.Fprintf(&b, "Contact email: %s\n", req.Email)

	name := strings.TrimSpace(req.Contact.FirstName + " " + req.Contact.LastName)
	if name == "" {
		name = req.Contact.FullName
	}
	if name != "" {
		fmt.Fprintf(&b, "Contact name: %s\n", name)
	}
	if req.Contact.Title != "" {
		fmt.Fprintf(&b, "Contact title: %s\n", req.Contact.Title)
	}
	if req.PitchFor != "" {
		fmt.Fprintf(&b, "Inviting them to: %s\n", req.PitchFor)
	}
	b.WriteString("\nDraft the outreach email.")
	return b.String()
}

// splitDraft separates the "Subject: " first line from the body. Drafts
// without the expected prefix come back with an empty subject.
func splitDraft(text string) (subject, body string) {
	text = strings.TrimSpace(text)
	line, rest, found := strings.Cut(text, "\n")
	if after, ok := strings.CutPrefix(line, "Subject: "); ok {
		if !found {
			return strings.TrimSpace(after), ""
		}
		return strings.TrimSpace(after), strings.TrimSpace(rest)
	}
	return "", text
}
