package enrich

// Response-shaping helpers shared by all providers. Charging policy lives
// here: a queried-but-empty lookup still costs the provider's per-lookup
// rate (the upstream API charged us), while configuration and transport
// errors cost nothing.

// successResponse builds a found response. The primary contact is the one
// that owns the primary email; its attributes are lifted onto the response.
func successResponse(provider, email string, emails []string, contacts []Contact, cost float64) Response {
	resp := Response{
		Email:        email,
		Emails:       emails,
		Contacts:     pruneContacts(contacts),
		Found:        true,
		Provider:     provider,
		CostEstimate: cost,
	}

	if primary, ok := primaryContact(resp.Contacts, email); ok {
		resp.FirstName = primary.FirstName
		resp.LastName = primary.LastName
		resp.Title = primary.Title
		resp.LinkedInURL = primary.LinkedInURL
		resp.PhoneNumbers = primary.PhoneNumbers
	}

	return resp
}

// notFoundResponse builds a clean miss. Cost reflects whether the provider
// was actually queried (B2B misses are still billed upstream).
func notFoundResponse(provider string, cost float64) Response {
	return Response{
		Provider:     provider,
		Found:        false,
		CostEstimate: cost,
	}
}

// partialResponse is a miss that preserves the located person's identity,
// so callers can see "we found someone, just no email".
func partialResponse(provider string, contact Contact, cost float64) Response {
	resp := notFoundResponse(provider, cost)
	if !contact.Empty() {
		resp.Contacts = []Contact{contact}
		resp.FirstName = contact.FirstName
		resp.LastName = contact.LastName
		resp.Title = contact.Title
		resp.LinkedInURL = contact.LinkedInURL
	}
	return resp
}

// errorResponse builds a failure. Errors are never billed.
func errorResponse(provider, msg string) Response {
	return Response{
		Provider:     provider,
		Found:        false,
		Error:        msg,
		CostEstimate: 0,
	}
}

// primaryContact locates the contact owning email. Membership wins over
// position: a contact with no email must never be reported as the owner.
func primaryContact(contacts []Contact, email string) (Contact, bool) {
	if email != "" {
		for _, c := range contacts {
			for _, e := range c.Emails {
				if e == email {
					return c, true
				}
			}
		}
	}
	if len(contacts) > 0 {
		return contacts[0], true
	}
	return Contact{}, false
}

// pruneContacts drops contacts with no email and no name.
func pruneContacts(contacts []Contact) []Contact {
	if len(contacts) == 0 {
		return nil
	}
	kept := contacts[:0:0]
	for _, c := range contacts {
		if !c.Empty() {
			kept = append(kept, c)
		}
	}
	return kept
}
