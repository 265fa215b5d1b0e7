package enrich

import (
	"context"
	"strings"

	"github.com/de-tools/top-users/pkg/models/domain"
	"github.com/de-tools/top-users/pkg/models/store"
	"github.com/de-tools/top-users/pkg/services/groups"
	"github.com/de-tools/top-users/pkg/store/directory"
	"github.com/rs/zerolog"
)

type Settings struct {
	// InitiativeSuffix and InitiativeTag control tagging of identities
	// whose secondary groups mark initiative membership.
	InitiativeSuffix string
	InitiativeTag    string
}

// Enricher joins per-identity usage with directory details and group
// membership.
type Enricher struct {
	client   directory.Client
	resolver *groups.Resolver
	settings Settings
}

func NewEnricher(client directory.Client, resolver *groups.Resolver, settings Settings) *Enricher {
	return &Enricher{client: client, resolver: resolver, settings: settings}
}

// Enrich fetches details for every entry, one request per identity.
// Lookup failures degrade to an empty row rather than aborting: a stale
// identity in the usage data must not lose the rest of the report.
func (e *Enricher) Enrich(ctx context.Context, entries []domain.UsageEntry) []domain.EnrichedUser {
	logger := zerolog.Ctx(ctx)

	users := make([]domain.EnrichedUser, 0, len(entries))
	for _, entry := range entries {
		user := domain.EnrichedUser{Identity: entry.Identity, Measure: entry.Seconds}

		record, err := e.client.GetUser(ctx, entry.Identity)
		if err != nil {
			logger.Warn().Str("identity", entry.Identity).Err(err).Msg("directory lookup failed")
		} else {
			details := record.Details
			user.FirstName = details.FirstName
			user.LastName = details.LastName
			user.Gender = details.Gender
			user.Status = record.Status
			user.Project = record.Project
			user.Email = SelectEmail(details)
		}

		if e.resolver != nil {
			user.Initiative = e.resolver.Initiative(
				ctx, entry.Identity, e.settings.InitiativeSuffix, e.settings.InitiativeTag)
		}
		users = append(users, user)
	}
	return users
}

// SelectEmail picks one address per user: the first whose local part
// contains both first and last name, falling back to the first address.
// Duplicates are dropped preserving order before selection.
func SelectEmail(details store.UserDetails) string {
	seen := make(map[string]struct{}, len(details.Emails))
	var addresses []string
	for _, entry := range details.Emails {
		if entry.Address == "" {
			continue
		}
		if _, dup := seen[entry.Address]; dup {
			continue
		}
		seen[entry.Address] = struct{}{}
		addresses = append(addresses, entry.Address)
	}
	if len(addresses) == 0 {
		return ""
	}

	first := strings.ToLower(details.FirstName)
	last := strings.ToLower(details.LastName)
	if first != "" && last != "" {
		for _, addr := range addresses {
			lower := strings.ToLower(addr)
			if strings.Contains(lower, first) && strings.Contains(lower, last) {
				return addr
			}
		}
	}
	return addresses[0]
}

// TopEmails returns at most n addresses from the users in order, skipping
// empty addresses and those whose domain contains skipDomain.
func TopEmails(users []domain.EnrichedUser, n int, skipDomain string) []string {
	var emails []string
	for _, user := range users {
		if len(emails) >= n {
			break
		}
		email := strings.TrimSpace(user.Email)
		if email == "" {
			continue
		}
		if skipDomain != "" {
			if _, dom, found := strings.Cut(email, "@"); found &&
				strings.Contains(strings.ToLower(dom), strings.ToLower(skipDomain)) {
				continue
			}
		}
		emails = append(emails, email)
	}
	return emails
}

// ProjectTotals sums the measure per project, reusing the aggregation
// primitive keyed on project instead of identity.
func ProjectTotals(users []domain.EnrichedUser) domain.UsageMap {
	totals := make(domain.UsageMap)
	for _, user := range users {
		totals.Add(user.Project, user.Measure)
	}
	return totals
}
