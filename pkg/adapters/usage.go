package adapters

import (
	"github.com/de-tools/top-users/pkg/models/api"
	"github.com/de-tools/top-users/pkg/models/domain"
	"github.com/de-tools/top-users/pkg/models/store"
)

func MapUsageMapToStore(month string, usage domain.UsageMap) []store.MonthlyUsage {
	entries := usage.Sorted()
	records := make([]store.MonthlyUsage, 0, len(entries))
	for _, entry := range entries {
		records = append(records, store.MonthlyUsage{
			Month:    month,
			Identity: entry.Identity,
			Seconds:  entry.Seconds,
		})
	}
	return records
}

func MapStoreUsageToAPI(records []store.MonthlyUsage) []api.UsageEntry {
	entries := make([]api.UsageEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, api.UsageEntry{
			Identity: rec.Identity,
			Seconds:  rec.Seconds,
		})
	}
	return entries
}
