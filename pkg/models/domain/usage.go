package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateRange is an inclusive pair of calendar days, first <= last.
type DateRange struct {
	First time.Time
	Last  time.Time
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.First.Format("2006-01-02"), r.Last.Format("2006-01-02"))
}

// Month returns the YYYY-MM label of the range's first day.
func (r DateRange) Month() string {
	return r.First.Format("2006-01")
}

// UsageMap accumulates raw CPU seconds per identity. Values only grow;
// the same map may be threaded through multiple aggregation passes.
type UsageMap map[string]int64

// Add is the shared summation primitive used by both the line aggregator
// and the multi-file merge.
func (m UsageMap) Add(identity string, seconds int64) {
	m[identity] += seconds
}

// UsageEntry is one row of a usage report.
type UsageEntry struct {
	Identity string
	Seconds  int64
}

// Sorted returns the map's entries in canonical display order:
// descending seconds, ties broken by ascending identity.
func (m UsageMap) Sorted() []UsageEntry {
	entries := make([]UsageEntry, 0, len(m))
	for identity, seconds := range m {
		entries = append(entries, UsageEntry{Identity: identity, Seconds: seconds})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Seconds != entries[j].Seconds {
			return entries[i].Seconds > entries[j].Seconds
		}
		return entries[i].Identity < entries[j].Identity
	})
	return entries
}

// UsageStats describes how many months of usage are archived.
type UsageStats struct {
	Months       int
	Identities   int
	TotalSeconds int64
}
