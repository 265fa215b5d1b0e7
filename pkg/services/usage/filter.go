package usage

import "strings"

// PartitionFilter is an ordered list of partition prefixes, optionally
// carrying a trailing wildcard (e.g. "lrz*"). An empty filter matches
// every partition.
type PartitionFilter []string

// ParsePartitionFilter splits a comma-separated filter string and drops
// blank entries.
func ParsePartitionFilter(raw string) PartitionFilter {
	var filter PartitionFilter
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			filter = append(filter, item)
		}
	}
	return filter
}

// Match reports whether the partition name matches any filter entry.
// Matching is prefix based; for wildcard entries only the text before the
// first wildcard is considered.
func (f PartitionFilter) Match(partition string) bool {
	if len(f) == 0 {
		return true
	}
	for _, entry := range f {
		prefix := entry
		if i := strings.IndexAny(entry, "*?"); i >= 0 {
			prefix = entry[:i]
		}
		if strings.HasPrefix(partition, prefix) {
			return true
		}
	}
	return false
}

// ServerSide returns the single filter entry suitable for pushdown to the
// accounting command, or "" when none applies. Pushdown only happens for a
// lone fully qualified entry; anything broader is filtered client side so
// the query stays complete.
func (f PartitionFilter) ServerSide() string {
	if len(f) != 1 {
		return ""
	}
	if Qualified(f[0]) {
		return f[0]
	}
	return ""
}

// Qualified reports whether a partition name is fully qualified: no
// wildcards and at least three dash separators, matching the cluster's
// partition naming scheme (e.g. "lrz-hgx-h100-94x4").
func Qualified(partition string) bool {
	if partition == "" || strings.ContainsAny(partition, "*?") {
		return false
	}
	return strings.Count(partition, "-") >= 3
}
