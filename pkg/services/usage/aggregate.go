package usage

import (
	"strconv"
	"strings"

	"github.com/de-tools/top-users/pkg/models/domain"
)

// LineSource yields accounting lines one at a time. It is satisfied by
// sacct.LineStream and by the in-memory sources used in tests.
type LineSource interface {
	Next() bool
	Text() string
}

// Tally counts what happened to the lines of one aggregation pass. The
// upstream feed is noisy, so skipped lines are expected; the counts give
// callers visibility into how much was dropped.
type Tally struct {
	Lines   int
	Matched int
	Skipped int
}

// Aggregate folds accounting lines of the form "identity|partition|seconds"
// into per-identity totals. Lines whose partition does not match the filter
// or whose identity is empty do not contribute. Malformed lines and
// non-numeric or negative seconds are skipped silently; that tolerance is
// deliberate, the upstream feed occasionally carries sentinel values.
//
// When acc is nil a fresh map is returned; passing the same map across
// calls accumulates across months or files.
func Aggregate(lines LineSource, filter PartitionFilter, acc domain.UsageMap) (domain.UsageMap, Tally) {
	if acc == nil {
		acc = make(domain.UsageMap)
	}

	var tally Tally
	for lines.Next() {
		tally.Lines++

		identity, partition, seconds, ok := splitRecord(lines.Text())
		if !ok || identity == "" {
			tally.Skipped++
			continue
		}
		if !filter.Match(partition) {
			continue
		}
		n, err := strconv.ParseInt(seconds, 10, 64)
		if err != nil || n < 0 {
			tally.Skipped++
			continue
		}
		acc.Add(identity, n)
		tally.Matched++
	}
	return acc, tally
}

// splitRecord splits on the first two pipe delimiters only; partition data
// never contains pipes but the trailing field is taken as-is.
func splitRecord(line string) (identity, partition, seconds string, ok bool) {
	fields := strings.SplitN(line, "|", 3)
	if len(fields) != 3 {
		return "", "", "", false
	}
	return fields[0], fields[1], fields[2], true
}

// SliceSource adapts a fixed set of lines to a LineSource.
type SliceSource struct {
	lines []string
	pos   int
}

func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

func (s *SliceSource) Next() bool {
	if s.pos >= len(s.lines) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceSource) Text() string {
	return s.lines[s.pos-1]
}
