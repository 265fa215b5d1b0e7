package usage

import (
	"testing"

	"github.com/de-tools/top-users/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	lines := []string{
		"alice|lrz-gpu-a|100",
		"bob|lrz-gpu-b|50",
		"alice|lrz-gpu-a|25",
		"malformed",
		"carol|other|10",
	}
	filter := ParsePartitionFilter("lrz-gpu")

	t.Run("filters and sums per identity", func(t *testing.T) {
		totals, tally := Aggregate(NewSliceSource(lines), filter, nil)

		assert.Equal(t, domain.UsageMap{"alice": 125, "bob": 50}, totals)
		assert.Equal(t, 5, tally.Lines)
		assert.Equal(t, 3, tally.Matched)
		assert.Equal(t, 1, tally.Skipped)
	})

	t.Run("non-numeric seconds are skipped without affecting others", func(t *testing.T) {
		totals, tally := Aggregate(NewSliceSource([]string{
			"alice|lrz-gpu-a|abc",
			"bob|lrz-gpu-b|50",
		}), filter, nil)

		assert.Equal(t, domain.UsageMap{"bob": 50}, totals)
		assert.Equal(t, 1, tally.Skipped)
	})

	t.Run("negative seconds are skipped", func(t *testing.T) {
		totals, _ := Aggregate(NewSliceSource([]string{"alice|lrz-gpu-a|-5"}), filter, nil)
		assert.Empty(t, totals)
	})

	t.Run("empty identity is skipped", func(t *testing.T) {
		totals, _ := Aggregate(NewSliceSource([]string{"|lrz-gpu-a|100"}), filter, nil)
		assert.Empty(t, totals)
	})

	t.Run("chunked aggregation equals one pass", func(t *testing.T) {
		whole, _ := Aggregate(NewSliceSource(lines), filter, nil)

		acc, _ := Aggregate(NewSliceSource(lines[:2]), filter, nil)
		acc, _ = Aggregate(NewSliceSource(lines[2:]), filter, acc)

		assert.Equal(t, whole, acc)
	})

	t.Run("order does not change totals", func(t *testing.T) {
		forward, _ := Aggregate(NewSliceSource(lines), filter, nil)

		reversed := make([]string, len(lines))
		for i, line := range lines {
			reversed[len(lines)-1-i] = line
		}
		backward, _ := Aggregate(NewSliceSource(reversed), filter, nil)

		assert.Equal(t, forward, backward)
	})

	t.Run("seconds keep the full line tail", func(t *testing.T) {
		// Only the first two pipes delimit; a pipe in the tail makes the
		// seconds field non-numeric and the line is dropped.
		totals, _ := Aggregate(NewSliceSource([]string{"alice|lrz-gpu-a|10|extra"}), filter, nil)
		assert.Empty(t, totals)
	})
}

func TestPartitionFilter(t *testing.T) {
	t.Run("parse drops blanks", func(t *testing.T) {
		assert.Equal(t, PartitionFilter{"a", "b"}, ParsePartitionFilter("a, ,b,"))
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, PartitionFilter(nil).Match("anything"))
	})

	t.Run("prefix match", func(t *testing.T) {
		f := ParsePartitionFilter("lrz-gpu")
		assert.True(t, f.Match("lrz-gpu-a"))
		assert.False(t, f.Match("other"))
	})

	t.Run("wildcard matches on leading prefix", func(t *testing.T) {
		f := ParsePartitionFilter("lrz*")
		assert.True(t, f.Match("lrz-hgx-h100-94x4"))
		assert.False(t, f.Match("mcml"))
	})

	t.Run("any entry of an ordered list may match", func(t *testing.T) {
		f := ParsePartitionFilter("mcml,lrz-gpu")
		assert.True(t, f.Match("lrz-gpu-a"))
		assert.True(t, f.Match("mcml-part"))
		assert.False(t, f.Match("other"))
	})
}

func TestQualified(t *testing.T) {
	assert.True(t, Qualified("lrz-hgx-h100-94x4"))
	assert.False(t, Qualified("lrz-gpu"), "too few segments")
	assert.False(t, Qualified("lrz-hgx-h100-*"), "wildcard")
	assert.False(t, Qualified(""))
}

func TestPartitionFilter_ServerSide(t *testing.T) {
	assert.Equal(t, "lrz-hgx-h100-94x4", ParsePartitionFilter("lrz-hgx-h100-94x4").ServerSide())
	assert.Equal(t, "", ParsePartitionFilter("lrz-gpu").ServerSide())
	assert.Equal(t, "", ParsePartitionFilter("lrz-hgx-h100-94x4,other").ServerSide(),
		"multiple entries are filtered client side")
}
