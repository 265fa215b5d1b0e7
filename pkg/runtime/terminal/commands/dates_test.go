package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOrMonth(t *testing.T) {
	t.Run("full date", func(t *testing.T) {
		spec, err := ParseDateOrMonth("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), spec.Value)
		assert.False(t, spec.IsMonth)
	})

	t.Run("month only", func(t *testing.T) {
		spec, err := ParseDateOrMonth("2024-02")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), spec.Value)
		assert.True(t, spec.IsMonth)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDateOrMonth("last tuesday")
		assert.Error(t, err)
	})
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		EndOfMonth(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		EndOfMonth(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolveRange(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("month-only start expands to the whole month", func(t *testing.T) {
		start, _ := ParseDateOrMonth("2024-01")
		from, to, err := ResolveRange(start, nil, today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("current month clamps to today", func(t *testing.T) {
		start, _ := ParseDateOrMonth("2024-03")
		_, to, err := ResolveRange(start, nil, today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("day start requires an end", func(t *testing.T) {
		start, _ := ParseDateOrMonth("2024-01-15")
		_, _, err := ResolveRange(start, nil, today)
		assert.Error(t, err)
	})

	t.Run("month end expands to its last day", func(t *testing.T) {
		start, _ := ParseDateOrMonth("2024-01-15")
		end, _ := ParseDateOrMonth("2024-02")
		_, to, err := ResolveRange(start, &end, today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("end before start", func(t *testing.T) {
		start, _ := ParseDateOrMonth("2024-03-01")
		end, _ := ParseDateOrMonth("2024-01-01")
		_, _, err := ResolveRange(start, &end, today)
		assert.Error(t, err)
	})
}
