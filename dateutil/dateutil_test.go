package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonthWrapsYear(t *testing.T) {
	year, month := PreviousMonth(2026, 1)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 12, month)

	year, month = PreviousMonth(2026, 7)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 6, month)
}

func TestNextMonthWrapsYear(t *testing.T) {
	year, month := NextMonth(2025, 12)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 1, month)

	year, month = NextMonth(2026, 7)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 8, month)
}

func TestIsFutureMonth(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsFutureMonth(2026, 8, now))
	assert.False(t, IsFutureMonth(2026, 7, now))
	assert.False(t, IsFutureMonth(2025, 12, now))
	assert.True(t, IsFutureMonth(2026, 9, now))
	assert.True(t, IsFutureMonth(2027, 1, now))
}

func TestMonthRangeBoundaries(t *testing.T) {
	start, end := MonthRange(2026, 2, time.UTC)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), end)

	// the last instant of February is inside the range, March midnight is not
	lastInstant := end.Add(-time.Nanosecond)
	assert.True(t, !lastInstant.Before(start) && lastInstant.Before(end))
	assert.False(t, end.Before(end))
}

func TestMonthRangeDecemberWrapsYear(t *testing.T) {
	start, end := MonthRange(2025, 12, time.UTC)

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2026, time.August, 28, 23, 59, 59, 0, loc)

	midnight := StartOfDay(ts)
	assert.Equal(t, time.Date(2026, time.August, 28, 0, 0, 0, 0, loc), midnight)
	assert.Equal(t, loc, midnight.Location())
}
