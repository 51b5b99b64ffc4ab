package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStart(t *testing.T) {
	// Thursday 2026-03-19 15:04:05
	ts := time.Date(2026, 3, 19, 15, 4, 5, 0, time.UTC)

	t.Run("Day truncates to midnight", func(t *testing.T) {
		start := PeriodStart(ts, "day")
		assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("Week starts on Monday", func(t *testing.T) {
		start := PeriodStart(ts, "week")
		assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Monday, start.Weekday())
	})

	t.Run("Sunday belongs to the preceding Monday's week", func(t *testing.T) {
		sunday := time.Date(2026, 3, 22, 23, 59, 0, 0, time.UTC)
		start := PeriodStart(sunday, "week")
		assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("Month truncates to the first", func(t *testing.T) {
		start := PeriodStart(ts, "month")
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	})
}

func TestSamePeriod(t *testing.T) {
	morning := time.Date(2026, 3, 19, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 19, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 20, 1, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 3, 23, 1, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, SamePeriod(morning, evening, "day"))
	assert.False(t, SamePeriod(morning, nextDay, "day"))

	assert.True(t, SamePeriod(morning, nextDay, "week"))
	assert.False(t, SamePeriod(morning, nextMonday, "week"))

	assert.True(t, SamePeriod(morning, nextMonday, "month"))
	assert.False(t, SamePeriod(morning, nextMonth, "month"))
}
