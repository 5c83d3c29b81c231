package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleWindow(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		cycle int
		start time.Time
		end   time.Time
	}{
		{
			name: "first cycle", year: 2026, month: time.March, cycle: 1,
			start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "second cycle", year: 2026, month: time.March, cycle: 2,
			start: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "third cycle runs to month end", year: 2026, month: time.March, cycle: 3,
			start: time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "third cycle of february", year: 2026, month: time.February, cycle: 3,
			start: time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "third cycle of december crosses the year", year: 2025, month: time.December, cycle: 3,
			start: time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := CycleWindow(tt.year, tt.month, tt.cycle)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}

	t.Run("rejects cycle 0 and 4", func(t *testing.T) {
		_, _, err := CycleWindow(2026, time.March, 0)
		assert.Error(t, err)
		_, _, err = CycleWindow(2026, time.March, 4)
		assert.Error(t, err)
	})
}

func TestCycleWindowsTileTheMonth(t *testing.T) {
	// Consecutive windows must share a boundary so every date lands in
	// exactly one cycle.
	for cycle := 1; cycle < 3; cycle++ {
		_, end, err := CycleWindow(2026, time.February, cycle)
		require.NoError(t, err)
		start, _, err := CycleWindow(2026, time.February, cycle+1)
		require.NoError(t, err)
		assert.Equal(t, end, start)
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2026, time.December)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestYearWindow(t *testing.T) {
	start, end := YearWindow(2026)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDayWindow(t *testing.T) {
	start, end := DayWindow(time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), end)
}
