package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekDates(t *testing.T) {
	t.Run("MidWeek", func(t *testing.T) {
		// 2026-03-04 is a Wednesday.
		week := WeekDates(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))
		require.Len(t, week, 7)
		assert.Equal(t, "2026-03-02", ToISO(week[0]))
		assert.Equal(t, time.Monday, week[0].Weekday())
		assert.Equal(t, "2026-03-08", ToISO(week[6]))
	})

	t.Run("SundayBelongsToPrecedingWeek", func(t *testing.T) {
		week := WeekDates(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2026-03-02", ToISO(week[0]))
	})

	t.Run("Monday", func(t *testing.T) {
		week := WeekDates(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2026-03-02", ToISO(week[0]))
	})
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2026-03-11", AddDays("2026-03-10", 1))
	assert.Equal(t, "2026-03-09", AddDays("2026-03-10", -1))
	assert.Equal(t, "2026-03-01", AddDays("2026-02-28", 1))
	// Unparseable input passes through unchanged.
	assert.Equal(t, "not-a-date", AddDays("not-a-date", 1))
}

func TestWeekLabel(t *testing.T) {
	week := WeekDates(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Mar 2 – Mar 8, 2026", WeekLabel(week))
	assert.Equal(t, "", WeekLabel(nil))
}

func TestWeekISO(t *testing.T) {
	week := WeekISO(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	require.Len(t, week, 7)
	assert.Equal(t, "2026-03-02", week[0])
	assert.Equal(t, "2026-03-08", week[6])
}
