package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiscare/internal/models"
)

func TestCheck_EmployeeDoubleBooking(t *testing.T) {
	shifts := []models.Shift{
		{EmployeeID: "EMP-001", Date: "2026-03-02", Type: models.ShiftMorning, RoomID: "ROOM-01"},
	}

	res := Check(Candidate{
		EmployeeID: "EMP-001", EmployeeName: "Maria Santos",
		Date: "2026-03-02", ShiftType: models.ShiftNight, RoomID: "ROOM-03",
	}, shifts)

	assert.False(t, res.Success)
	assert.Equal(t, models.CheckConflict, res.Status)
	require.Len(t, res.Data.Conflicts, 1)
	assert.Equal(t, models.RuleEmployeeDoubleBooking, res.Data.Conflicts[0].Rule)
	assert.Equal(t, models.SeverityCritical, res.Data.Conflicts[0].Severity)
	assert.Contains(t, res.Data.Conflicts[0].Detail, "Maria Santos")
}

func TestCheck_OffShiftDoesNotDoubleBook(t *testing.T) {
	// An existing OFF day is not a working shift; assigning work over it
	// is not a double booking.
	shifts := []models.Shift{
		{EmployeeID: "EMP-001", Date: "2026-03-02", Type: models.ShiftOff},
	}

	res := Check(Candidate{
		EmployeeID: "EMP-001", Date: "2026-03-02", ShiftType: models.ShiftMorning, RoomID: "ROOM-01",
	}, shifts)

	assert.True(t, res.Success)
	assert.Empty(t, res.Data.Conflicts)
}

func TestCheck_RoomDoubleBooking(t *testing.T) {
	shifts := []models.Shift{
		{EmployeeID: "EMP-002", Date: "2026-03-02", Type: models.ShiftMorning, RoomID: "ROOM-01"},
	}

	res := Check(Candidate{
		EmployeeID: "EMP-001", Date: "2026-03-02", ShiftType: models.ShiftAfternoon, RoomID: "ROOM-01",
	}, shifts)

	assert.False(t, res.Success)
	require.Len(t, res.Data.Conflicts, 1)
	assert.Equal(t, models.RuleRoomDoubleBooking, res.Data.Conflicts[0].Rule)
}

func TestCheck_ConsecutiveRestDays(t *testing.T) {
	shifts := []models.Shift{
		{EmployeeID: "EMP-001", Date: "2026-03-10", Type: models.ShiftOff},
	}

	t.Run("DayBefore", func(t *testing.T) {
		res := Check(Candidate{
			EmployeeID: "EMP-001", EmployeeName: "Maria Santos",
			Date: "2026-03-11", ShiftType: models.ShiftOff,
		}, shifts)

		assert.False(t, res.Success)
		require.Len(t, res.Data.Conflicts, 1)
		assert.Equal(t, models.RuleConsecutiveRestDays, res.Data.Conflicts[0].Rule)
		assert.Contains(t, res.Data.Conflicts[0].Detail, "2026-03-10")
	})

	t.Run("DayAfter", func(t *testing.T) {
		// Nothing on 2026-03-08, so the day-before probe is empty and
		// the day-after probe finds the 03-10 rest day.
		res := Check(Candidate{
			EmployeeID: "EMP-001", Date: "2026-03-09", ShiftType: models.ShiftOff,
		}, shifts)

		assert.False(t, res.Success)
		require.Len(t, res.Data.Conflicts, 1)
		assert.Contains(t, res.Data.Conflicts[0].Detail, "2026-03-10")
	})

	t.Run("DayBeforeWins", func(t *testing.T) {
		// OFF on both sides yields exactly one conflict, citing the day
		// before. First match wins; conflicts do not accumulate.
		both := append(shifts, models.Shift{EmployeeID: "EMP-001", Date: "2026-03-12", Type: models.ShiftOff})
		res := Check(Candidate{
			EmployeeID: "EMP-001", Date: "2026-03-11", ShiftType: models.ShiftOff,
		}, both)

		require.Len(t, res.Data.Conflicts, 1)
		assert.Contains(t, res.Data.Conflicts[0].Detail, "2026-03-10")
	})

	t.Run("WindowIsOneDayOnly", func(t *testing.T) {
		// A rest day two days away is outside the rule's window.
		res := Check(Candidate{
			EmployeeID: "EMP-001", Date: "2026-03-08", ShiftType: models.ShiftOff,
		}, shifts)

		assert.True(t, res.Success)
	})

	t.Run("OtherEmployeeIgnored", func(t *testing.T) {
		res := Check(Candidate{
			EmployeeID: "EMP-002", Date: "2026-03-11", ShiftType: models.ShiftOff,
		}, shifts)

		assert.True(t, res.Success)
	})
}

func TestCheck_Clear(t *testing.T) {
	shifts := []models.Shift{
		{EmployeeID: "EMP-002", Date: "2026-03-02", Type: models.ShiftMorning, RoomID: "ROOM-02"},
	}

	res := Check(Candidate{
		EmployeeID: "EMP-001", EmployeeName: "Maria Santos",
		Date: "2026-03-02", ShiftType: models.ShiftMorning, RoomID: "ROOM-01",
	}, shifts)

	assert.True(t, res.Success)
	assert.Equal(t, models.CheckClear, res.Status)
	assert.Contains(t, res.Message, "Maria Santos")
	assert.Empty(t, res.Data.Conflicts)
	// The shape matches the remote validator's response: empty slices,
	// not nulls.
	assert.NotNil(t, res.Data.Conflicts)
	assert.NotNil(t, res.Data.Alternatives.Rooms)
	assert.NotNil(t, res.Data.Alternatives.Dates)
}

func TestCheckDayOff(t *testing.T) {
	shifts := []models.Shift{
		{EmployeeID: "EMP-001", Date: "2026-03-10", Type: models.ShiftOff},
	}

	res := CheckDayOff("EMP-001", "Maria Santos", "2026-03-11", shifts)
	assert.False(t, res.Success)
	require.Len(t, res.Data.Conflicts, 1)
	assert.Equal(t, models.RuleConsecutiveRestDays, res.Data.Conflicts[0].Rule)
}
