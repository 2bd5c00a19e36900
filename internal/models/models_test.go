package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDayOffID(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "DO-1772443800000", NewDayOffID(now))
}

func TestShift_IsOff(t *testing.T) {
	assert.True(t, (&Shift{Type: ShiftOff}).IsOff())
	assert.True(t, (&Shift{Type: "off"}).IsOff())
	assert.False(t, (&Shift{Type: ShiftMorning}).IsOff())
	assert.False(t, (&Shift{}).IsOff())
}

func TestShift_Key(t *testing.T) {
	s := Shift{EmployeeID: "EMP-001", Date: "2026-03-02"}
	assert.Equal(t, "EMP-001|2026-03-02", s.Key())
}

func TestShift_TimeRange(t *testing.T) {
	assert.Equal(t, "7:30 AM – 12:30 PM", (&Shift{StartTime: "7:30 AM", EndTime: "12:30 PM"}).TimeRange())
	assert.Equal(t, "", (&Shift{StartTime: "7:30 AM"}).TimeRange())
	assert.Equal(t, "", (&Shift{}).TimeRange())
}

func TestValidDayOffReason(t *testing.T) {
	for _, reason := range DayOffReasons {
		assert.True(t, ValidDayOffReason(reason), reason)
	}
	assert.False(t, ValidDayOffReason("Vibes"))
	assert.False(t, ValidDayOffReason(""))
}

func TestSession_IsAdmin(t *testing.T) {
	assert.True(t, (&Session{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Session{Role: RoleEmployee}).IsAdmin())
}
