package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiscare/internal/models"
)

func TestWeeklySchedule(t *testing.T) {
	emp := models.Employee{ID: "EMP-001", Name: "Maria Santos"}
	ref := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) // Wednesday
	shifts := []models.Shift{
		{EmployeeID: "EMP-001", Date: "2026-03-03", Type: models.ShiftMorning,
			StartTime: "7:30 AM", EndTime: "12:30 PM", RoomID: "ROOM-01", Notes: "handover"},
		{EmployeeID: "EMP-001", Date: "2026-03-05", Type: models.ShiftOff},
		// Another employee's shift must not leak into the sheet.
		{EmployeeID: "EMP-002", Date: "2026-03-02", Type: models.ShiftNight,
			StartTime: "10:00 PM", EndTime: "6:00 AM", RoomID: "ROOM-02"},
	}

	f, err := WeeklySchedule(emp, ref, shifts)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Schedule", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Weekly Schedule — Maria Santos (EMP-001)", cell("A1"))
	assert.Equal(t, "Mar 2 – Mar 8, 2026", cell("A2"))
	assert.Equal(t, "Day", cell("A4"))
	assert.Equal(t, "Notes", cell("G4"))

	// Monday has no shift.
	assert.Equal(t, "Mon", cell("A5"))
	assert.Equal(t, "2026-03-02", cell("B5"))
	assert.Equal(t, "—", cell("C5"))

	// Tuesday carries the morning shift.
	assert.Equal(t, models.ShiftMorning, cell("C6"))
	assert.Equal(t, "7:30 AM", cell("D6"))
	assert.Equal(t, "ROOM-01", cell("F6"))
	assert.Equal(t, "handover", cell("G6"))

	// Thursday is the rest day; times stay dashed.
	assert.Equal(t, models.ShiftOff, cell("C8"))
	assert.Equal(t, "—", cell("D8"))
}

func TestWriteWeeklySchedule(t *testing.T) {
	var buf bytes.Buffer
	emp := models.Employee{ID: "EMP-001", Name: "Maria Santos"}
	ref := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, WriteWeeklySchedule(&buf, emp, ref, nil))
	// xlsx files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}

func TestFilename(t *testing.T) {
	ref := time.Date(2026, 3, 6, 18, 0, 0, 0, time.UTC) // Friday
	assert.Equal(t, "JISCare_Schedule_EMP-001_2026-03-02.xlsx", Filename("EMP-001", ref))
}
