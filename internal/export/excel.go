// Package export renders weekly schedules as Excel workbooks for
// download and printing.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"jiscare/internal/dates"
	"jiscare/internal/models"
)

var columns = []string{"Day", "Date", "Shift Type", "Start Time", "End Time", "Room", "Notes"}

// WeeklySchedule builds a one-sheet workbook with the employee's shifts
// for the week containing ref. Days without a shift render as dashes.
func WeeklySchedule(emp models.Employee, ref time.Time, shifts []models.Shift) (*excelize.File, error) {
	f := excelize.NewFile()
	week := dates.WeekDates(ref)

	sheet := "Schedule"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("Weekly Schedule — %s (%s)", emp.Name, emp.ID)); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A2", dates.WeekLabel(week)); err != nil {
		return nil, err
	}

	headerRow := 4
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		start, _ := excelize.CoordinatesToCellName(1, headerRow)
		end, _ := excelize.CoordinatesToCellName(len(columns), headerRow)
		_ = f.SetCellStyle(sheet, start, end, style)
	}

	offStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "6A1B9A"}})

	byDate := make(map[string]models.Shift, len(shifts))
	for _, s := range shifts {
		if s.EmployeeID == emp.ID {
			byDate[s.Date] = s
		}
	}

	for i, day := range week {
		row := headerRow + 1 + i
		iso := dates.ToISO(day)
		values := []any{dates.DaysShort[day.Weekday()], iso, "—", "—", "—", "—", ""}
		shift, ok := byDate[iso]
		if ok {
			values[2] = shift.Type
			if shift.StartTime != "" {
				values[3] = shift.StartTime
			}
			if shift.EndTime != "" {
				values[4] = shift.EndTime
			}
			if shift.RoomID != "" {
				values[5] = shift.RoomID
			}
			values[6] = shift.Notes
		}
		for j, val := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
		if ok && shift.IsOff() && offStyle != 0 {
			start, _ := excelize.CoordinatesToCellName(1, row)
			end, _ := excelize.CoordinatesToCellName(len(columns), row)
			_ = f.SetCellStyle(sheet, start, end, offStyle)
		}
	}

	_ = f.SetColWidth(sheet, "A", "G", 16)
	return f, nil
}

// WriteWeeklySchedule builds the workbook and writes it to w.
func WriteWeeklySchedule(w io.Writer, emp models.Employee, ref time.Time, shifts []models.Shift) error {
	f, err := WeeklySchedule(emp, ref, shifts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Filename returns the suggested download name for the workbook.
func Filename(employeeID string, ref time.Time) string {
	monday := dates.WeekDates(ref)[0]
	return fmt.Sprintf("JISCare_Schedule_%s_%s.xlsx", employeeID, monday.Format("2006-01-02"))
}
