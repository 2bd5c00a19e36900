// Package checker approximates the workflow service's schedule verdict
// when it is unreachable, so the portal is never fully blocked offline.
// The result has the exact shape of the remote validator's response.
package checker

import (
	"fmt"

	"jiscare/internal/dates"
	"jiscare/internal/models"
)

// Candidate is the assignment being evaluated.
type Candidate struct {
	EmployeeID   string
	EmployeeName string // display name for conflict details, falls back to the id
	Date         string // ISO YYYY-MM-DD
	ShiftType    string
	RoomID       string
}

func (c *Candidate) displayName() string {
	if c.EmployeeName != "" {
		return c.EmployeeName
	}
	return c.EmployeeID
}

func (c *Candidate) isOff() bool {
	return c.ShiftType == models.ShiftOff
}

// Check evaluates the candidate against the current shift collection.
// Rules run in a fixed order, each contributing at most one conflict:
//
//  1. employee double-booking, for working candidates
//  2. room double-booking, for working candidates
//  3. consecutive rest days (±1 day only), for OFF candidates; the day
//     before is checked first and the day after only when the day before
//     found nothing
//
// The ±1-day window is deliberate: longer runs of rest days are the
// remote validator's business, not the fallback's.
func Check(candidate Candidate, shifts []models.Shift) models.CheckResult {
	var conflicts []models.Conflict

	if !candidate.isOff() {
		for _, s := range shifts {
			if s.EmployeeID == candidate.EmployeeID && s.Date == candidate.Date && !s.IsOff() {
				conflicts = append(conflicts, models.Conflict{
					Rule:     models.RuleEmployeeDoubleBooking,
					Severity: models.SeverityCritical,
					Detail:   fmt.Sprintf("%s already has a shift on this date.", candidate.displayName()),
				})
				break
			}
		}
		for _, s := range shifts {
			if s.RoomID == candidate.RoomID && s.Date == candidate.Date && !s.IsOff() {
				conflicts = append(conflicts, models.Conflict{
					Rule:     models.RuleRoomDoubleBooking,
					Severity: models.SeverityCritical,
					Detail:   "Room is already booked on this date.",
				})
				break
			}
		}
	} else {
		before := dates.AddDays(candidate.Date, -1)
		after := dates.AddDays(candidate.Date, 1)
		if adjacent := findOff(shifts, candidate.EmployeeID, before); adjacent != "" {
			conflicts = append(conflicts, restDayConflict(candidate.displayName(), adjacent))
		} else if adjacent := findOff(shifts, candidate.EmployeeID, after); adjacent != "" {
			conflicts = append(conflicts, restDayConflict(candidate.displayName(), adjacent))
		}
	}

	return buildResult(candidate.displayName(), conflicts)
}

// CheckDayOff evaluates a candidate day-off date: the same rest-day
// adjacency rule applies, since an approved day off becomes an OFF shift.
func CheckDayOff(employeeID, employeeName, date string, shifts []models.Shift) models.CheckResult {
	return Check(Candidate{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Date:         date,
		ShiftType:    models.ShiftOff,
	}, shifts)
}

func findOff(shifts []models.Shift, employeeID, date string) string {
	for _, s := range shifts {
		if s.EmployeeID == employeeID && s.Date == date && s.IsOff() {
			return date
		}
	}
	return ""
}

func restDayConflict(name, date string) models.Conflict {
	return models.Conflict{
		Rule:     models.RuleConsecutiveRestDays,
		Severity: models.SeverityCritical,
		Detail:   fmt.Sprintf("%s already has a rest day on %s.", name, date),
	}
}

func buildResult(name string, conflicts []models.Conflict) models.CheckResult {
	if len(conflicts) == 0 {
		return models.CheckResult{
			Success: true,
			Status:  models.CheckClear,
			Message: fmt.Sprintf("Schedule looks clear for %s! No conflicts found.", name),
			Data: models.CheckData{
				Conflicts:    []models.Conflict{},
				Alternatives: models.Alternatives{Rooms: []models.AltRoom{}, Dates: []models.AltDate{}},
			},
		}
	}
	return models.CheckResult{
		Success: false,
		Status:  models.CheckConflict,
		Message: fmt.Sprintf("Conflicts detected for %s.", name),
		Data: models.CheckData{
			Conflicts:    conflicts,
			Alternatives: models.Alternatives{Rooms: []models.AltRoom{}, Dates: []models.AltDate{}},
		},
	}
}
