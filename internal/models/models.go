package models

import (
	"fmt"
	"strings"
	"time"
)

// Roles recognized by the auth database.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// AdminID is the fixed identifier of the built-in admin account.
const AdminID = "ADMIN-001"

// Shift types. OFF marks an explicit rest day.
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
	ShiftNight     = "Night"
	ShiftOff       = "OFF"
)

// Day-off request statuses.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DayOffReasons is the fixed list of accepted reasons.
var DayOffReasons = []string{
	"Medical appointment",
	"Family event",
	"Personal errand",
	"Rest & recovery",
	"Emergency",
	"Other",
}

// ValidDayOffReason reports whether reason is one of DayOffReasons.
func ValidDayOffReason(reason string) bool {
	for _, r := range DayOffReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Employee is a staff record. JSON field names follow the sheet column
// headers used by the workflow service.
type Employee struct {
	ID               string `json:"Employee_ID"`
	Name             string `json:"Name"`
	Department       string `json:"Department"`
	Position         string `json:"Position"`
	Email            string `json:"Email"`
	Phone            string `json:"Phone,omitempty"`
	EmploymentType   string `json:"Employment_Type,omitempty"`
	HireDate         string `json:"Hire_Date,omitempty"`
	LicenseNumber    string `json:"License_Number,omitempty"`
	Address          string `json:"Address,omitempty"`
	EmergencyContact string `json:"Emergency_Contact,omitempty"`
	BloodType        string `json:"Blood_Type,omitempty"`
	CivilStatus      string `json:"Civil_Status,omitempty"`
}

// AuthCredential is a login entry. Passwords are stored and compared in
// plaintext to match the system this portal replaces; see the session
// manager tests for the explicit flag on that behavior.
type AuthCredential struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Shift is one assignment (or explicit rest day) for one employee on one
// date. At most one shift exists per (EmployeeID, Date); the store's
// upsert enforces that at the write boundary.
type Shift struct {
	EmployeeID string `json:"Employee_ID"`
	Date       string `json:"Date"` // ISO YYYY-MM-DD
	Type       string `json:"Shift_Type"`
	StartTime  string `json:"Start_Time"`
	EndTime    string `json:"End_Time"`
	RoomID     string `json:"Room_ID"`
	Notes      string `json:"Notes"`

	// PendingSync marks a shift written locally while the workflow
	// service was unreachable. The reconciler re-pushes it later.
	PendingSync bool `json:"Pending_Sync,omitempty"`
}

// IsOff reports whether the shift is an explicit rest day.
func (s *Shift) IsOff() bool {
	return strings.EqualFold(s.Type, ShiftOff)
}

// Key returns the compound identity of the shift.
func (s *Shift) Key() string {
	return s.EmployeeID + "|" + s.Date
}

// TimeRange renders the display time span, empty for rest days.
func (s *Shift) TimeRange() string {
	if s.StartTime == "" || s.EndTime == "" {
		return ""
	}
	return s.StartTime + " – " + s.EndTime
}

// DayOffRequest is an employee-initiated leave request. Requests are
// never deleted; only Status and ManagerNote change after creation.
type DayOffRequest struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"Employee_ID"`
	EmployeeName string `json:"Employee_Name"`
	Date         string `json:"Date"` // ISO YYYY-MM-DD
	Status       string `json:"Status"`
	Reason       string `json:"Reason"`
	Notes        string `json:"Notes,omitempty"`
	RequestedOn  string `json:"Requested_On"`
	ManagerNote  string `json:"Manager_Note"`

	// PendingSync marks a request stored while the workflow service was
	// unreachable; it still needs remote validation.
	PendingSync bool `json:"Pending_Sync,omitempty"`
}

// NewDayOffID returns a time-based request identifier, e.g. DO-1764514800123.
func NewDayOffID(now time.Time) string {
	return fmt.Sprintf("DO-%d", now.UnixMilli())
}

// Room is a static reference entry; rooms are not mutated at runtime.
type Room struct {
	ID       string `json:"Room_ID"`
	Name     string `json:"Room_Name"`
	Capacity int    `json:"Capacity"`
	Location string `json:"Location"`
}

// Session is the authenticated user as seen by the view layer. It never
// carries the password.
type Session struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"dept"`
	Position   string `json:"position"`
	Email      string `json:"email"`
}

// IsAdmin reports whether the session belongs to the admin account.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Conflict is one violated scheduling rule.
type Conflict struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Detail   string `json:"detail"`
}

// Conflict rule names, as the workflow service reports them.
const (
	RuleEmployeeDoubleBooking = "Employee Double-Booking"
	RuleRoomDoubleBooking     = "Room Double-Booking"
	RuleConsecutiveRestDays   = "Consecutive Rest Days"

	SeverityCritical = "Critical"
)

// AltRoom is a suggested alternative room.
type AltRoom struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
}

// AltDate is a suggested alternative date.
type AltDate struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// Alternatives carries scheduling suggestions alongside conflicts.
type Alternatives struct {
	Rooms []AltRoom `json:"rooms"`
	Dates []AltDate `json:"dates"`
}

// CheckData is the data envelope of a validation verdict.
type CheckData struct {
	Conflicts     []Conflict   `json:"conflicts"`
	Alternatives  Alternatives `json:"alternatives"`
	SuggestedDate string       `json:"suggested_date,omitempty"`
	AIReasoning   string       `json:"ai_reasoning,omitempty"`
}

// CheckResult is a validation verdict. The local fallback checker
// produces the same shape as the remote validator so callers never
// branch on the source.
type CheckResult struct {
	Success bool      `json:"success"`
	Status  string    `json:"status"` // "clear" or "conflict"
	Message string    `json:"message"`
	Data    CheckData `json:"data"`
}

// Check statuses.
const (
	CheckClear    = "clear"
	CheckConflict = "conflict"
)
