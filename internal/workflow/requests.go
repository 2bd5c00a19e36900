package workflow

// ScheduleCheckRequest is the schedule-check payload. RoomID is null on
// the wire for rest days.
type ScheduleCheckRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ShiftType  string  `json:"shift_type"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	RoomID     *string `json:"room_id"`
	Notes      string  `json:"notes"`
}

// DayOffSubmitRequest is the dayoff-submit payload.
type DayOffSubmitRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	RequestDate  string `json:"request_date"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}

// EmailShiftRow is one day in a mailed weekly schedule.
type EmailShiftRow struct {
	Day   string `json:"day"`
	Date  string `json:"date"`
	Shift string `json:"shift"`
	Time  string `json:"time"`
	Room  string `json:"room"`
}

// ScheduleEmailRequest is the send-schedule-email payload.
type ScheduleEmailRequest struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	EmployeeEmail string          `json:"employee_email"`
	WeekLabel     string          `json:"week_label"`
	Shifts        []EmailShiftRow `json:"shifts"`
}
