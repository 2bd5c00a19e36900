package store

import "jiscare/internal/models"

// Cache keys, one per persisted collection. They match the layout the
// previous portal client wrote so an existing cache keeps working.
const (
	keyEmployees = "jiscare_employees_db"
	keyAuth      = "jiscare_auth_db"
	keyShifts    = "jiscare_shifts_db"
	keyDayOffs   = "jiscare_dayoff_db"
	keySession   = "jiscare_session"
)

// Seed data populates a collection the first time it is loaded with no
// persisted state and nothing pulled from the workflow service.

var seedEmployees = []models.Employee{
	{ID: "EMP-001", Name: "Maria Santos", Department: "Nursing", Position: "Senior Nurse", Email: "maria@jiscare.com"},
	{ID: "EMP-002", Name: "Juan dela Cruz", Department: "Therapy", Position: "Physiotherapist", Email: "juan@jiscare.com"},
	{ID: "EMP-003", Name: "Ana Reyes", Department: "Nursing", Position: "Staff Nurse", Email: "ana@jiscare.com"},
	{ID: "EMP-004", Name: "Carlos Mendoza", Department: "Admin", Position: "Care Coordinator", Email: "carlos@jiscare.com"},
	{ID: "EMP-005", Name: "Rosa Bautista", Department: "Therapy", Position: "Occupational Therapist", Email: "rosa@jiscare.com"},
}

var seedAuth = []models.AuthCredential{
	{ID: "EMP-001", Password: "emp001", Role: models.RoleEmployee},
	{ID: "EMP-002", Password: "emp002", Role: models.RoleEmployee},
	{ID: "EMP-003", Password: "emp003", Role: models.RoleEmployee},
	{ID: "EMP-004", Password: "emp004", Role: models.RoleEmployee},
	{ID: "EMP-005", Password: "emp005", Role: models.RoleEmployee},
	{ID: models.AdminID, Password: "admin123", Role: models.RoleAdmin},
}

var seedShifts = []models.Shift{
	{EmployeeID: "EMP-001", Date: "2026-02-24", Type: models.ShiftMorning, StartTime: "7:30 AM", EndTime: "12:30 PM", RoomID: "ROOM-01"},
	{EmployeeID: "EMP-002", Date: "2026-02-24", Type: models.ShiftMorning, StartTime: "7:30 AM", EndTime: "12:30 PM", RoomID: "ROOM-02"},
	{EmployeeID: "EMP-003", Date: "2026-02-24", Type: models.ShiftAfternoon, StartTime: "12:30 PM", EndTime: "5:30 PM", RoomID: "ROOM-01"},
}

var seedDayOffs = []models.DayOffRequest{}

// Rooms is the static reference list; it is never persisted or mutated
// at runtime.
var Rooms = []models.Room{
	{ID: "ROOM-01", Name: "Room 101 — General", Capacity: 4, Location: "Ground Floor"},
	{ID: "ROOM-02", Name: "Room 102 — ICU", Capacity: 2, Location: "Ground Floor"},
	{ID: "ROOM-03", Name: "Room 201 — Therapy", Capacity: 3, Location: "Second Floor"},
	{ID: "ROOM-04", Name: "Room 202 — Recovery", Capacity: 4, Location: "Second Floor"},
}

// AdminProfile is the fixed session profile of the built-in admin.
var AdminProfile = models.Session{
	ID:         models.AdminID,
	Name:       "Admin User",
	Role:       models.RoleAdmin,
	Department: "Management",
	Position:   "Scheduler Admin",
	Email:      "admin@jiscare.com",
}
