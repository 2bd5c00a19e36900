// Package roster owns employee records and their credentials: creation
// with id assignment and password rules, edits, cascading deletes, and
// the weekly schedule email.
package roster

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jiscare/internal/dates"
	"jiscare/internal/models"
	"jiscare/internal/password"
	"jiscare/internal/store"
	"jiscare/internal/workflow"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validation errors, handled locally and never sent to the remote.
var (
	ErrNameRequired = errors.New("employee name is required")
	ErrBadEmail     = errors.New("email address is malformed")
	ErrNotFound     = errors.New("employee not found")
)

// Remote is the slice of the workflow client this service needs.
type Remote interface {
	CreateEmployee(ctx context.Context, emp models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	SendScheduleEmail(ctx context.Context, req workflow.ScheduleEmailRequest) error
}

// Service manages the employee roster.
type Service struct {
	store  *store.Store
	remote Remote
	logger *zerolog.Logger
}

// NewService constructs the roster service.
func NewService(st *store.Store, remote Remote, logger *zerolog.Logger) *Service {
	return &Service{store: st, remote: remote, logger: logger}
}

// Create adds an employee and their credential. An empty id gets the
// next free EMP-NNN; the password must pass all six strength rules.
// The remote push is best-effort, the local write is authoritative for
// this session.
func (s *Service) Create(ctx context.Context, emp models.Employee, pw string) (models.Employee, error) {
	if err := validate(emp); err != nil {
		return models.Employee{}, err
	}
	if emp.ID == "" {
		emp.ID = s.store.NextEmployeeID()
	}
	if failed := password.Validate(pw, emp.ID); len(failed) > 0 {
		return models.Employee{}, fmt.Errorf("password needs %s", strings.Join(failed, ", "))
	}

	if err := s.store.SaveEmployee(emp); err != nil {
		s.logger.Warn().Err(err).Str("employee", emp.ID).Msg("employee not persisted")
	}
	if err := s.store.SaveAuthEntry(models.AuthCredential{ID: emp.ID, Password: pw, Role: models.RoleEmployee}); err != nil {
		s.logger.Warn().Err(err).Str("employee", emp.ID).Msg("credential not persisted")
	}

	if err := s.remote.CreateEmployee(ctx, emp); err != nil {
		s.logger.Warn().Err(err).Str("employee", emp.ID).Msg("remote employee write failed")
	}
	return emp, nil
}

// Update edits an existing employee record.
func (s *Service) Update(ctx context.Context, emp models.Employee) error {
	if err := validate(emp); err != nil {
		return err
	}
	if _, ok := s.store.EmployeeByID(emp.ID); !ok {
		return ErrNotFound
	}
	if err := s.remote.CreateEmployee(ctx, emp); err != nil {
		s.logger.Warn().Err(err).Str("employee", emp.ID).Msg("remote employee update failed")
	}
	return s.store.SaveEmployee(emp)
}

// Delete removes the employee and cascades to the matching credential.
// Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.remote.DeleteEmployee(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("employee", id).Msg("remote employee delete failed")
	}
	if err := s.store.DeleteEmployee(id); err != nil {
		return err
	}
	return s.store.DeleteAuthEntry(id)
}

// EmailWeeklySchedule asks the workflow service to mail the employee
// their schedule for the week containing ref.
func (s *Service) EmailWeeklySchedule(ctx context.Context, employeeID string, ref time.Time) error {
	emp, ok := s.store.EmployeeByID(employeeID)
	if !ok {
		return ErrNotFound
	}

	week := dates.WeekDates(ref)
	rows := make([]workflow.EmailShiftRow, 0, len(week))
	for _, day := range week {
		iso := dates.ToISO(day)
		row := workflow.EmailShiftRow{
			Day:   dates.DaysShort[day.Weekday()],
			Date:  iso,
			Shift: "Not Scheduled",
			Time:  "—",
			Room:  "—",
		}
		if shift, ok := s.store.ShiftFor(employeeID, iso); ok {
			row.Shift = shift.Type
			if tr := shift.TimeRange(); tr != "" {
				row.Time = tr
			}
			if shift.RoomID != "" {
				row.Room = shift.RoomID
			}
		}
		rows = append(rows, row)
	}

	return s.remote.SendScheduleEmail(ctx, workflow.ScheduleEmailRequest{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		WeekLabel:     dates.WeekLabel(week),
		Shifts:        rows,
	})
}

func validate(emp models.Employee) error {
	if strings.TrimSpace(emp.Name) == "" {
		return ErrNameRequired
	}
	if emp.Email != "" && !emailPattern.MatchString(emp.Email) {
		return ErrBadEmail
	}
	return nil
}
