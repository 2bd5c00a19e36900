// Package schedule owns shift writes and conflict checks: remote first,
// local fallback, with an explicit pending-sync flag instead of assuming
// the remote write landed.
package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"jiscare/internal/checker"
	"jiscare/internal/metrics"
	"jiscare/internal/models"
	"jiscare/internal/store"
	"jiscare/internal/workflow"
)

// Validator is the slice of the workflow client this service needs.
type Validator interface {
	CheckSchedule(ctx context.Context, req workflow.ScheduleCheckRequest) (*models.CheckResult, error)
	CreateShift(ctx context.Context, shift models.Shift) error
	DeleteShift(ctx context.Context, employeeID, date string) error
}

// Service coordinates schedule mutations between the remote validator
// and the local store.
type Service struct {
	store  *store.Store
	remote Validator
	logger *zerolog.Logger
}

// NewService constructs the schedule service.
func NewService(st *store.Store, remote Validator, logger *zerolog.Logger) *Service {
	return &Service{store: st, remote: remote, logger: logger}
}

// Check asks the remote validator for a verdict on the candidate shift
// and falls back to the local checker when the remote is unreachable.
// Both paths return the same result shape, so callers never branch on
// the source.
func (s *Service) Check(ctx context.Context, shift models.Shift) *models.CheckResult {
	req := workflow.ScheduleCheckRequest{
		EmployeeID: shift.EmployeeID,
		Date:       shift.Date,
		ShiftType:  shift.Type,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		Notes:      shift.Notes,
	}
	if !shift.IsOff() {
		room := shift.RoomID
		req.RoomID = &room
	}

	if res, err := s.remote.CheckSchedule(ctx, req); err == nil {
		metrics.IncConflictCheck("remote")
		s.countConflicts(res)
		return res
	} else {
		s.logger.Debug().Err(err).Msg("validator unreachable, using local checker")
	}

	name := shift.EmployeeID
	if emp, ok := s.store.EmployeeByID(shift.EmployeeID); ok {
		name = emp.Name
	}
	res := checker.Check(checker.Candidate{
		EmployeeID:   shift.EmployeeID,
		EmployeeName: name,
		Date:         shift.Date,
		ShiftType:    shift.Type,
		RoomID:       shift.RoomID,
	}, s.store.Shifts())
	metrics.IncConflictCheck("fallback")
	s.countConflicts(&res)
	return &res
}

func (s *Service) countConflicts(res *models.CheckResult) {
	for _, c := range res.Data.Conflicts {
		metrics.IncConflictFound(c.Rule)
	}
}

// Save writes the shift in two phases: push to the workflow service,
// then write locally. A failed push marks the local copy PendingSync so
// the reconciler can detect and resolve the drift later. The returned
// bool reports whether the shift is still waiting for the remote.
func (s *Service) Save(ctx context.Context, shift models.Shift) (bool, error) {
	if shift.IsOff() {
		shift.StartTime, shift.EndTime, shift.RoomID = "", "", ""
	}

	if err := s.remote.CreateShift(ctx, shift); err != nil {
		s.logger.Warn().Err(err).Str("shift", shift.Key()).Msg("remote shift write failed, saving as pending")
		shift.PendingSync = true
	} else {
		shift.PendingSync = false
	}

	if shift.PendingSync {
		metrics.IncShiftSaved("pending")
	} else {
		metrics.IncShiftSaved("synced")
	}
	return shift.PendingSync, s.store.SaveShift(shift)
}

// Delete removes the shift remotely (best-effort) and locally (always).
func (s *Service) Delete(ctx context.Context, employeeID, date string) error {
	if err := s.remote.DeleteShift(ctx, employeeID, date); err != nil {
		s.logger.Warn().Err(err).Str("employee", employeeID).Str("date", date).
			Msg("remote shift delete failed")
	}
	return s.store.DeleteShift(employeeID, date)
}

// Reconcile re-pushes every pending-sync shift, clearing the flag on
// success. Failures stay pending for the next pass.
func (s *Service) Reconcile(ctx context.Context) {
	for _, shift := range s.store.PendingShifts() {
		if err := s.remote.CreateShift(ctx, shift); err != nil {
			metrics.IncReconciled("shift", "failure")
			s.logger.Debug().Err(err).Str("shift", shift.Key()).Msg("shift still pending")
			continue
		}
		shift.PendingSync = false
		if err := s.store.SaveShift(shift); err != nil {
			s.logger.Warn().Err(err).Str("shift", shift.Key()).Msg("pending flag not persisted")
		}
		metrics.IncReconciled("shift", "success")
		s.logger.Info().Str("shift", shift.Key()).Msg("pending shift pushed")
	}
}

// StartReconciler runs Reconcile on the given interval until ctx ends.
func (s *Service) StartReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Reconcile(ctx)
			}
		}
	}()
}
