// Package dayoff owns the day-off request lifecycle: submission with
// remote validation, offline pending semantics, and status decisions.
// Requests are never deleted.
package dayoff

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"jiscare/internal/metrics"
	"jiscare/internal/models"
	"jiscare/internal/store"
	"jiscare/internal/workflow"
)

// Validation errors, surfaced as inline form errors and never sent to
// the workflow service.
var (
	ErrMissingFields = errors.New("request date and reason are required")
	ErrUnknownReason = errors.New("reason is not in the accepted list")
)

// offlineMessage mirrors the wording shown when the validator cannot be
// reached and the request degrades to pending review.
const offlineMessage = "Could not connect to the validation server. Your request has been saved for review by the admin."

// Validator is the slice of the workflow client this service needs.
type Validator interface {
	SubmitDayOff(ctx context.Context, req workflow.DayOffSubmitRequest) (*models.CheckResult, error)
	UpdateDayOff(ctx context.Context, id, status, managerNote string) error
}

// Service coordinates day-off requests between the remote validator and
// the local store.
type Service struct {
	store  *store.Store
	remote Validator
	logger *zerolog.Logger
	now    func() time.Time
}

// NewService constructs the day-off service.
func NewService(st *store.Store, remote Validator, logger *zerolog.Logger) *Service {
	return &Service{store: st, remote: remote, logger: logger, now: time.Now}
}

// Submit files a request for the employee. The remote verdict resolves
// the status immediately; when the remote is unreachable the request is
// stored as Pending with the pending-sync flag set, and the returned
// result carries the offline message.
func (s *Service) Submit(ctx context.Context, employeeID, date, reason, notes string) (*models.DayOffRequest, *models.CheckResult, error) {
	if employeeID == "" || date == "" || reason == "" {
		return nil, nil, ErrMissingFields
	}
	if !models.ValidDayOffReason(reason) {
		return nil, nil, ErrUnknownReason
	}

	name := ""
	if emp, ok := s.store.EmployeeByID(employeeID); ok {
		name = emp.Name
	}

	req := models.DayOffRequest{
		ID:           models.NewDayOffID(s.now()),
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Status:       models.StatusPending,
		Reason:       reason,
		Notes:        notes,
		RequestedOn:  s.now().Format("2006-01-02"),
	}

	res, err := s.remote.SubmitDayOff(ctx, workflow.DayOffSubmitRequest{
		EmployeeID:   employeeID,
		EmployeeName: name,
		RequestDate:  date,
		Reason:       reason,
		Notes:        notes,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("request", req.ID).Msg("validator unreachable, request saved as pending")
		req.PendingSync = true
		res = &models.CheckResult{Success: false, Status: "error", Message: offlineMessage}
	} else {
		applyVerdict(&req, res)
	}

	metrics.IncDayOffSubmitted(req.Status)
	if err := s.store.SaveDayOffRequest(req); err != nil {
		return &req, res, err
	}
	return &req, res, nil
}

// UpdateStatus records an admin decision: remote best-effort, local
// always. An unknown id is a no-op in the store.
func (s *Service) UpdateStatus(ctx context.Context, id, status, managerNote string) error {
	if err := s.remote.UpdateDayOff(ctx, id, status, managerNote); err != nil {
		s.logger.Warn().Err(err).Str("request", id).Msg("remote day-off update failed")
	}
	return s.store.UpdateDayOffStatus(id, status, managerNote)
}

// Reconcile re-submits every pending-sync request and applies the
// verdict that comes back. Failures stay pending for the next pass.
func (s *Service) Reconcile(ctx context.Context) {
	for _, req := range s.store.PendingDayOffs() {
		res, err := s.remote.SubmitDayOff(ctx, workflow.DayOffSubmitRequest{
			EmployeeID:   req.EmployeeID,
			EmployeeName: req.EmployeeName,
			RequestDate:  req.Date,
			Reason:       req.Reason,
			Notes:        req.Notes,
		})
		if err != nil {
			metrics.IncReconciled("dayoff", "failure")
			s.logger.Debug().Err(err).Str("request", req.ID).Msg("day-off request still pending")
			continue
		}
		applyVerdict(&req, res)
		if err := s.store.SaveDayOffRequest(req); err != nil {
			s.logger.Warn().Err(err).Str("request", req.ID).Msg("reconciled request not persisted")
		}
		metrics.IncReconciled("dayoff", "success")
		s.logger.Info().Str("request", req.ID).Str("status", req.Status).Msg("pending day-off resolved")
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

func applyVerdict(req *models.DayOffRequest, res *models.CheckResult) {
	req.PendingSync = false
	if res.Success {
		req.Status = models.StatusApproved
	} else {
		req.Status = models.StatusRejected
	}
	req.ManagerNote = res.Data.AIReasoning
}
