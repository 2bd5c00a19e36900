package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"jiscare/internal/dates"
	"jiscare/internal/dayoff"
	"jiscare/internal/export"
	"jiscare/internal/metrics"
	"jiscare/internal/models"
	"jiscare/internal/roster"
	"jiscare/internal/schedule"
	"jiscare/internal/session"
	"jiscare/internal/store"
)

// Handlers serves the JSON boundary the view layer consumes.
type Handlers struct {
	store     *store.Store
	sessions  *session.Manager
	schedules *schedule.Service
	dayoffs   *dayoff.Service
	roster    *roster.Service
	logger    *zerolog.Logger
}

// NewHandlers wires the API over the portal services.
func NewHandlers(
	st *store.Store,
	sessions *session.Manager,
	schedules *schedule.Service,
	dayoffs *dayoff.Service,
	rosterSvc *roster.Service,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		store:     st,
		sessions:  sessions,
		schedules: schedules,
		dayoffs:   dayoffs,
		roster:    rosterSvc,
		logger:    logger,
	}
}

func message(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

// weekRef reads the optional ?week=YYYY-MM-DD reference date.
func weekRef(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("week")
	if raw == "" {
		return time.Now(), nil
	}
	return dates.ParseISO(raw)
}

// ---- auth ----

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

func (h *Handlers) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}

	sess, err := h.sessions.Login(req.ID, req.Password)
	if err != nil {
		metrics.IncLogin("failure")
		// One generic message for every cause, so login responses never
		// reveal which identifiers exist.
		return message(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	metrics.IncLogin("success")
	return c.JSON(sess)
}

func (h *Handlers) logout(c *fiber.Ctx) error {
	h.sessions.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) currentSession(c *fiber.Ctx) error {
	sess := h.sessions.Current()
	if sess == nil {
		sess = h.sessions.Restore()
	}
	if sess == nil {
		return message(c, fiber.StatusUnauthorized, "no active session")
	}
	return c.JSON(sess)
}

// ---- employees ----

func (h *Handlers) listEmployees(c *fiber.Ctx) error {
	return c.JSON(h.store.Employees())
}

type createEmployeeRequest struct {
	models.Employee
	Password string `json:"password"`
}

func (h *Handlers) createEmployee(c *fiber.Ctx) error {
	var req createEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}
	emp, err := h.roster.Create(c.Context(), req.Employee, req.Password)
	if err != nil {
		return message(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(emp)
}

func (h *Handlers) updateEmployee(c *fiber.Ctx) error {
	var emp models.Employee
	if err := c.BodyParser(&emp); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}
	emp.ID = c.Params("id")
	if err := h.roster.Update(c.Context(), emp); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			return message(c, fiber.StatusNotFound, err.Error())
		}
		return message(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(emp)
}

func (h *Handlers) deleteEmployee(c *fiber.Ctx) error {
	if err := h.roster.Delete(c.Context(), c.Params("id")); err != nil {
		return message(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) emailSchedule(c *fiber.Ctx) error {
	ref, err := weekRef(c)
	if err != nil {
		return message(c, fiber.StatusBadRequest, "week must be YYYY-MM-DD")
	}
	if err := h.roster.EmailWeeklySchedule(c.Context(), c.Params("id"), ref); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			return message(c, fiber.StatusNotFound, err.Error())
		}
		// The workflow service mails asynchronously; an unreachable
		// service is reported so the UI can show the queued state.
		return message(c, fiber.StatusBadGateway, "email service unavailable")
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *Handlers) listRooms(c *fiber.Ctx) error {
	return c.JSON(h.store.Rooms())
}

// ---- shifts ----

func (h *Handlers) listShifts(c *fiber.Ctx) error {
	if employeeID := c.Query("employee_id"); employeeID != "" {
		return c.JSON(h.store.ShiftsForEmployee(employeeID))
	}
	if c.Query("week") != "" {
		ref, err := weekRef(c)
		if err != nil {
			return message(c, fiber.StatusBadRequest, "week must be YYYY-MM-DD")
		}
		return c.JSON(h.store.ShiftsForDates(dates.WeekISO(ref)))
	}
	return c.JSON(h.store.Shifts())
}

func (h *Handlers) saveShift(c *fiber.Ctx) error {
	var shift models.Shift
	if err := c.BodyParser(&shift); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}
	if shift.EmployeeID == "" || shift.Date == "" {
		return message(c, fiber.StatusUnprocessableEntity, "employee_id and date are required")
	}
	pending, err := h.schedules.Save(c.Context(), shift)
	if err != nil {
		h.logger.Warn().Err(err).Str("shift", shift.Key()).Msg("shift cached in memory only")
	}
	return c.JSON(fiber.Map{"pending_sync": pending})
}

func (h *Handlers) deleteShift(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	date := c.Query("date")
	if employeeID == "" || date == "" {
		return message(c, fiber.StatusUnprocessableEntity, "employee_id and date are required")
	}
	if err := h.schedules.Delete(c.Context(), employeeID, date); err != nil {
		h.logger.Warn().Err(err).Msg("shift delete not persisted")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) checkSchedule(c *fiber.Ctx) error {
	var shift models.Shift
	if err := c.BodyParser(&shift); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}
	return c.JSON(h.schedules.Check(c.Context(), shift))
}

// ---- day-off requests ----

func (h *Handlers) listDayOffs(c *fiber.Ctx) error {
	if employeeID := c.Query("employee_id"); employeeID != "" {
		return c.JSON(h.store.DayOffsForEmployee(employeeID))
	}
	return c.JSON(h.store.DayOffRequests())
}

type dayOffSubmission struct {
	EmployeeID  string `json:"employee_id"`
	RequestDate string `json:"request_date"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
}

func (h *Handlers) submitDayOff(c *fiber.Ctx) error {
	var req dayOffSubmission
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}
	request, result, err := h.dayoffs.Submit(c.Context(), req.EmployeeID, req.RequestDate, req.Reason, req.Notes)
	if err != nil {
		if errors.Is(err, dayoff.ErrMissingFields) || errors.Is(err, dayoff.ErrUnknownReason) {
			return message(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		h.logger.Warn().Err(err).Msg("day-off request cached in memory only")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request, "result": result})
}

type dayOffDecision struct {
	Status      string `json:"status"`
	ManagerNote string `json:"manager_note"`
}

func (h *Handlers) updateDayOff(c *fiber.Ctx) error {
	var req dayOffDecision
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed request body")
	}
	if req.Status != models.StatusApproved && req.Status != models.StatusRejected && req.Status != models.StatusPending {
		return message(c, fiber.StatusUnprocessableEntity, "status must be Pending, Approved or Rejected")
	}
	if err := h.dayoffs.UpdateStatus(c.Context(), c.Params("id"), req.Status, req.ManagerNote); err != nil {
		h.logger.Warn().Err(err).Msg("day-off decision not persisted")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---- misc ----

// refresh re-reads every collection from the cache. This is the only
// supported way to observe writes made by another process sharing the
// database file.
func (h *Handlers) refresh(c *fiber.Ctx) error {
	if _, err := h.store.RefreshEmployees(); err != nil {
		h.logger.Warn().Err(err).Msg("employees refresh degraded")
	}
	if _, err := h.store.RefreshAuth(); err != nil {
		h.logger.Warn().Err(err).Msg("auth refresh degraded")
	}
	if _, err := h.store.RefreshShifts(); err != nil {
		h.logger.Warn().Err(err).Msg("shifts refresh degraded")
	}
	if _, err := h.store.RefreshDayOffs(); err != nil {
		h.logger.Warn().Err(err).Msg("day-offs refresh degraded")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) exportSchedule(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	emp, ok := h.store.EmployeeByID(employeeID)
	if !ok {
		return message(c, fiber.StatusNotFound, "employee not found")
	}
	ref, err := weekRef(c)
	if err != nil {
		return message(c, fiber.StatusBadRequest, "week must be YYYY-MM-DD")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(emp.ID, ref)+`"`)
	return export.WriteWeeklySchedule(c.Response().BodyWriter(), emp, ref, h.store.Shifts())
}
