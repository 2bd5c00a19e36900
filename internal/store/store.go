// Package store owns the portal's persisted collections: employees,
// auth credentials, shifts and day-off requests, plus the static room
// list. It layers an in-memory mirror over the SQLite key/value cache:
// reads are synchronous against the mirror, every mutation rewrites the
// full collection in the cache. Persistence faults degrade the store to
// ephemeral mode instead of failing the operation; the returned
// StorageError tells the caller that durability was lost.
//
// The workflow service remains the source of truth; this cache only has
// to survive the service being offline. Two processes sharing one cache
// race last-write-wins, with Refresh* as the only way to observe the
// other writer.
package store

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"jiscare/internal/events"
	"jiscare/internal/kv"
	"jiscare/internal/models"
)

var empIDPattern = regexp.MustCompile(`^EMP-(\d+)$`)

// Store is the local cache instance. Pass it explicitly to collaborators;
// there are no package-level mirrors.
type Store struct {
	db     *kv.DB
	bus    *events.EventBus
	logger *zerolog.Logger

	mu        sync.RWMutex
	employees []models.Employee
	auth      []models.AuthCredential
	shifts    []models.Shift
	dayoffs   []models.DayOffRequest
}

// New builds a store over db and loads every collection, seeding any
// that has never been persisted. A nil bus disables change events.
func New(db *kv.DB, bus *events.EventBus, logger *zerolog.Logger) *Store {
	s := &Store{db: db, bus: bus, logger: logger}
	if _, err := s.RefreshEmployees(); err != nil {
		logger.Warn().Err(err).Msg("employees cache unreadable, serving seed data")
	}
	if _, err := s.RefreshAuth(); err != nil {
		logger.Warn().Err(err).Msg("auth cache unreadable, serving seed data")
	}
	if _, err := s.RefreshShifts(); err != nil {
		logger.Warn().Err(err).Msg("shifts cache unreadable, serving seed data")
	}
	if _, err := s.RefreshDayOffs(); err != nil {
		logger.Warn().Err(err).Msg("day-off cache unreadable, serving empty list")
	}
	return s
}

// load reads key into out; when the key is absent it persists seed and
// reports absent=true. A storage fault leaves out untouched.
func (s *Store) load(key string, out any, persistSeed func() error) (bool, error) {
	found, err := s.db.Get(key, out)
	if err != nil {
		return false, err
	}
	if found {
		return true, nil
	}
	if err := persistSeed(); err != nil {
		// Seed still serves from memory; only durability failed.
		return false, err
	}
	return false, nil
}

func (s *Store) publish(eventType, key string) {
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: eventType, Key: key})
	}
}

// Rooms returns the static room reference list.
func (s *Store) Rooms() []models.Room {
	return append([]models.Room(nil), Rooms...)
}

// RoomByID looks up a room in the static list.
func (s *Store) RoomByID(id string) (models.Room, bool) {
	for _, r := range Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}

// ---- Employees ----

// Employees returns a copy of the employee mirror.
func (s *Store) Employees() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Employee(nil), s.employees...)
}

// EmployeeByID returns the employee with the given identifier.
func (s *Store) EmployeeByID(id string) (models.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return models.Employee{}, false
}

// RefreshEmployees re-reads the persisted employee collection into the
// mirror, seeding it on first use.
func (s *Store) RefreshEmployees() ([]models.Employee, error) {
	list := append([]models.Employee(nil), seedEmployees...)
	_, err := s.load(keyEmployees, &list, func() error {
		return s.db.Put(keyEmployees, seedEmployees)
	})
	s.mu.Lock()
	s.employees = list
	s.mu.Unlock()
	return append([]models.Employee(nil), list...), err
}

// SaveEmployee upserts by identifier and rewrites the collection.
func (s *Store) SaveEmployee(emp models.Employee) error {
	s.mu.Lock()
	replaced := false
	for i := range s.employees {
		if s.employees[i].ID == emp.ID {
			s.employees[i] = emp
			replaced = true
			break
		}
	}
	if !replaced {
		s.employees = append(s.employees, emp)
	}
	snapshot := append([]models.Employee(nil), s.employees...)
	s.mu.Unlock()

	s.publish(events.EmployeesChanged, emp.ID)
	return s.db.Put(keyEmployees, snapshot)
}

// DeleteEmployee removes the employee; absent id is a no-op.
func (s *Store) DeleteEmployee(id string) error {
	s.mu.Lock()
	kept := s.employees[:0]
	for _, e := range s.employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.employees = kept
	snapshot := append([]models.Employee(nil), s.employees...)
	s.mu.Unlock()

	s.publish(events.EmployeesChanged, id)
	return s.db.Put(keyEmployees, snapshot)
}

// ReplaceEmployees overwrites mirror and cache with an authoritative copy.
func (s *Store) ReplaceEmployees(list []models.Employee) error {
	s.mu.Lock()
	s.employees = append([]models.Employee(nil), list...)
	s.mu.Unlock()
	s.publish(events.EmployeesChanged, "")
	return s.db.Put(keyEmployees, list)
}

// NextEmployeeID returns the next free EMP-NNN identifier: max numeric
// suffix among existing EMP-* ids plus one, zero-padded to three digits.
func (s *Store) NextEmployeeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, e := range s.employees {
		m := empIDPattern.FindStringSubmatch(e.ID)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("EMP-%03d", max+1)
}

// ---- Auth credentials ----

// AuthCredentials returns a copy of the credential mirror.
func (s *Store) AuthCredentials() []models.AuthCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuthCredential(nil), s.auth...)
}

// AuthByID returns the credential entry for id.
func (s *Store) AuthByID(id string) (models.AuthCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.auth {
		if a.ID == id {
			return a, true
		}
	}
	return models.AuthCredential{}, false
}

// RefreshAuth re-reads the persisted credential collection.
func (s *Store) RefreshAuth() ([]models.AuthCredential, error) {
	list := append([]models.AuthCredential(nil), seedAuth...)
	_, err := s.load(keyAuth, &list, func() error {
		return s.db.Put(keyAuth, seedAuth)
	})
	s.mu.Lock()
	s.auth = list
	s.mu.Unlock()
	return append([]models.AuthCredential(nil), list...), err
}

// SaveAuthEntry upserts a credential by identifier.
func (s *Store) SaveAuthEntry(entry models.AuthCredential) error {
	s.mu.Lock()
	replaced := false
	for i := range s.auth {
		if s.auth[i].ID == entry.ID {
			s.auth[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.auth = append(s.auth, entry)
	}
	snapshot := append([]models.AuthCredential(nil), s.auth...)
	s.mu.Unlock()

	s.publish(events.AuthChanged, entry.ID)
	return s.db.Put(keyAuth, snapshot)
}

// DeleteAuthEntry removes the credential; absent id is a no-op.
func (s *Store) DeleteAuthEntry(id string) error {
	s.mu.Lock()
	kept := s.auth[:0]
	for _, a := range s.auth {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.auth = kept
	snapshot := append([]models.AuthCredential(nil), s.auth...)
	s.mu.Unlock()

	s.publish(events.AuthChanged, id)
	return s.db.Put(keyAuth, snapshot)
}

// ---- Shifts ----

// Shifts returns a copy of the shift mirror.
func (s *Store) Shifts() []models.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Shift(nil), s.shifts...)
}

// RefreshShifts re-reads the persisted shift collection.
func (s *Store) RefreshShifts() ([]models.Shift, error) {
	list := append([]models.Shift(nil), seedShifts...)
	_, err := s.load(keyShifts, &list, func() error {
		return s.db.Put(keyShifts, seedShifts)
	})
	s.mu.Lock()
	s.shifts = list
	s.mu.Unlock()
	return append([]models.Shift(nil), list...), err
}

// SaveShift upserts by the compound (employee, date) key. Replacement
// keeps only the new field values, which guarantees the one shift per
// employee per day invariant at the write boundary.
func (s *Store) SaveShift(shift models.Shift) error {
	s.mu.Lock()
	replaced := false
	for i := range s.shifts {
		if s.shifts[i].EmployeeID == shift.EmployeeID && s.shifts[i].Date == shift.Date {
			s.shifts[i] = shift
			replaced = true
			break
		}
	}
	if !replaced {
		s.shifts = append(s.shifts, shift)
	}
	snapshot := append([]models.Shift(nil), s.shifts...)
	s.mu.Unlock()

	s.publish(events.ShiftsChanged, shift.Key())
	return s.db.Put(keyShifts, snapshot)
}

// DeleteShift removes the shift for (employeeID, date); no-op if absent.
func (s *Store) DeleteShift(employeeID, date string) error {
	s.mu.Lock()
	kept := s.shifts[:0]
	for _, sh := range s.shifts {
		if !(sh.EmployeeID == employeeID && sh.Date == date) {
			kept = append(kept, sh)
		}
	}
	s.shifts = kept
	snapshot := append([]models.Shift(nil), s.shifts...)
	s.mu.Unlock()

	s.publish(events.ShiftsChanged, employeeID+"|"+date)
	return s.db.Put(keyShifts, snapshot)
}

// ReplaceShifts overwrites mirror and cache with an authoritative copy.
func (s *Store) ReplaceShifts(list []models.Shift) error {
	s.mu.Lock()
	s.shifts = append([]models.Shift(nil), list...)
	s.mu.Unlock()
	s.publish(events.ShiftsChanged, "")
	return s.db.Put(keyShifts, list)
}

// ShiftFor returns the shift of an employee on an ISO date.
func (s *Store) ShiftFor(employeeID, date string) (models.Shift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sh := range s.shifts {
		if sh.EmployeeID == employeeID && sh.Date == date {
			return sh, true
		}
	}
	return models.Shift{}, false
}

// ShiftsForEmployee returns every shift assigned to the employee.
func (s *Store) ShiftsForEmployee(employeeID string) []models.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Shift
	for _, sh := range s.shifts {
		if sh.EmployeeID == employeeID {
			out = append(out, sh)
		}
	}
	return out
}

// ShiftsForDates returns shifts falling on any of the ISO dates.
func (s *Store) ShiftsForDates(dates []string) []models.Shift {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Shift
	for _, sh := range s.shifts {
		if _, ok := set[sh.Date]; ok {
			out = append(out, sh)
		}
	}
	return out
}

// PendingShifts returns shifts still waiting for a remote push.
func (s *Store) PendingShifts() []models.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Shift
	for _, sh := range s.shifts {
		if sh.PendingSync {
			out = append(out, sh)
		}
	}
	return out
}

// ---- Day-off requests ----

// DayOffRequests returns a copy of the request mirror.
func (s *Store) DayOffRequests() []models.DayOffRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DayOffRequest(nil), s.dayoffs...)
}

// RefreshDayOffs re-reads the persisted request collection.
func (s *Store) RefreshDayOffs() ([]models.DayOffRequest, error) {
	list := append([]models.DayOffRequest(nil), seedDayOffs...)
	_, err := s.load(keyDayOffs, &list, func() error {
		return s.db.Put(keyDayOffs, seedDayOffs)
	})
	s.mu.Lock()
	s.dayoffs = list
	s.mu.Unlock()
	return append([]models.DayOffRequest(nil), list...), err
}

// SaveDayOffRequest upserts a request by identifier.
func (s *Store) SaveDayOffRequest(req models.DayOffRequest) error {
	s.mu.Lock()
	replaced := false
	for i := range s.dayoffs {
		if s.dayoffs[i].ID == req.ID {
			s.dayoffs[i] = req
			replaced = true
			break
		}
	}
	if !replaced {
		s.dayoffs = append(s.dayoffs, req)
	}
	snapshot := append([]models.DayOffRequest(nil), s.dayoffs...)
	s.mu.Unlock()

	s.publish(events.DayOffsChanged, req.ID)
	return s.db.Put(keyDayOffs, snapshot)
}

// UpdateDayOffStatus partially updates status and manager note; an
// unknown id is a no-op.
func (s *Store) UpdateDayOffStatus(id, status, managerNote string) error {
	s.mu.Lock()
	found := false
	for i := range s.dayoffs {
		if s.dayoffs[i].ID == id {
			s.dayoffs[i].Status = status
			s.dayoffs[i].ManagerNote = managerNote
			found = true
			break
		}
	}
	snapshot := append([]models.DayOffRequest(nil), s.dayoffs...)
	s.mu.Unlock()

	if !found {
		return nil
	}
	s.publish(events.DayOffsChanged, id)
	return s.db.Put(keyDayOffs, snapshot)
}

// ReplaceDayOffs overwrites mirror and cache with an authoritative copy.
func (s *Store) ReplaceDayOffs(list []models.DayOffRequest) error {
	s.mu.Lock()
	s.dayoffs = append([]models.DayOffRequest(nil), list...)
	s.mu.Unlock()
	s.publish(events.DayOffsChanged, "")
	return s.db.Put(keyDayOffs, list)
}

// DayOffsForEmployee returns every request submitted by the employee.
func (s *Store) DayOffsForEmployee(employeeID string) []models.DayOffRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DayOffRequest
	for _, r := range s.dayoffs {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}

// PendingDayOffs returns requests still waiting for remote validation.
func (s *Store) PendingDayOffs() []models.DayOffRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DayOffRequest
	for _, r := range s.dayoffs {
		if r.PendingSync {
			out = append(out, r)
		}
	}
	return out
}

// ---- Session ----

// SaveSession persists the active session.
func (s *Store) SaveSession(session *models.Session) error {
	err := s.db.Put(keySession, session)
	s.publish(events.SessionChanged, session.ID)
	return err
}

// LoadSession reads the persisted session, nil when none is stored.
func (s *Store) LoadSession() (*models.Session, error) {
	var session models.Session
	found, err := s.db.Get(keySession, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// ClearSession drops the persisted session.
func (s *Store) ClearSession() error {
	err := s.db.Delete(keySession)
	s.publish(events.SessionChanged, "")
	return err
}
