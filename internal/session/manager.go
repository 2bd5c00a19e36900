// Package session turns credentials into typed sessions and keeps a
// persisted session fresh against the latest employee data.
package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"jiscare/internal/models"
	"jiscare/internal/store"
)

// Internal auth failure causes. Externally both collapse into
// ErrInvalidCredentials so login responses never reveal which
// identifiers exist.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
)

// Manager builds and maintains the active session.
type Manager struct {
	store  *store.Store
	logger *zerolog.Logger

	mu      sync.RWMutex
	current *models.Session
}

// NewManager constructs a session manager over the local store.
func NewManager(st *store.Store, logger *zerolog.Logger) *Manager {
	return &Manager{store: st, logger: logger}
}

// Current returns the active session, nil when nobody is logged in.
func (m *Manager) Current() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Login validates the (id, password) pair against the credential
// collection. Passwords are compared in plaintext, preserving the
// behavior of the system this portal replaces; see the test suite for
// the explicit flag on that weakness.
func (m *Manager) Login(id, password string) (*models.Session, error) {
	cred, ok := m.store.AuthByID(id)
	if !ok || cred.Password != password {
		return nil, ErrInvalidCredentials
	}

	session, err := m.build(cred)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	if err := m.store.SaveSession(session); err != nil {
		m.logger.Warn().Err(err).Str("user", session.ID).Msg("session not persisted")
	}
	return m.Current(), nil
}

// Logout drops the active session and the persisted copy.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if err := m.store.ClearSession(); err != nil {
		m.logger.Warn().Err(err).Msg("persisted session not cleared")
	}
}

// Restore rebuilds a previously persisted session from current data, so
// profile edits made while logged out are reflected. Any failed check
// clears the persisted state and returns nil.
func (m *Manager) Restore() *models.Session {
	saved, err := m.store.LoadSession()
	if err != nil {
		m.logger.Warn().Err(err).Msg("persisted session unreadable")
		return nil
	}
	if saved == nil {
		return nil
	}

	cred, ok := m.store.AuthByID(saved.ID)
	if !ok {
		m.discard("auth entry gone", saved.ID)
		return nil
	}
	session, err := m.build(cred)
	if err != nil {
		m.discard("employee record gone", saved.ID)
		return nil
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	if err := m.store.SaveSession(session); err != nil {
		m.logger.Warn().Err(err).Str("user", session.ID).Msg("session not re-persisted")
	}
	return m.Current()
}

// Refresh re-runs the rebuild for the active session, used after an
// admin edits their own record. A session that no longer validates is
// logged out.
func (m *Manager) Refresh() *models.Session {
	current := m.Current()
	if current == nil {
		return nil
	}

	cred, ok := m.store.AuthByID(current.ID)
	if !ok {
		m.Logout()
		return nil
	}
	session, err := m.build(cred)
	if err != nil {
		m.Logout()
		return nil
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	if err := m.store.SaveSession(session); err != nil {
		m.logger.Warn().Err(err).Str("user", session.ID).Msg("session not re-persisted")
	}
	return m.Current()
}

// build joins a credential against the employee collection. Admin
// credentials resolve to the fixed admin profile.
func (m *Manager) build(cred models.AuthCredential) (*models.Session, error) {
	if cred.Role == models.RoleAdmin {
		profile := store.AdminProfile
		return &profile, nil
	}

	emp, ok := m.store.EmployeeByID(cred.ID)
	if !ok {
		// Credential orphaned after an employee deletion.
		return nil, ErrProfileNotFound
	}
	return &models.Session{
		ID:         emp.ID,
		Name:       emp.Name,
		Role:       models.RoleEmployee,
		Department: emp.Department,
		Position:   emp.Position,
		Email:      emp.Email,
	}, nil
}

func (m *Manager) discard(reason, id string) {
	m.logger.Info().Str("user", id).Str("reason", reason).Msg("persisted session discarded")
	if err := m.store.ClearSession(); err != nil {
		m.logger.Warn().Err(err).Msg("persisted session not cleared")
	}
}
