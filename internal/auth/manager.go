// Package auth owns the "current user" notion: login, registration,
// logout, profile updates and the startup session restore. It is the only
// layer the UI talks to; storage details stay behind the store contract.
package auth

import (
	"context"
	"log"
	"strings"
	"sync"

	"healthbuddy/internal/models"
	"healthbuddy/internal/store"
)

type Manager struct {
	store store.Store

	mu      sync.RWMutex
	current *models.User
	ready   bool
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Init connects the backend and restores a previously active session, so
// the current user is populated before any screen renders. A missing
// session is not an error; a failed restore is logged and ignored.
func (m *Manager) Init(ctx context.Context) error {
	if err := m.store.Init(ctx); err != nil {
		return err
	}

	user, err := m.store.GetActiveSession(ctx)
	if err != nil {
		log.Printf("session restore failed: %v", err)
	}

	m.mu.Lock()
	m.current = user
	m.ready = true
	m.mu.Unlock()
	return nil
}

// Ready reports whether Init has completed.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Register creates an account. It does not log the new user in.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	if err := requireFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}
	_, err := m.store.CreateUser(ctx, name, email, password)
	return err
}

// Login verifies credentials, establishes the session (displacing any
// previous one) and sets the current user.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := requireFields(map[string]string{
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	user, err := m.store.FindUserByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Wrong email and wrong password are indistinguishable on purpose.
		return nil, store.ErrInvalidCredentials
	}

	if err := m.store.CreateSession(ctx, user.ID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	return user, nil
}

// Logout clears the session and the current user. It never surfaces an
// error; a failed clear is logged and the local state drops regardless.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.ClearSession(ctx); err != nil {
		log.Printf("logout: clear session failed: %v", err)
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// UpdateProfile writes the profile fields for the current user and keeps
// the in-memory copy in sync so the UI reflects the change immediately.
func (m *Manager) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	current := m.CurrentUser()
	if current == nil {
		return nil, store.ErrInvalidCredentials
	}

	user, err := m.store.UpdateUserProfile(ctx, current.ID, update)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	return user, nil
}

// AddReading records a measurement for the current user.
func (m *Manager) AddReading(ctx context.Context, systolic, diastolic, heartRate int) (*models.BloodPressureReading, error) {
	current := m.CurrentUser()
	if current == nil {
		return nil, store.ErrInvalidCredentials
	}
	return m.store.AddReading(ctx, current.ID, systolic, diastolic, heartRate)
}

// Readings returns the current user's readings, newest first. With no user
// or a failing backend it returns an empty slice; this call must never
// break the UI.
func (m *Manager) Readings(ctx context.Context) []models.BloodPressureReading {
	current := m.CurrentUser()
	if current == nil {
		return []models.BloodPressureReading{}
	}

	readings, err := m.store.GetReadings(ctx, current.ID)
	if err != nil {
		log.Printf("loading readings failed: %v", err)
		return []models.BloodPressureReading{}
	}
	if readings == nil {
		readings = []models.BloodPressureReading{}
	}
	return readings
}

// DeleteReading removes one reading by id.
func (m *Manager) DeleteReading(ctx context.Context, id string) error {
	return m.store.DeleteReading(ctx, id)
}

func requireFields(fields map[string]string) error {
	for _, name := range []string{"name", "email", "password"} {
		value, present := fields[name]
		if present && strings.TrimSpace(value) == "" {
			return &store.ValidationError{Field: name}
		}
	}
	return nil
}
