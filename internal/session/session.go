// Package session tracks the one authenticated identity the portal allows at
// a time. A signin replaces the current session; signout destroys it; nothing
// survives a restart.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/garnizeh/placement/internal/preview"
	"github.com/garnizeh/placement/internal/workspace"
	"github.com/garnizeh/placement/pkg/models"
)

type Session struct {
	ID        string
	User      models.User
	Workspace *workspace.Workspace
}

type Manager struct {
	mu       sync.Mutex
	previews *preview.Manager
	current  *Session
}

func NewManager(previews *preview.Manager) *Manager {
	return &Manager{previews: previews}
}

// Start authenticates nothing itself; it installs the already verified user
// as the current session, tearing down whatever session was active before.
func (m *Manager) Start(user models.User) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Workspace.Reset()
	}
	m.current = &Session{
		ID:        uuid.NewString(),
		User:      user,
		Workspace: workspace.New(m.previews),
	}
	return m.current
}

// Get returns the session for the given id, or nil when it is not the live
// one; stale tokens from replaced or ended sessions never resolve.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.ID != id {
		return nil
	}
	return m.current
}

// Current returns the live session, or nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// End destroys the session with the given id. The workspace is reset so any
// preview handle is released regardless of what the user had open. It reports
// whether a session was actually ended.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.ID != id {
		return false
	}
	m.current.Workspace.Reset()
	m.current = nil
	return true
}
