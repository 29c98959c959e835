// Package preview manages temporary display handles for stored resumes. A
// handle is minted when a detail view opens an application and revoked when
// the view goes away; a revoked token never resolves again.
package preview

import (
	"sync"

	"github.com/google/uuid"
)

// Handle is a temporary, revocable reference to one resume.
type Handle struct {
	Token    string
	ResumeID string
}

type Manager struct {
	mu      sync.Mutex
	handles map[string]string // token -> resume id
}

func NewManager() *Manager {
	return &Manager{handles: make(map[string]string)}
}

// Acquire mints a fresh token for the resume. Each acquisition is its own
// handle; the caller owns the matching Release.
func (m *Manager) Acquire(resumeID string) *Handle {
	h := &Handle{Token: uuid.NewString(), ResumeID: resumeID}

	m.mu.Lock()
	m.handles[h.Token] = resumeID
	m.mu.Unlock()

	return h
}

// Release revokes the handle. It reports whether this call actually revoked
// it, so callers can assert the exactly-once discipline; releasing an already
// dead handle is a safe no-op.
func (m *Manager) Release(h *Handle) bool {
	if h == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.handles[h.Token]; !ok {
		return false
	}
	delete(m.handles, h.Token)
	return true
}

// Resolve maps a live token back to its resume id.
func (m *Manager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.handles[token]
	return id, ok
}

// Live returns the number of outstanding handles.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.handles)
}
