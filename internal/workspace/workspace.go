// Package workspace holds the master-detail selection state for one signed-in
// user. It is pure UI state: selecting and clearing never touch the ledger,
// the catalog or the identity store.
package workspace

import (
	"sync"

	"github.com/garnizeh/placement/internal/preview"
)

// Snapshot is the current selection, safe to hand to encoders.
type Snapshot struct {
	SelectedJob         *int64 `json:"selected_job,omitempty"`
	SelectedApplication *int64 `json:"selected_application,omitempty"`
	SelectedStudent     *int64 `json:"selected_student,omitempty"`
	PreviewToken        string `json:"preview_token,omitempty"`
}

// Workspace is one user's selection state machine. The staff pair
// (application, student) is mutually exclusive: selecting one clears the
// other. Opening an application detail acquires a preview handle for its
// resume; every exit path (clear, reselect, replace, Reset) releases it.
type Workspace struct {
	mu       sync.Mutex
	previews *preview.Manager

	selectedJob         *int64
	selectedApplication *int64
	selectedStudent     *int64
	handle              *preview.Handle
}

func New(previews *preview.Manager) *Workspace {
	return &Workspace{previews: previews}
}

// SelectJob opens a job detail (student workspace).
func (w *Workspace) SelectJob(id int64) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selectedJob = &id
	return w.snapshot()
}

// SelectApplication opens an application detail (staff workspace) and
// acquires a display handle for its resume. Any previously selected item of
// the pair is cleared and its handle released.
func (w *Workspace) SelectApplication(id int64, resumeID string) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseLocked()
	w.selectedApplication = &id
	w.selectedStudent = nil
	if resumeID != "" {
		w.handle = w.previews.Acquire(resumeID)
	}
	return w.snapshot()
}

// SelectStudent opens a student detail (staff workspace), clearing any
// application selection.
func (w *Workspace) SelectStudent(id int64) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseLocked()
	w.selectedStudent = &id
	w.selectedApplication = nil
	return w.snapshot()
}

// Clear returns to the nothing-selected state.
func (w *Workspace) Clear() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseLocked()
	w.selectedJob = nil
	w.selectedApplication = nil
	w.selectedStudent = nil
	return w.snapshot()
}

// Reset tears the workspace down on signout or session replacement. It must
// release the preview handle no matter how the session ends.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseLocked()
	w.selectedJob = nil
	w.selectedApplication = nil
	w.selectedStudent = nil
}

// Current returns the selection without changing it.
func (w *Workspace) Current() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.snapshot()
}

func (w *Workspace) releaseLocked() {
	if w.handle != nil {
		w.previews.Release(w.handle)
		w.handle = nil
	}
}

func (w *Workspace) snapshot() Snapshot {
	s := Snapshot{
		SelectedJob:         w.selectedJob,
		SelectedApplication: w.selectedApplication,
		SelectedStudent:     w.selectedStudent,
	}
	if w.handle != nil {
		s.PreviewToken = w.handle.Token
	}
	return s
}
