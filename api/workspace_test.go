package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type wsState struct {
	SelectedJob         *int64 `json:"selected_job"`
	SelectedApplication *int64 `json:"selected_application"`
	SelectedStudent     *int64 `json:"selected_student"`
	PreviewToken        string `json:"preview_token"`
	PreviewURL          string `json:"preview_url"`
}

func getWorkspace(t *testing.T, srv *httptest.Server, token string) wsState {
	t.Helper()
	res, data := doJSON(t, srv, http.MethodGet, "/v1/workspace", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get workspace: %d %s", res.StatusCode, data)
	}
	var s wsState
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal workspace: %v", err)
	}
	return s
}

func fetchPreview(t *testing.T, srv *httptest.Server, url string) (*http.Response, []byte) {
	t.Helper()
	res, err := srv.Client().Get(srv.URL + url)
	if err != nil {
		t.Fatalf("fetch preview: %v", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read preview body: %v", err)
	}
	return res, data
}

// submitAsStudent signs in a student, opens the posting, and submits a resume
// so staff tests have an application to select.
func submitAsStudent(t *testing.T, srv *httptest.Server) int64 {
	t.Helper()
	token := signin(t, srv, "student", "amy@x.edu", "pw-amy")
	if res, data := selectItem(t, srv, token, "job", 100); res.StatusCode != http.StatusOK {
		t.Fatalf("select job: %d %s", res.StatusCode, data)
	}
	res, data := submitApplication(t, srv, token, 100, "amy-cv.pdf", "amy resume bytes", "")
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("submit: %d %s", res.StatusCode, data)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	return created.ID
}

func TestWorkspace_StudentJobSelection(t *testing.T) {
	srv := setupServer(t)
	token := signin(t, srv, "student", "amy@x.edu", "pw-amy")

	s := getWorkspace(t, srv, token)
	if s.SelectedJob != nil || s.SelectedApplication != nil || s.SelectedStudent != nil {
		t.Fatalf("fresh workspace should be empty: %+v", s)
	}

	res, data := selectItem(t, srv, token, "job", 101)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("select job: %d %s", res.StatusCode, data)
	}
	s = getWorkspace(t, srv, token)
	if s.SelectedJob == nil || *s.SelectedJob != 101 {
		t.Fatalf("expected job 101 selected: %+v", s)
	}

	res, _ = selectItem(t, srv, token, "job", 9999)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing job: %d", res.StatusCode)
	}

	res, _ = selectItem(t, srv, token, "application", 1)
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("student selecting an application: %d", res.StatusCode)
	}

	res, _ = doJSON(t, srv, http.MethodDelete, "/v1/workspace/selection", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("clear: %d", res.StatusCode)
	}
	s = getWorkspace(t, srv, token)
	if s.SelectedJob != nil {
		t.Fatalf("clear should empty the workspace: %+v", s)
	}
}

func TestWorkspace_PreviewLifecycle(t *testing.T) {
	srv := setupServer(t)
	appID := submitAsStudent(t, srv)

	staff := signin(t, srv, "teacher", "tess@x.edu", "pw-tess")

	res, data := selectItem(t, srv, staff, "application", appID)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("select application: %d %s", res.StatusCode, data)
	}
	s := getWorkspace(t, srv, staff)
	if s.SelectedApplication == nil || *s.SelectedApplication != appID || s.PreviewURL == "" {
		t.Fatalf("expected selected application with preview: %+v", s)
	}

	// The preview URL serves the resume without any auth header.
	pres, body := fetchPreview(t, srv, s.PreviewURL)
	if pres.StatusCode != http.StatusOK {
		t.Fatalf("preview: %d %s", pres.StatusCode, body)
	}
	if string(body) != "amy resume bytes" {
		t.Fatalf("unexpected preview content: %q", body)
	}
	if cd := pres.Header.Get("Content-Disposition"); cd == "" {
		t.Fatalf("missing Content-Disposition header")
	}

	// Clearing the selection revokes the preview URL.
	if res, _ := doJSON(t, srv, http.MethodDelete, "/v1/workspace/selection", staff, nil); res.StatusCode != http.StatusOK {
		t.Fatalf("clear: %d", res.StatusCode)
	}
	pres, _ = fetchPreview(t, srv, s.PreviewURL)
	if pres.StatusCode != http.StatusNotFound {
		t.Fatalf("revoked preview should 404, got %d", pres.StatusCode)
	}
}

func TestWorkspace_ReselectRevokesOldPreview(t *testing.T) {
	srv := setupServer(t)
	appID := submitAsStudent(t, srv)

	staff := signin(t, srv, "hod", "hugo@x.edu", "pw-hugo")

	selectItem(t, srv, staff, "application", appID)
	first := getWorkspace(t, srv, staff)

	// Reselecting the same application issues a fresh token.
	selectItem(t, srv, staff, "application", appID)
	second := getWorkspace(t, srv, staff)
	if first.PreviewURL == "" || second.PreviewURL == "" || first.PreviewURL == second.PreviewURL {
		t.Fatalf("reselect should rotate the token: %q vs %q", first.PreviewURL, second.PreviewURL)
	}
	if pres, _ := fetchPreview(t, srv, first.PreviewURL); pres.StatusCode != http.StatusNotFound {
		t.Fatalf("old preview should 404, got %d", pres.StatusCode)
	}
	if pres, _ := fetchPreview(t, srv, second.PreviewURL); pres.StatusCode != http.StatusOK {
		t.Fatalf("new preview should serve, got %d", pres.StatusCode)
	}
}

func TestWorkspace_StudentSelectionClearsApplication(t *testing.T) {
	srv := setupServer(t)
	appID := submitAsStudent(t, srv)

	staff := signin(t, srv, "pto", "pat@x.edu", "pw-pat")

	selectItem(t, srv, staff, "application", appID)
	withPreview := getWorkspace(t, srv, staff)

	res, data := selectItem(t, srv, staff, "student", 1)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("select student: %d %s", res.StatusCode, data)
	}
	s := getWorkspace(t, srv, staff)
	if s.SelectedApplication != nil || s.SelectedStudent == nil || *s.SelectedStudent != 1 {
		t.Fatalf("student selection should replace the application: %+v", s)
	}
	if s.PreviewURL != "" {
		t.Fatalf("preview should be gone after switching to a student: %+v", s)
	}
	if pres, _ := fetchPreview(t, srv, withPreview.PreviewURL); pres.StatusCode != http.StatusNotFound {
		t.Fatalf("old preview should be revoked, got %d", pres.StatusCode)
	}

	// Selecting a staff id as a student is not found.
	res, _ = selectItem(t, srv, staff, "student", 3)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("staff id should not resolve as student: %d", res.StatusCode)
	}
}

func TestWorkspace_SignoutRevokesPreview(t *testing.T) {
	srv := setupServer(t)
	appID := submitAsStudent(t, srv)

	staff := signin(t, srv, "teacher", "tess@x.edu", "pw-tess")
	selectItem(t, srv, staff, "application", appID)
	s := getWorkspace(t, srv, staff)
	if s.PreviewURL == "" {
		t.Fatalf("expected a preview url")
	}

	if res, _ := doJSON(t, srv, http.MethodPost, "/v1/auth/signout", staff, nil); res.StatusCode != http.StatusOK {
		t.Fatalf("signout failed")
	}
	if pres, _ := fetchPreview(t, srv, s.PreviewURL); pres.StatusCode != http.StatusNotFound {
		t.Fatalf("signout should revoke the preview, got %d", pres.StatusCode)
	}
}
