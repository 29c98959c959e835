package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/garnizeh/placement/api"
	"github.com/garnizeh/placement/internal/config"
	dbpkg "github.com/garnizeh/placement/internal/db"
	sqlite "github.com/garnizeh/placement/internal/repository/sqlite"
	"github.com/garnizeh/placement/internal/seed"
)

const testSecret = "testsecret"

// Seed with known plaintext passwords for end-to-end signin tests.
const testSeedJSON = `{
  "users": [
    {"id": 1, "role": "student", "email": "amy@x.edu", "name": "Amy", "department": "CS", "password": "pw-amy"},
    {"id": 2, "role": "student", "email": "ben@x.edu", "name": "Ben", "department": "EE", "password": "pw-ben"},
    {"id": 3, "role": "teacher", "email": "tess@x.edu", "name": "Tess", "password": "pw-tess"},
    {"id": 4, "role": "hod", "email": "hugo@x.edu", "name": "Hugo", "password": "pw-hugo"},
    {"id": 5, "role": "pto", "email": "pat@x.edu", "name": "Pat", "password": "pw-pat"}
  ],
  "jobs": [
    {"id": 100, "title": "Backend Engineer", "company": "Acme", "location": "Remote", "type": "Full-time",
     "responsibilities": ["Ship features"], "requirements": ["Go"]},
    {"id": 101, "title": "QA Intern", "company": "Beta", "location": "Onsite", "type": "Internship"}
  ]
}`

var dbSeq atomic.Int64

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	seedPath := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(seedPath, []byte(testSeedJSON), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	data, err := seed.Load(ctx, seedPath)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", dbSeq.Add(1))
	d, err := dbpkg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}

	repo := sqlite.New(d, nil)
	if err := repo.Bootstrap(ctx); err != nil {
		d.Close()
		t.Fatalf("bootstrap: %v", err)
	}
	if err := repo.Seed(ctx, data); err != nil {
		d.Close()
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     testSecret,
		APITimeout:    5 * time.Second,
		TokenDuration: time.Hour,
		DatabaseDSN:   dsn,
		MaxResumeSize: 1 << 20,
	}

	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "now", d))
	t.Cleanup(func() {
		srv.Close()
		d.Close()
	})
	return srv
}

// doJSON sends a JSON request, optionally with a bearer token, and returns
// the response with its body read.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, _ := io.ReadAll(res.Body)
	res.Body.Close()
	return res, data
}

// signin authenticates against the live server and returns the bearer token.
func signin(t *testing.T, srv *httptest.Server, role, email, password string) string {
	t.Helper()

	res, data := doJSON(t, srv, http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"role": role, "email": email, "password": password,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("signin %s/%s: status %d body=%s", role, email, res.StatusCode, data)
	}
	var ar struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &ar); err != nil || ar.Token == "" {
		t.Fatalf("signin response: %v body=%s", err, data)
	}
	return ar.Token
}

// submitApplication posts the multipart submission form. fileName empty means
// no resume part at all.
func submitApplication(t *testing.T, srv *httptest.Server, token string, jobID int64, fileName, fileContent, coverLetter string) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("job_id", fmt.Sprintf("%d", jobID)); err != nil {
		t.Fatalf("write job_id: %v", err)
	}
	if coverLetter != "" {
		if err := mw.WriteField("cover_letter", coverLetter); err != nil {
			t.Fatalf("write cover_letter: %v", err)
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := fw.Write([]byte(fileContent)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/applications", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	data, _ := io.ReadAll(res.Body)
	res.Body.Close()
	return res, data
}

// selectItem drives the workspace selection endpoint.
func selectItem(t *testing.T, srv *httptest.Server, token, kind string, id int64) (*http.Response, []byte) {
	t.Helper()
	return doJSON(t, srv, http.MethodPut, "/v1/workspace/selection", token, map[string]any{
		"kind": kind, "id": id,
	})
}
