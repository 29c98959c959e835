package api_test

import (
	"bytes"
	"net/http"
	"testing"
)

func TestHealthAndVersion(t *testing.T) {
	srv := setupServer(t)

	res, data := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health: status %d", res.StatusCode)
	}
	if !bytes.Contains(data, []byte(`"service":"placement"`)) {
		t.Fatalf("unexpected health body: %s", data)
	}

	res, data = doJSON(t, srv, http.MethodGet, "/version", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("version: status %d", res.StatusCode)
	}
	if !bytes.Contains(data, []byte(`"version":"test"`)) {
		t.Fatalf("unexpected version body: %s", data)
	}
}
