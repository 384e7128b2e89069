package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDoGetSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("X-Test-Key"); got != "secret" {
			t.Errorf("X-Test-Key = %q", got)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), nil, srv.URL, map[string]string{"X-Test-Key": "secret"})
	if err != nil {
		t.Fatalf("DoGet: %v", err)
	}
	defer body.Close()
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	data, _ := io.ReadAll(body)
	if string(data) != `{"ok":true}` {
		t.Errorf("body = %q", data)
	}
}

func TestDoGetReturnsErrorStatuses(t *testing.T) {
	// 4xx/5xx responses are returned, not turned into errors; the payload may
	// carry an application error envelope the caller needs.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":{"error_code":1008}}`))
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), nil, srv.URL, nil)
	if err != nil {
		t.Fatalf("DoGet: %v", err)
	}
	defer body.Close()
	if status != http.StatusTooManyRequests {
		t.Errorf("status = %d", status)
	}
}

func TestReadBodyLimit(t *testing.T) {
	body := io.NopCloser(strings.NewReader(strings.Repeat("x", 100)))
	data, err := ReadBody(body, 10)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if len(data) != 10 {
		t.Errorf("read %d bytes, want 10", len(data))
	}
}
