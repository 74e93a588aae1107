package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeStore satisfies database.Store with a fixed distinct-user count.
type fakeStore struct {
	users int64
	err   error
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) RecordMessage(context.Context, int64, string) error { return nil }

func (f *fakeStore) RunMaintenance(context.Context) error { return nil }

func (f *fakeStore) CountDistinctUsers(context.Context) (int64, error) {
	return f.users, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doRequest(t *testing.T, store *fakeStore, method string) *httptest.ResponseRecorder {
	t.Helper()

	s := NewServer(0, store, discardLogger())
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, httptest.NewRequest(method, "/", nil))
	return rec
}

func TestStatusEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeStore{users: 12}, http.MethodGet)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var body statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "running" || body.Users != 12 {
		t.Errorf("body = %+v, want status running with 12 users", body)
	}
}

func TestStatusEndpointDegradesOnStoreFailure(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeStore{users: 5, err: errors.New("database locked")}, http.MethodGet)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}

	var body statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "running" || body.Users != 0 {
		t.Errorf("body = %+v, want status running with 0 users", body)
	}
}

func TestStatusEndpointRejectsOtherMethods(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeStore{}, http.MethodPost)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestServerRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	s := NewServer(0, &fakeStore{}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v, want nil after graceful shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}
