package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// A run of client-class statuses means the upstream is answering; the
// breaker must stay closed so every later call still reaches it.
func TestDoRequestClientErrorsKeepCircuitClosed(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := HTTPClientConfig{Client: srv.Client(), UserAgent: "test"}
	cb := newCircuit("client-errors")
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, srv.URL, nil)
	}

	for i := 0; i < 10; i++ {
		_, err := doRequest(context.Background(), cfg, cb, buildRequest)
		if !errors.Is(err, errRequestRejected) {
			t.Fatalf("call %d: error = %v, want errRequestRejected", i, err)
		}
	}

	if hits != 10 {
		t.Fatalf("server saw %d requests, want 10", hits)
	}
}

func TestDoRequestServerErrorsOpenCircuit(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := HTTPClientConfig{Client: srv.Client(), UserAgent: "test"}
	cb := newCircuit("server-errors")
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, srv.URL, nil)
	}

	for i := 0; i < 6; i++ {
		_, err := doRequest(context.Background(), cfg, cb, buildRequest)
		if !errors.Is(err, errUnexpectedStatus) {
			t.Fatalf("call %d: error = %v, want errUnexpectedStatus", i, err)
		}
	}

	_, err := doRequest(context.Background(), cfg, cb, buildRequest)
	if !errors.Is(err, errCircuitOpen) {
		t.Fatalf("error after six server failures = %v, want errCircuitOpen", err)
	}
	if hits != 6 {
		t.Fatalf("server saw %d requests, want 6", hits)
	}
}
