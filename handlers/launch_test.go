package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	launchersvc "realmlauncher/services/launcher"
)

type fakeLauncher struct {
	err      error
	playedID string
}

func (f *fakeLauncher) Play(serverID string) error {
	f.playedID = serverID
	return f.err
}

func launchRouter(f *fakeLauncher) *mux.Router {
	h := NewLaunchHandler(f)
	r := mux.NewRouter()
	r.HandleFunc("/api/servers/{id}/play", h.Play).Methods(http.MethodPost)
	return r
}

func playRequest(t *testing.T, router *mux.Router, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/servers/"+id+"/play", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPlaySuccess(t *testing.T) {
	fake := &fakeLauncher{}
	rec := playRequest(t, launchRouter(fake), "s1")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.playedID != "s1" {
		t.Fatalf("expected id s1 to be forwarded, got %q", fake.playedID)
	}
}

func TestPlayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"profile not found", fmt.Errorf("%w: s1", launchersvc.ErrProfileNotFound), http.StatusNotFound},
		{"no install path", launchersvc.ErrNoInstallPath, http.StatusUnprocessableEntity},
		{"executable missing", launchersvc.ErrExecutableMissing, http.StatusUnprocessableEntity},
		{"io failure", fmt.Errorf("write realmlist.wtf: permission denied"), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := playRequest(t, launchRouter(&fakeLauncher{err: tc.err}), "s1")
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}
