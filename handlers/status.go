package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"realmlauncher/models"
	statussvc "realmlauncher/services/status"
)

type statusService interface {
	Check(host string, port int, timeout time.Duration) (models.RealmStatus, error)
	CheckProfile(serverID string) (models.RealmStatus, error)
	CheckAll() (map[string]models.RealmStatus, error)
	History(serverID string, limit int) ([]models.StatusCheck, error)
}

var _ statusService = (*statussvc.Service)(nil)

// StatusHandler exposes reachability probes and their recorded history.
type StatusHandler struct {
	Service statusService
}

func NewStatusHandler(s statusService) *StatusHandler {
	return &StatusHandler{Service: s}
}

// Profile probes the stored profile with the given id.
func (h *StatusHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	status, err := h.Service.CheckProfile(id)
	if err != nil {
		if errors.Is(err, statussvc.ErrProfileNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, status)
}

// Check probes an ad-hoc host:port. Port defaults to 3724 and the timeout to
// the prober default.
func (h *StatusHandler) Check(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Host           string `json:"host"`
		Port           int    `json:"port"`
		TimeoutSeconds int    `json:"timeoutSeconds"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&request); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Host) == "" {
		jsonError(w, "host is required", http.StatusBadRequest)
		return
	}

	status, err := h.Service.Check(request.Host, request.Port, time.Duration(request.TimeoutSeconds)*time.Second)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, status)
}

// All probes every stored profile and returns a status map keyed by id.
func (h *StatusHandler) All(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.CheckAll()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, results)
}

// History returns the most recent recorded checks for a profile.
func (h *StatusHandler) History(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			jsonError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	checks, err := h.Service.History(id, limit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, checks)
}
