package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"realmlauncher/models"
	profilessvc "realmlauncher/services/profiles"
)

type profilesService interface {
	List() (models.ServerList, error)
	SaveList(list models.ServerList) error
	Add(profile models.ServerProfile) (models.ServerList, error)
	Update(id string, profile models.ServerProfile) (models.ServerList, error)
	Remove(id string) (models.ServerList, error)
}

var _ profilesService = (*profilessvc.Service)(nil)

// ServersHandler exposes the stored server profiles.
type ServersHandler struct {
	Service profilesService
}

func NewServersHandler(s profilesService) *ServersHandler {
	return &ServersHandler{Service: s}
}

// List returns the full profile collection.
func (h *ServersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// Replace overwrites the whole collection with the request body.
func (h *ServersHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var list models.ServerList
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&list); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveList(list); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// Add appends a profile, applying id assignment and field defaults, and
// returns the updated collection.
func (h *ServersHandler) Add(w http.ResponseWriter, r *http.Request) {
	var profile models.ServerProfile
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.Service.Add(profile)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// Update replaces the mutable fields of the addressed profile. An unknown id
// is a no-op; the stored collection is returned either way.
func (h *ServersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var profile models.ServerProfile
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.Service.Update(id, profile)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// Remove deletes the addressed profile. An unknown id is a no-op.
func (h *ServersHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	list, err := h.Service.Remove(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}
