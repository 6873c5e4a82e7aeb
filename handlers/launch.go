package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	launchersvc "realmlauncher/services/launcher"
)

type launchService interface {
	Play(serverID string) error
}

var _ launchService = (*launchersvc.Service)(nil)

// LaunchHandler starts the game client for a stored profile.
type LaunchHandler struct {
	Service launchService
}

func NewLaunchHandler(s launchService) *LaunchHandler {
	return &LaunchHandler{Service: s}
}

// Play resolves the profile, synchronizes the realmlist files, then spawns
// the client executable.
func (h *LaunchHandler) Play(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Printf("[launch-handler] play request id=%s", id)

	if err := h.Service.Play(id); err != nil {
		switch {
		case errors.Is(err, launchersvc.ErrProfileNotFound):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, launchersvc.ErrNoInstallPath),
			errors.Is(err, launchersvc.ErrExecutableMissing):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			jsonError(w, err.Error(), http.StatusBadGateway)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
