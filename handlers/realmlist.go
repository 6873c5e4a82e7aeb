package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	realmlistsvc "realmlauncher/services/realmlist"
)

type realmlistService interface {
	Sync(installPath, host, locale string, accountName *string) error
}

var _ realmlistService = (*realmlistsvc.Service)(nil)

// RealmlistHandler rewrites client realmlist files for an explicit target.
type RealmlistHandler struct {
	Service realmlistService
}

func NewRealmlistHandler(s realmlistService) *RealmlistHandler {
	return &RealmlistHandler{Service: s}
}

// Sync applies the realmlist directive to the given installation. Locale is
// optional and defaults inside the service.
func (h *RealmlistHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var request struct {
		InstallPath string  `json:"installPath"`
		Host        string  `json:"host"`
		Locale      string  `json:"locale"`
		AccountName *string `json:"accountName"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&request); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(request.InstallPath) == "" {
		jsonError(w, "installPath is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Host) == "" {
		jsonError(w, "host is required", http.StatusBadRequest)
		return
	}

	log.Printf("[realmlist-handler] sync request installPath=%q host=%q locale=%q",
		request.InstallPath, request.Host, request.Locale)

	if err := h.Service.Sync(request.InstallPath, request.Host, request.Locale, request.AccountName); err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
