package handlers

import (
	"encoding/json"
	"net/http"

	"realmlauncher/models"
	profilessvc "realmlauncher/services/profiles"
)

type settingsService interface {
	Settings() (models.AppSettings, error)
	SaveSettings(settings models.AppSettings) error
}

var _ settingsService = (*profilessvc.Service)(nil)

// SettingsHandler exposes the launcher-wide settings.
type SettingsHandler struct {
	Service settingsService
}

func NewSettingsHandler(s settingsService) *SettingsHandler {
	return &SettingsHandler{Service: s}
}

// Get returns the stored settings with defaults applied.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.Settings()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, settings)
}

// Save persists the settings wholesale and echoes the stored value.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var settings models.AppSettings
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveSettings(settings); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stored, err := h.Service.Settings()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stored)
}
