package handlers

import (
	"encoding/json"
	"net/http"

	applog "folio/internal/log"
	"folio/internal/views/theme"
)

type appearanceResponse struct {
	Mode string `json:"mode"`
}

// ToggleAppearance flips the visitor's mode between light and dark.
func ToggleAppearance(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	mode := appearanceCtl.Toggle(r.Context())
	applog.Debug(r.Context(), "appearance toggled", "mode", mode)
	recorder.AppearanceChanged(mode.String())
	respondAppearance(w, r, mode)
}

// SetAppearance stores the mode named by the "mode" form value.
func SetAppearance(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse appearance form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	value := r.FormValue("mode")
	mode, ok := theme.Parse(value)
	if !ok {
		applog.Debug(r.Context(), "received invalid appearance mode", "value", value)
		http.Error(w, "invalid appearance mode", http.StatusBadRequest)
		return
	}

	appearanceCtl.Set(r.Context(), mode)
	recorder.AppearanceChanged(mode.String())
	respondAppearance(w, r, mode)
}

func respondAppearance(w http.ResponseWriter, r *http.Request, mode theme.Mode) {
	switch {
	case isHTMX(r):
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
	case wantsJSON(r):
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(appearanceResponse{Mode: mode.String()}); err != nil {
			applog.Error(r.Context(), "failed to encode appearance response", "error", err)
		}
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
