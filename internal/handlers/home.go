package handlers

import (
	"net/http"

	applog "folio/internal/log"
	"folio/internal/views/pages"
)

// Home renders the loader while the visitor's loading gate is closed and the
// full page once it has opened.
func Home(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	state := loadingGate.Status(r.Context())
	view := buildView(r)
	if state.Loading {
		applog.Debug(r.Context(), "loading gate closed", "remaining", state.Remaining)
		render(w, r, "loading", pages.Loading(view, state.Remaining))
		return
	}
	render(w, r, "home", pages.Home(view))
}

// Sections waits out whatever is left of the loading gate and returns the
// page body. Nothing is rendered if the request ends first.
func Sections(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	if err := loadingGate.Wait(r.Context()); err != nil {
		applog.Debug(r.Context(), "sections request ended before the gate opened", "error", err)
		return
	}

	view := buildView(r)
	if isHTMX(r) {
		render(w, r, "sections", pages.Sections(view))
		return
	}
	render(w, r, "home", pages.Home(view))
}
