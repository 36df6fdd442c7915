package handlers

import (
	"net/http"
	"strings"

	applog "folio/internal/log"
	"folio/internal/views/components"
)

func fragmentState(r *http.Request) string {
	return strings.TrimSuffix(r.PathValue("file"), ".html")
}

// MenuFragment serves the mobile menu in the requested state.
func MenuFragment(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	state, ok := components.ParseMenuState(fragmentState(r))
	if !ok {
		http.NotFound(w, r)
		return
	}
	render(w, r, "menu", components.MobileMenu(state))
}

// ProjectDescription serves a project's description collapsed or expanded.
func ProjectDescription(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	state, ok := components.ParseExpansion(fragmentState(r))
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := r.PathValue("id")
	project, found := currentPortfolio().Project(id)
	if !found {
		applog.Debug(r.Context(), "description requested for unknown project", "id", id)
		http.NotFound(w, r)
		return
	}
	render(w, r, "description", components.ExpandableDescription(components.Description{
		ID:    project.ID,
		Text:  project.Description,
		Limit: descriptionLimit(),
		State: state,
	}))
}
