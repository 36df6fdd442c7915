package handlers

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/contact"
	applog "folio/internal/log"
	"folio/internal/views/pages"
)

const inboxLimit = 100

// Inbox lists stored contact messages to the administrator. It is hidden
// unless both a database and an admin password hash are configured.
func Inbox(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	if database == nil || admin.PasswordHash == "" {
		http.NotFound(w, r)
		return
	}
	if !authorized(r) {
		applog.Debug(r.Context(), "inbox access denied")
		w.Header().Set("WWW-Authenticate", `Basic realm="inbox", charset="UTF-8"`)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	messages, err := contact.Recent(r.Context(), database, inboxLimit)
	if err != nil {
		applog.Error(r.Context(), "failed to load inbox", "error", err)
		http.Error(w, "unable to load messages", http.StatusInternalServerError)
		return
	}
	render(w, r, "inbox", pages.Inbox(messages, appearanceCtl.Palette(r.Context())))
}

func authorized(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	expected := admin.User
	if expected == "" {
		expected = "admin"
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(expected)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(pass)) == nil
}
