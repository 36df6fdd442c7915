package handlers

import (
	"context"
	"errors"
	"net/http"

	"folio/internal/contact"
	applog "folio/internal/log"
	"folio/internal/views/components"
	"folio/internal/views/pages"
)

// SubmitContact validates the contact form and hands it to the configured
// submitter. HTMX callers receive the settled form fragment; everyone else
// receives the whole page with the form in its settled state.
func SubmitContact(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse contact form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	msg := contact.Message{
		Name:   r.FormValue("name"),
		Email:  r.FormValue("email"),
		Body:   r.FormValue("message"),
		Remote: r.RemoteAddr,
	}

	form, err := contact.Submit(r.Context(), submitter, msg)
	status := http.StatusOK
	switch {
	case err == nil:
		recorder.ContactSubmitted("sent")
		applog.Info(r.Context(), "contact message sent")
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		recorder.ContactSubmitted("abandoned")
		applog.Debug(r.Context(), "contact submission abandoned", "error", err)
		return
	case isValidationError(err):
		recorder.ContactSubmitted("invalid")
		status = http.StatusUnprocessableEntity
	default:
		recorder.ContactSubmitted("failed")
		applog.Error(r.Context(), "contact submission failed", "error", err)
		status = http.StatusBadGateway
	}

	data := components.ContactFormData{Form: form, Delay: timing.ContactDelay}
	if isHTMX(r) {
		render(w, r, "contact", components.ContactForm(data))
		return
	}

	view := buildView(r)
	view.Contact = data
	renderStatus(w, r, status, "home", pages.Home(view))
}

func isValidationError(err error) bool {
	var verr *contact.ValidationError
	return errors.As(err, &verr)
}
