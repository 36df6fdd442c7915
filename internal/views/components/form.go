package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"folio/internal/contact"
	"folio/internal/content"
)

// ContactFormData is the contact form plus how it submits. Static forms never
// reach a server; the browser only simulates the delay.
type ContactFormData struct {
	Form   contact.Form
	Static bool
	Delay  time.Duration
}

func (d ContactFormData) attrs() templ.Attributes {
	if d.Static {
		return templ.Attributes{
			"data-contact-static": strconv.FormatInt(d.Delay.Milliseconds(), 10),
		}
	}
	return templ.Attributes{
		"hx-post":         "/contact",
		"hx-target":       "this",
		"hx-swap":         "outerHTML",
		"hx-disabled-elt": "find button[type='submit']",
		"hx-indicator":    "find .folio-sending",
	}
}

func (d ContactFormData) sent() bool {
	return d.Form.Status == contact.StatusSent
}

func (d ContactFormData) failed() bool {
	return d.Form.Status == contact.StatusFailed && d.Form.Notice != ""
}

func fieldClass(form contact.Form, name string) string {
	if form.FieldError(name) != "" {
		return "folio-input folio-input-invalid"
	}
	return "folio-input"
}

// FooterData carries what the footer renders.
type FooterData struct {
	Name  string
	Email string
	Links []content.Link
	Year  int
}

func mailto(email string) templ.SafeURL {
	return templ.URL("mailto:" + email)
}

func socialIcon(name string) string {
	return "folio-icon-" + strings.ToLower(name)
}
