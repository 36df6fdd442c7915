// Package contact defines the message submission service behind the
// contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	applog "folio/internal/log"
)

// Message is what a visitor sends through the contact form.
type Message struct {
	Name   string `form:"name" validate:"required,max=120"`
	Email  string `form:"email" validate:"required,email,max=254"`
	Body   string `form:"message" validate:"required,max=5000"`
	Remote string `form:"-" validate:"-"`
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)
	return m
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidationError maps form field names to a human readable problem.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "invalid message: " + strings.Join(parts, "; ")
}

var formNames = map[string]string{
	"Name":  "name",
	"Email": "email",
	"Body":  "message",
}

// Validate checks the message. The returned error is a *ValidationError.
func (m Message) Validate() error {
	err := validatorInstance().Struct(m)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		name := formNames[fe.StructField()]
		if _, exists := fields[name]; exists {
			continue
		}
		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required."
		case "email":
			fields[name] = "Enter a valid email address."
		case "max":
			fields[name] = fmt.Sprintf("Keep this under %s characters.", fe.Param())
		default:
			fields[name] = "This value is not valid."
		}
	}
	return &ValidationError{Fields: fields}
}

// Submitter delivers a contact message somewhere.
type Submitter interface {
	Submit(ctx context.Context, m Message) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, m Message) error

func (f SubmitterFunc) Submit(ctx context.Context, m Message) error {
	return f(ctx, m)
}

// Fanout calls each submitter in order and stops at the first error.
type Fanout []Submitter

func (f Fanout) Submit(ctx context.Context, m Message) error {
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Status is the contact form's state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSent
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSent:
		return "sent"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Form is everything the contact form needs to render itself.
type Form struct {
	Name    string
	Email   string
	Message string
	Status  Status
	Notice  string
	Errors  map[string]string
}

// FieldError returns the error for a form field, if any.
func (f Form) FieldError(name string) string {
	return f.Errors[name]
}

// Messages shown once a submission settles.
const (
	SentNotice    = "Thank you for your message! I'll get back to you soon."
	FailedNotice  = "Sorry, your message could not be sent. Please try again."
	InvalidNotice = "Please fix the highlighted fields."
)

// Submit validates m and hands it to s. It returns the settled form: reset
// with a notice when delivery succeeds, the visitor's input preserved
// otherwise. The error is non-nil whenever the form did not reach StatusSent.
func Submit(ctx context.Context, s Submitter, m Message) (Form, error) {
	m = m.Normalize()
	preserved := Form{Name: m.Name, Email: m.Email, Message: m.Body, Status: StatusFailed}

	if err := m.Validate(); err != nil {
		preserved.Notice = InvalidNotice
		var verr *ValidationError
		if errors.As(err, &verr) {
			preserved.Errors = verr.Fields
		}
		applog.Debug(ctx, "contact message rejected", "error", err)
		return preserved, err
	}

	if s == nil {
		preserved.Notice = FailedNotice
		return preserved, errors.New("contact: no submitter configured")
	}

	if err := s.Submit(ctx, m); err != nil {
		preserved.Notice = FailedNotice
		return preserved, fmt.Errorf("submit contact message: %w", err)
	}

	return Form{Status: StatusSent, Notice: SentNotice}, nil
}
