package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Issue is a problem found in a content document. Issues are reported, not
// fatal: rendering continues with whatever the document holds.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Validate checks rendering keys and link formats.
func Validate(p *Portfolio) []Issue {
	if p == nil {
		return []Issue{{Field: "content", Message: "document is empty"}}
	}

	var issues []Issue
	if err := validatorInstance().Struct(p); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				issues = append(issues, Issue{Field: fieldName(fe), Message: describe(fe)})
			}
		} else {
			issues = append(issues, Issue{Field: "content", Message: err.Error()})
		}
	}

	issues = append(issues, duplicates("projects", len(p.Projects), func(i int) string { return p.Projects[i].ID })...)
	issues = append(issues, duplicates("timeline.events", len(p.Timeline.Events), func(i int) string { return p.Timeline.Events[i].ID })...)
	return issues
}

func duplicates(field string, n int, id func(int) string) []Issue {
	var issues []Issue
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := id(i)
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("%s[%d].id", field, i),
				Message: fmt.Sprintf("duplicate id %q (first used at index %d)", key, first),
			})
			continue
		}
		seen[key] = i
	}
	return issues
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing id"
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "oneof":
		return fmt.Sprintf("%q must be one of %s", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}
