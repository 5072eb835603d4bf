// Package inputval validates request input structs with
// go-playground/validator and turns failures into short, human-readable
// messages.
//
// Struct fields carry a `validate` tag with the rules and an optional
// `label` tag with the name used in messages:
//
//	type MemberInput struct {
//	    Email string `validate:"required,emailaddr" label:"Email"`
//	}
//
// Custom rules registered here:
//   - emailaddr: a bare email address (no display name)
//   - httpurl: an absolute http or https URL
//   - objectid: a 24-character hexadecimal identifier
//   - year: a four-digit year
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/moviehub/internal/app/system/objectid"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
			return IsValidYear(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects the failures from Validate.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when there are none.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate runs the struct's rules. Errors are reported in field order.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email", "emailaddr":
		return "A valid email address is required."
	case "httpurl":
		return label + " must be a valid http or https URL."
	case "objectid":
		return "Invalid " + label + " format"
	case "year":
		return label + " must be a four-digit year."
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s).", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s item(s).", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	default:
		return label + " is invalid."
	}
}

// IsValidEmail reports whether s is a bare address such as
// "user@example.com". Display-name forms are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	for _, part := range []string{s[:at], s[at+1:]} {
		if part == "" || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") ||
			strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidObjectID reports whether s (trimmed) is a 24-character hex id.
func IsValidObjectID(s string) bool {
	return objectid.Valid(strings.TrimSpace(s))
}

// IsValidYear reports whether s is exactly four ASCII digits.
func IsValidYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
