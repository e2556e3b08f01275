// Package validation contains the first three stages of the entity mutation
// pipeline: array normalization, rule validation and sanitization.
//
// It uses the `validator` library to evaluate each declared rule against a
// trimmed form value and collects failures into an ordered list of
// errs.FieldError the form can render next to its inputs. Nothing here
// returns an error: every outcome is data.
package validation

import (
	"fmt"
	"strings"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/go-playground/validator/v10"
)

// validate is shared by every pipeline. validator.Validate is safe for
// concurrent use once custom validations are registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// isodate accepts the ISO-8601 date and date-time forms ParseISODate knows.
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := ParseISODate(fl.Field().String())
		return ok
	})

	return v
}

// Check is one validator tag evaluated against a field, with the message to
// report when it fails. An empty Message falls back to a generic one.
type Check struct {
	Tag     string
	Message string
}

// FieldRule declares the checks for one form field.
//
// Optional fields whose trimmed value is empty skip all checks (falsy values
// count as absent). Checks stop at the first failure so each field reports
// at most one message.
type FieldRule struct {
	Field    string
	Optional bool
	Checks   []Check
}

// Required fails on an empty value.
func Required(message string) Check {
	return Check{Tag: "required", Message: message}
}

// MaxLength fails when the value is longer than n characters.
func MaxLength(n int, message string) Check {
	return Check{Tag: fmt.Sprintf("max=%d", n), Message: message}
}

// Alphanumeric fails on anything but ASCII letters and digits.
func Alphanumeric(message string) Check {
	return Check{Tag: "alphanum", Message: message}
}

// ISODate fails on a value that is not an ISO-8601 date.
func ISODate(message string) Check {
	return Check{Tag: "isodate", Message: message}
}

// OneOf fails when the value is not one of values. Values must not contain spaces.
func OneOf(message string, values ...string) Check {
	return Check{Tag: "oneof=" + strings.Join(values, " "), Message: message}
}

// Validate runs rules against fields in declaration order and returns the
// failures. An empty result means the submission is valid.
func Validate(fields Fields, rules []FieldRule) errs.FieldErrors {
	var out errs.FieldErrors

	for _, rule := range rules {
		value := strings.TrimSpace(fields.Value(rule.Field))

		if rule.Optional && value == "" {
			continue
		}

		for _, check := range rule.Checks {
			err := validate.Var(value, check.Tag)
			if err == nil {
				continue
			}

			msg := check.Message
			if msg == "" {
				msg = messageFor(err)
			}

			out = append(out, errs.FieldError{Field: rule.Field, Error: msg})
			break
		}
	}

	return out
}

// messageFor converts a validator failure into a generic message.
func messageFor(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "is invalid"
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	case "isodate":
		return "Invalid date"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}
