// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (FieldError for forms, HTTPError for the error page)
// so the client receives meaningful, consistent messages.
//
// - Field-level validation errors re-rendered into forms.
// - A single HTTPError shape for everything the global handler writes.
// - Errors that play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a field-level validation error on a form.
// Example:
//
//	{ "field": "due_back", "error": "Invalid date" }
type FieldError struct {
	// Field is the form field name the error relates to (e.g. "first_name").
	Field string `json:"field"`

	// Error is the human-readable message shown next to the form.
	Error string `json:"error"`
}

// FieldErrors is an ordered list of field errors. Order follows the order in
// which rules were declared, so re-rendered forms list messages predictably.
type FieldErrors []FieldError

// Empty reports whether no field failed.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// For returns the messages attached to field, in declaration order.
func (fe FieldErrors) For(field string) []string {
	var out []string
	for _, e := range fe {
		if e.Field == field {
			out = append(out, e.Error)
		}
	}
	return out
}

// Has reports whether field has at least one error.
func (fe FieldErrors) Has(field string) bool {
	return len(fe.For(field)) > 0
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Value holds the URL.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type the global error handler knows how to write.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to the user as-is.
//   - Errors: per-field errors.
//   - Action: client instruction (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`

	Action *Action `json:"action"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code or Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Not Found" -> "NOT_FOUND"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
