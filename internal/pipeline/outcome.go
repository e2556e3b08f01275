package pipeline

import "github.com/deppfellow/locallibrary/internal/errs"

// State is the terminal state of a request.
type State string

const (
	// StateRendered means a page was rendered (a form awaiting resubmission,
	// a detail page, a delete confirmation).
	StateRendered State = "rendered"

	// StateRedirected means the client is sent elsewhere.
	StateRedirected State = "redirected"
)

// Outcome is what a request resolved to. Exactly one of Template or
// Location is set.
type Outcome struct {
	State State

	Template string
	Data     map[string]any

	Location string

	// Errors are the field errors a re-rendered form carries.
	Errors errs.FieldErrors
}

// Render builds a rendered outcome.
func Render(template string, data map[string]any) Outcome {
	return Outcome{State: StateRendered, Template: template, Data: data}
}

// Redirect builds a redirect outcome.
func Redirect(location string) Outcome {
	return Outcome{State: StateRedirected, Location: location}
}

// Invalid reports whether the outcome is a form re-rendered with errors.
func (o Outcome) Invalid() bool {
	return o.State == StateRendered && !o.Errors.Empty()
}
