// Package pipeline implements the entity mutation pipeline shared by every
// catalog entity, and the delete guard that protects referenced entities.
//
// A create or update request moves through
//
//	Received -> Normalized -> Validated -> Invalid: ReferenceDataFetched -> Rendered
//	                                    -> Valid:   Persisted -> Redirected
//
// One Pipeline value is configured per entity kind and mode (create or
// update). It never writes HTTP itself: it returns an Outcome the handler
// layer turns into a rendered page or a redirect.
package pipeline

import (
	"context"
	"net/url"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/validation"
)

// NoReferences is the reference-data type of forms that need none.
type NoReferences struct{}

// Pipeline is the validate / sanitize / branch chain for entity E whose form
// needs reference data R (e.g. the author and genre lists of a book form).
type Pipeline[E any, R any] struct {
	// Kind names the entity; it is also the template context key of the entity.
	Kind model.Kind

	// Template and Title of the form page.
	Template string
	Title    string

	// ListFields are multi-select fields normalized into sequences.
	ListFields []string

	Rules      []validation.FieldRule
	Sanitizers []validation.FieldSanitizer

	// Build turns sanitized fields into a candidate entity. id is "" on
	// create and the existing identifier on update.
	Build func(clean validation.Clean, id string) E

	// References fetches the data the form needs. Nil means R's zero value.
	References func(ctx context.Context) (R, error)

	// View adds the entity and reference data to the template context,
	// marking selected references.
	View func(entity E, refs R) map[string]any

	// Check verifies references held by a valid candidate still exist.
	// Failures are reported like validation failures. Optional.
	Check func(ctx context.Context, entity E) (errs.FieldErrors, error)

	// Persist inserts or replaces the candidate and returns the stored entity
	// the request should redirect to.
	Persist func(ctx context.Context, entity E) (E, error)

	// Location is the canonical URL of a stored entity.
	Location func(entity E) string

	// AfterPersist runs once the entity is stored. Optional; it cannot fail the request.
	AfterPersist func(ctx context.Context, entity E)
}

// Run executes the pipeline for one submitted form.
//
// Validation and sanitization both run before the branch, so an invalid
// submission is echoed back sanitized and is never persisted.
func (p *Pipeline[E, R]) Run(ctx context.Context, form url.Values, id string) (Outcome, error) {
	fields := validation.Normalize(form, p.ListFields...)
	result := validation.Validate(fields, p.Rules)
	clean := validation.Sanitize(fields, p.Sanitizers)

	entity := p.Build(clean, id)

	if result.Empty() && p.Check != nil {
		refErrs, err := p.Check(ctx, entity)
		if err != nil {
			return Outcome{}, err
		}
		result = refErrs
	}

	if !result.Empty() {
		return p.render(ctx, entity, result)
	}

	saved, err := p.Persist(ctx, entity)
	if err != nil {
		return Outcome{}, err
	}

	if p.AfterPersist != nil {
		p.AfterPersist(ctx, saved)
	}

	return Redirect(p.Location(saved)), nil
}

// Blank renders the empty form.
func (p *Pipeline[E, R]) Blank(ctx context.Context) (Outcome, error) {
	var zero E
	return p.render(ctx, zero, nil)
}

// Edit renders the form prefilled with the stored entity. The entity and the
// reference data are fetched concurrently.
func (p *Pipeline[E, R]) Edit(ctx context.Context, fetch func(ctx context.Context) (E, error)) (Outcome, error) {
	var (
		entity E
		refs   R
	)

	err := FanOut(ctx,
		func(ctx context.Context) error {
			var err error
			entity, err = fetch(ctx)
			return err
		},
		func(ctx context.Context) error {
			var err error
			refs, err = p.references(ctx)
			return err
		},
	)
	if err != nil {
		return Outcome{}, err
	}

	return p.page(entity, refs, nil), nil
}

func (p *Pipeline[E, R]) render(ctx context.Context, entity E, fieldErrs errs.FieldErrors) (Outcome, error) {
	refs, err := p.references(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return p.page(entity, refs, fieldErrs), nil
}

func (p *Pipeline[E, R]) references(ctx context.Context) (R, error) {
	if p.References == nil {
		var zero R
		return zero, nil
	}
	return p.References(ctx)
}

func (p *Pipeline[E, R]) page(entity E, refs R, fieldErrs errs.FieldErrors) Outcome {
	data := map[string]any{
		"title":  p.Title,
		"errors": fieldErrs,
	}

	if p.View != nil {
		for k, v := range p.View(entity, refs) {
			data[k] = v
		}
	} else {
		data[string(p.Kind)] = entity
	}

	out := Render(p.Template, data)
	out.Errors = fieldErrs
	return out
}
