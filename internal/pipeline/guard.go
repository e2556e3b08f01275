package pipeline

import (
	"context"
	"errors"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
)

// Guard protects the deletion of an entity E that dependents D may reference.
// Deletion is refused while any dependent exists; nothing is cascaded.
type Guard[E any, D any] struct {
	Kind model.Kind

	// Template and Title of the confirmation page.
	Template string
	Title    string

	// DependentsKey is the template context key of the blocking dependents.
	DependentsKey string

	Fetch func(ctx context.Context, id string) (E, error)

	// Dependents lists entities referencing id. Nil for kinds nothing references.
	Dependents func(ctx context.Context, id string) ([]D, error)

	Remove func(ctx context.Context, id string) error
}

// Confirm renders the confirmation page. A missing entity redirects to the
// list page instead of failing.
func (g *Guard[E, D]) Confirm(ctx context.Context, id string) (Outcome, error) {
	entity, deps, found, err := g.load(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !found {
		return Redirect(model.ListURL(g.Kind)), nil
	}
	return g.page(entity, deps), nil
}

// Delete removes the entity when it has no dependents and redirects to the
// list page. With dependents it re-renders the confirmation page listing them.
func (g *Guard[E, D]) Delete(ctx context.Context, id string) (Outcome, error) {
	entity, deps, found, err := g.load(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !found {
		return Redirect(model.ListURL(g.Kind)), nil
	}
	if len(deps) > 0 {
		return g.page(entity, deps), nil
	}

	if err := g.Remove(ctx, id); err != nil {
		return Outcome{}, err
	}
	return Redirect(model.ListURL(g.Kind)), nil
}

// load fetches the entity and its dependents together.
func (g *Guard[E, D]) load(ctx context.Context, id string) (entity E, deps []D, found bool, err error) {
	found = true

	err = FanOut(ctx,
		func(ctx context.Context) error {
			var ferr error
			entity, ferr = g.Fetch(ctx, id)
			if errors.Is(ferr, repository.ErrNotFound) {
				found = false
				return nil
			}
			return ferr
		},
		func(ctx context.Context) error {
			if g.Dependents == nil {
				return nil
			}
			var derr error
			deps, derr = g.Dependents(ctx, id)
			return derr
		},
	)
	return entity, deps, found, err
}

func (g *Guard[E, D]) page(entity E, deps []D) Outcome {
	data := map[string]any{
		"title":        g.Title,
		string(g.Kind): entity,
	}
	if g.DependentsKey != "" {
		data[g.DependentsKey] = deps
	}
	return Render(g.Template, data)
}
