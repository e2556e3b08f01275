// Package service contains the catalog business logic.
//
// Each entity service instantiates the generic mutation pipeline twice
// (create and update) with its own field rules, sanitizers, constructor and
// reference-data fetcher, guards deletion against dependents, and answers
// list and detail queries. Results are pipeline.Outcome values the handler
// layer renders or redirects.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/repository"
)

// exists turns a lookup into a field error when the referenced entity is
// missing. Other store errors abort the request.
func exists(field, message string, lookup func() error) (errs.FieldErrors, error) {
	err := lookup()
	if errors.Is(err, repository.ErrNotFound) {
		return errs.FieldErrors{{Field: field, Error: message}}, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// fetch adapts an id lookup to pipeline.Pipeline.Edit.
func fetch[E any](id string, get func(ctx context.Context, id string) (E, error)) func(ctx context.Context) (E, error) {
	return func(ctx context.Context) (E, error) {
		return get(ctx, id)
	}
}
