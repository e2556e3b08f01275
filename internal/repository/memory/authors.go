package memory

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
)

type Authors struct{ s *Store }

func (r *Authors) List(_ context.Context) ([]model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.authors, byFamilyName), nil
}

func (r *Authors) Get(_ context.Context, id string) (model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.authors[id]
	if !ok {
		return model.Author{}, repository.NotFound("authors")
	}
	return a, nil
}

func (r *Authors) Create(_ context.Context, a model.Author) (model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = newID()
	r.s.authors[a.ID] = a
	return a, nil
}

func (r *Authors) Update(_ context.Context, a model.Author) (model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[a.ID]; !ok {
		return model.Author{}, repository.NotFound("authors")
	}
	r.s.authors[a.ID] = a
	return a, nil
}

func (r *Authors) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[id]; !ok {
		return repository.NotFound("authors")
	}
	delete(r.s.authors, id)
	return nil
}

func (r *Authors) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.authors)), nil
}
