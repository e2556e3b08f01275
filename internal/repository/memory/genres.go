package memory

import (
	"context"
	"strings"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
)

type Genres struct{ s *Store }

func (r *Genres) List(_ context.Context) ([]model.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.genres, byGenreName), nil
}

func (r *Genres) ListByIDs(_ context.Context, ids []string) ([]model.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subset := make(map[string]model.Genre, len(ids))
	for _, id := range ids {
		if g, ok := r.s.genres[id]; ok {
			subset[id] = g
		}
	}
	return sortedValues(subset, byGenreName), nil
}

func (r *Genres) Get(_ context.Context, id string) (model.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.genres[id]
	if !ok {
		return model.Genre{}, repository.NotFound("genres")
	}
	return g, nil
}

func (r *Genres) FindByName(_ context.Context, name string) (model.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range sortedValues(r.s.genres, byGenreName) {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return model.Genre{}, repository.NotFound("genres")
}

func (r *Genres) Create(_ context.Context, g model.Genre) (model.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g.ID = newID()
	r.s.genres[g.ID] = g
	return g, nil
}

func (r *Genres) Update(_ context.Context, g model.Genre) (model.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.genres[g.ID]; !ok {
		return model.Genre{}, repository.NotFound("genres")
	}
	r.s.genres[g.ID] = g
	return g, nil
}

func (r *Genres) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.genres[id]; !ok {
		return repository.NotFound("genres")
	}
	delete(r.s.genres, id)
	return nil
}

func (r *Genres) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.genres)), nil
}
