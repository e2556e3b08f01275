package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
)

type BookInstances struct{ s *Store }

func (r *BookInstances) List(_ context.Context) ([]model.BookInstanceDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.BookInstanceDetail, 0, len(r.s.instances))
	for _, bi := range r.s.instances {
		out = append(out, model.BookInstanceDetail{BookInstance: bi, Book: cloneBook(r.s.books[bi.BookID])})
	}
	sortDetails(out)
	return out, nil
}

func (r *BookInstances) Get(_ context.Context, id string) (model.BookInstance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	bi, ok := r.s.instances[id]
	if !ok {
		return model.BookInstance{}, repository.NotFound("book_instances")
	}
	return bi, nil
}

func (r *BookInstances) ListByBook(_ context.Context, bookID string) ([]model.BookInstance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []model.BookInstance{}
	for _, bi := range sortedValues(r.s.instances, byImprint) {
		if bi.BookID == bookID {
			out = append(out, bi)
		}
	}
	return out, nil
}

func (r *BookInstances) Create(_ context.Context, bi model.BookInstance) (model.BookInstance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bi.ID = newID()
	r.s.instances[bi.ID] = bi
	return bi, nil
}

func (r *BookInstances) Update(_ context.Context, bi model.BookInstance) (model.BookInstance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.instances[bi.ID]; !ok {
		return model.BookInstance{}, repository.NotFound("book_instances")
	}
	r.s.instances[bi.ID] = bi
	return bi, nil
}

func (r *BookInstances) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.instances[id]; !ok {
		return repository.NotFound("book_instances")
	}
	delete(r.s.instances, id)
	return nil
}

func (r *BookInstances) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.instances)), nil
}

func (r *BookInstances) CountByStatus(_ context.Context, status model.Status) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, bi := range r.s.instances {
		if bi.Status == status {
			n++
		}
	}
	return n, nil
}

func byImprint(a, b model.BookInstance) int {
	return cmp.Or(strings.Compare(a.Imprint, b.Imprint), strings.Compare(a.ID, b.ID))
}

func sortDetails(ds []model.BookInstanceDetail) {
	slices.SortStableFunc(ds, func(a, b model.BookInstanceDetail) int {
		return cmp.Or(strings.Compare(a.Book.Title, b.Book.Title), byImprint(a.BookInstance, b.BookInstance))
	})
}
