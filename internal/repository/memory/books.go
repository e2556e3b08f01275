package memory

import (
	"context"
	"slices"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
)

type Books struct{ s *Store }

func (r *Books) List(_ context.Context) ([]model.BookSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	books := sortedValues(r.s.books, byTitle)
	out := make([]model.BookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, model.BookSummary{Book: cloneBook(b), Author: r.s.authors[b.AuthorID]})
	}
	return out, nil
}

func (r *Books) Get(_ context.Context, id string) (model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.books[id]
	if !ok {
		return model.Book{}, repository.NotFound("books")
	}
	return cloneBook(b), nil
}

func (r *Books) ListByAuthor(_ context.Context, authorID string) ([]model.Book, error) {
	return r.filter(func(b model.Book) bool { return b.AuthorID == authorID }), nil
}

func (r *Books) ListByGenre(_ context.Context, genreID string) ([]model.Book, error) {
	return r.filter(func(b model.Book) bool { return b.HasGenre(genreID) }), nil
}

func (r *Books) Create(_ context.Context, b model.Book) (model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = newID()
	b.GenreIDs = uniqueIDs(b.GenreIDs)
	r.s.books[b.ID] = b
	return cloneBook(b), nil
}

func (r *Books) Update(_ context.Context, b model.Book) (model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[b.ID]; !ok {
		return model.Book{}, repository.NotFound("books")
	}
	b.GenreIDs = uniqueIDs(b.GenreIDs)
	r.s.books[b.ID] = b
	return cloneBook(b), nil
}

func (r *Books) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return repository.NotFound("books")
	}
	delete(r.s.books, id)
	return nil
}

func (r *Books) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.books)), nil
}

func (r *Books) filter(keep func(model.Book) bool) []model.Book {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []model.Book{}
	for _, b := range sortedValues(r.s.books, byTitle) {
		if keep(b) {
			out = append(out, cloneBook(b))
		}
	}
	return out
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
