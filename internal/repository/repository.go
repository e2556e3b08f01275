// Package repository handles all interactions with the catalog store.
//
// It declares the store contracts the service layer depends on and holds the
// PostgreSQL implementation. Alternative backends live in sub-packages
// (memory, mongostore) and satisfy the same interfaces.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/locallibrary/internal/model"
)

// ErrNotFound is wrapped by every backend when an identifier does not resolve
// to an entity. Malformed identifiers resolve to nothing as well.
var ErrNotFound = errors.New("record not found")

// NotFound wraps ErrNotFound with the table the lookup ran against. The
// "table:<name>:" prefix lets sqlerr name the missing entity.
func NotFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, ErrNotFound)
}

type AuthorRepository interface {
	// List returns every author ordered by family name.
	List(ctx context.Context) ([]model.Author, error)
	Get(ctx context.Context, id string) (model.Author, error)
	Create(ctx context.Context, author model.Author) (model.Author, error)
	Update(ctx context.Context, author model.Author) (model.Author, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type GenreRepository interface {
	// List returns every genre ordered by name.
	List(ctx context.Context) ([]model.Genre, error)
	Get(ctx context.Context, id string) (model.Genre, error)
	// ListByIDs returns the genres among ids that exist, ordered by name.
	ListByIDs(ctx context.Context, ids []string) ([]model.Genre, error)
	// FindByName matches names case-insensitively.
	FindByName(ctx context.Context, name string) (model.Genre, error)
	Create(ctx context.Context, genre model.Genre) (model.Genre, error)
	Update(ctx context.Context, genre model.Genre) (model.Genre, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type BookRepository interface {
	// List returns every book with its author, ordered by title.
	List(ctx context.Context) ([]model.BookSummary, error)
	Get(ctx context.Context, id string) (model.Book, error)
	// ListByAuthor returns the books written by authorID, ordered by title.
	ListByAuthor(ctx context.Context, authorID string) ([]model.Book, error)
	// ListByGenre returns the books tagged with genreID, ordered by title.
	ListByGenre(ctx context.Context, genreID string) ([]model.Book, error)
	Create(ctx context.Context, book model.Book) (model.Book, error)
	Update(ctx context.Context, book model.Book) (model.Book, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type BookInstanceRepository interface {
	// List returns every copy with its book.
	List(ctx context.Context) ([]model.BookInstanceDetail, error)
	Get(ctx context.Context, id string) (model.BookInstance, error)
	// ListByBook returns the copies of bookID.
	ListByBook(ctx context.Context, bookID string) ([]model.BookInstance, error)
	Create(ctx context.Context, instance model.BookInstance) (model.BookInstance, error)
	Update(ctx context.Context, instance model.BookInstance) (model.BookInstance, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.Status) (int64, error)
}
