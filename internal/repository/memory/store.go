// Package memory provides an in-memory implementation of the catalog
// repositories used for tests and ephemeral environments.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/google/uuid"
)

// Compile-time contract assertions.
var (
	_ repository.AuthorRepository       = (*Authors)(nil)
	_ repository.GenreRepository        = (*Genres)(nil)
	_ repository.BookRepository         = (*Books)(nil)
	_ repository.BookInstanceRepository = (*BookInstances)(nil)
)

// Store holds every collection behind one lock so joins see a consistent state.
type Store struct {
	mu        sync.RWMutex
	authors   map[string]model.Author
	genres    map[string]model.Genre
	books     map[string]model.Book
	instances map[string]model.BookInstance
}

func NewStore() *Store {
	return &Store{
		authors:   make(map[string]model.Author),
		genres:    make(map[string]model.Genre),
		books:     make(map[string]model.Book),
		instances: make(map[string]model.BookInstance),
	}
}

// NewRepositories wires a fresh store into the repository container.
func NewRepositories() *repository.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Authors:       &Authors{s},
		Genres:        &Genres{s},
		Books:         &Books{s},
		BookInstances: &BookInstances{s},
	}
}

func newID() string {
	return uuid.NewString()
}

func cloneBook(b model.Book) model.Book {
	b.GenreIDs = slices.Clone(b.GenreIDs)
	if b.GenreIDs == nil {
		b.GenreIDs = []string{}
	}
	return b
}

func sortedValues[T any](m map[string]T, less func(a, b T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortStableFunc(out, less)
	return out
}

func byFamilyName(a, b model.Author) int {
	return cmp.Or(
		strings.Compare(a.FamilyName, b.FamilyName),
		strings.Compare(a.FirstName, b.FirstName),
		strings.Compare(a.ID, b.ID),
	)
}

func byGenreName(a, b model.Genre) int {
	return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
}

func byTitle(a, b model.Book) int {
	return cmp.Or(strings.Compare(a.Title, b.Title), strings.Compare(a.ID, b.ID))
}
