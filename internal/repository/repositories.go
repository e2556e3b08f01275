package repository

import (
	"github.com/deppfellow/locallibrary/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Authors       AuthorRepository
	Genres        GenreRepository
	Books         BookRepository
	BookInstances BookInstanceRepository
}

// NewRepositories constructs the PostgreSQL-backed repositories on the
// server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Authors:       NewAuthorRepository(s),
		Genres:        NewGenreRepository(s),
		Books:         NewBookRepository(s),
		BookInstances: NewBookInstanceRepository(s),
	}
}
