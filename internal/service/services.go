package service

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/lib/job"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/server"
)

// LoanNotifier schedules due-back reminders for loaned copies.
type LoanNotifier interface {
	ScheduleLoanReminder(ctx context.Context, instance model.BookInstance, bookTitle string) error
}

type Services struct {
	Catalog       *CatalogService
	Authors       *AuthorService
	Genres        *GenreService
	Books         *BookService
	BookInstances *BookInstanceService
	Job           *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier LoanNotifier
	if s.Job != nil && s.Config.RemindersEnabled() {
		notifier = s.Job
	}

	return &Services{
		Catalog:       NewCatalogService(repos),
		Authors:       NewAuthorService(repos),
		Genres:        NewGenreService(repos),
		Books:         NewBookService(repos),
		BookInstances: NewBookInstanceService(repos, notifier),
		Job:           s.Job,
	}, nil
}
