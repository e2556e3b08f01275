package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/validation"
)

var genreRules = []validation.FieldRule{
	{Field: "name", Checks: []validation.Check{validation.Required("Genre name required")}},
}

var genreSanitizers = []validation.FieldSanitizer{
	{Field: "name", Kind: validation.Text},
}

func buildGenre(clean validation.Clean, id string) model.Genre {
	return model.Genre{ID: id, Name: clean.Text("name")}
}

type GenreService struct {
	repos  *repository.Repositories
	create *pipeline.Pipeline[model.Genre, pipeline.NoReferences]
	update *pipeline.Pipeline[model.Genre, pipeline.NoReferences]
	guard  *pipeline.Guard[model.Genre, model.Book]
}

func NewGenreService(repos *repository.Repositories) *GenreService {
	s := &GenreService{repos: repos}

	form := func(title string, persist func(context.Context, model.Genre) (model.Genre, error)) *pipeline.Pipeline[model.Genre, pipeline.NoReferences] {
		return &pipeline.Pipeline[model.Genre, pipeline.NoReferences]{
			Kind:       model.KindGenre,
			Template:   "genre_form",
			Title:      title,
			Rules:      genreRules,
			Sanitizers: genreSanitizers,
			Build:      buildGenre,
			Persist:    persist,
			Location:   model.Genre.URL,
		}
	}

	s.create = form("Create Genre", s.findOrCreate)
	s.update = form("Update Genre", repos.Genres.Update)
	s.guard = &pipeline.Guard[model.Genre, model.Book]{
		Kind:          model.KindGenre,
		Template:      "genre_delete",
		Title:         "Delete Genre",
		DependentsKey: "genre_books",
		Fetch:         repos.Genres.Get,
		Dependents:    repos.Books.ListByGenre,
		Remove:        repos.Genres.Delete,
	}
	return s
}

// findOrCreate reuses a genre with the same name instead of storing a duplicate.
func (s *GenreService) findOrCreate(ctx context.Context, genre model.Genre) (model.Genre, error) {
	existing, err := s.repos.Genres.FindByName(ctx, genre.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Genre{}, err
	}
	return s.repos.Genres.Create(ctx, genre)
}

func (s *GenreService) List(ctx context.Context) (pipeline.Outcome, error) {
	genres, err := s.repos.Genres.List(ctx)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	return pipeline.Render("genre_list", map[string]any{
		"title":      "Genre List",
		"genre_list": genres,
	}), nil
}

func (s *GenreService) Detail(ctx context.Context, id string) (pipeline.Outcome, error) {
	var (
		genre model.Genre
		books []model.Book
	)

	err := pipeline.FanOut(ctx,
		func(ctx context.Context) (err error) {
			genre, err = s.repos.Genres.Get(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = s.repos.Books.ListByGenre(ctx, id)
			return err
		},
	)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	return pipeline.Render("genre_detail", map[string]any{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	}), nil
}

func (s *GenreService) CreateForm(ctx context.Context) (pipeline.Outcome, error) {
	return s.create.Blank(ctx)
}

func (s *GenreService) Create(ctx context.Context, form url.Values) (pipeline.Outcome, error) {
	return s.create.Run(ctx, form, "")
}

func (s *GenreService) UpdateForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.update.Edit(ctx, fetch(id, s.repos.Genres.Get))
}

func (s *GenreService) Update(ctx context.Context, id string, form url.Values) (pipeline.Outcome, error) {
	return s.update.Run(ctx, form, id)
}

func (s *GenreService) DeleteForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Confirm(ctx, id)
}

func (s *GenreService) Delete(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Delete(ctx, id)
}
