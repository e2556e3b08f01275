package service

import (
	"context"
	"net/url"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/validation"
)

var authorRules = []validation.FieldRule{
	{Field: "first_name", Checks: []validation.Check{
		validation.Required("First name must be specified."),
		validation.MaxLength(100, "First name must not exceed 100 characters."),
		validation.Alphanumeric("First name has non-alphanumeric characters."),
	}},
	{Field: "family_name", Checks: []validation.Check{
		validation.Required("Family name must be specified."),
		validation.MaxLength(100, "Family name must not exceed 100 characters."),
		validation.Alphanumeric("Family name has non-alphanumeric characters."),
	}},
	{Field: "date_of_birth", Optional: true, Checks: []validation.Check{
		validation.ISODate("Invalid date"),
	}},
	{Field: "date_of_death", Optional: true, Checks: []validation.Check{
		validation.ISODate("Invalid date"),
	}},
}

var authorSanitizers = []validation.FieldSanitizer{
	{Field: "first_name", Kind: validation.Text},
	{Field: "family_name", Kind: validation.Text},
	{Field: "date_of_birth", Kind: validation.Date},
	{Field: "date_of_death", Kind: validation.Date},
}

func buildAuthor(clean validation.Clean, id string) model.Author {
	return model.Author{
		ID:          id,
		FirstName:   clean.Text("first_name"),
		FamilyName:  clean.Text("family_name"),
		DateOfBirth: clean.Date("date_of_birth"),
		DateOfDeath: clean.Date("date_of_death"),
	}
}

type AuthorService struct {
	repos  *repository.Repositories
	create *pipeline.Pipeline[model.Author, pipeline.NoReferences]
	update *pipeline.Pipeline[model.Author, pipeline.NoReferences]
	guard  *pipeline.Guard[model.Author, model.Book]
}

func NewAuthorService(repos *repository.Repositories) *AuthorService {
	form := func(title string, persist func(context.Context, model.Author) (model.Author, error)) *pipeline.Pipeline[model.Author, pipeline.NoReferences] {
		return &pipeline.Pipeline[model.Author, pipeline.NoReferences]{
			Kind:       model.KindAuthor,
			Template:   "author_form",
			Title:      title,
			Rules:      authorRules,
			Sanitizers: authorSanitizers,
			Build:      buildAuthor,
			Persist:    persist,
			Location:   model.Author.URL,
		}
	}

	return &AuthorService{
		repos:  repos,
		create: form("Create Author", repos.Authors.Create),
		update: form("Update Author", repos.Authors.Update),
		guard: &pipeline.Guard[model.Author, model.Book]{
			Kind:          model.KindAuthor,
			Template:      "author_delete",
			Title:         "Delete Author",
			DependentsKey: "author_books",
			Fetch:         repos.Authors.Get,
			Dependents:    repos.Books.ListByAuthor,
			Remove:        repos.Authors.Delete,
		},
	}
}

func (s *AuthorService) List(ctx context.Context) (pipeline.Outcome, error) {
	authors, err := s.repos.Authors.List(ctx)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	return pipeline.Render("author_list", map[string]any{
		"title":       "Author List",
		"author_list": authors,
	}), nil
}

func (s *AuthorService) Detail(ctx context.Context, id string) (pipeline.Outcome, error) {
	var (
		author model.Author
		books  []model.Book
	)

	err := pipeline.FanOut(ctx,
		func(ctx context.Context) (err error) {
			author, err = s.repos.Authors.Get(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = s.repos.Books.ListByAuthor(ctx, id)
			return err
		},
	)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	return pipeline.Render("author_detail", map[string]any{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
	}), nil
}

func (s *AuthorService) CreateForm(ctx context.Context) (pipeline.Outcome, error) {
	return s.create.Blank(ctx)
}

func (s *AuthorService) Create(ctx context.Context, form url.Values) (pipeline.Outcome, error) {
	return s.create.Run(ctx, form, "")
}

func (s *AuthorService) UpdateForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.update.Edit(ctx, fetch(id, s.repos.Authors.Get))
}

func (s *AuthorService) Update(ctx context.Context, id string, form url.Values) (pipeline.Outcome, error) {
	return s.update.Run(ctx, form, id)
}

func (s *AuthorService) DeleteForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Confirm(ctx, id)
}

func (s *AuthorService) Delete(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Delete(ctx, id)
}
