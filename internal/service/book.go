package service

import (
	"context"
	"net/url"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/validation"
)

var bookRules = []validation.FieldRule{
	{Field: "title", Checks: []validation.Check{validation.Required("Title must not be empty.")}},
	{Field: "author", Checks: []validation.Check{validation.Required("Author must not be empty.")}},
	{Field: "summary", Checks: []validation.Check{validation.Required("Summary must not be empty.")}},
	{Field: "isbn", Checks: []validation.Check{validation.Required("ISBN must not be empty")}},
}

var bookSanitizers = []validation.FieldSanitizer{
	{Field: "title", Kind: validation.Text},
	{Field: "author", Kind: validation.Text},
	{Field: "summary", Kind: validation.Text},
	{Field: "isbn", Kind: validation.Text},
	{Field: "genre", Kind: validation.List},
}

func buildBook(clean validation.Clean, id string) model.Book {
	return model.Book{
		ID:       id,
		Title:    clean.Text("title"),
		AuthorID: clean.Text("author"),
		Summary:  clean.Text("summary"),
		ISBN:     clean.Text("isbn"),
		GenreIDs: clean.List("genre"),
	}
}

// bookReferences populate the author select and genre checkboxes.
type bookReferences struct {
	Authors []model.Author
	Genres  []model.Genre
}

type BookService struct {
	repos  *repository.Repositories
	create *pipeline.Pipeline[model.Book, bookReferences]
	update *pipeline.Pipeline[model.Book, bookReferences]
	guard  *pipeline.Guard[model.BookSummary, model.BookInstance]
}

func NewBookService(repos *repository.Repositories) *BookService {
	s := &BookService{repos: repos}

	form := func(title string, persist func(context.Context, model.Book) (model.Book, error)) *pipeline.Pipeline[model.Book, bookReferences] {
		return &pipeline.Pipeline[model.Book, bookReferences]{
			Kind:       model.KindBook,
			Template:   "book_form",
			Title:      title,
			ListFields: []string{"genre"},
			Rules:      bookRules,
			Sanitizers: bookSanitizers,
			Build:      buildBook,
			References: s.references,
			View:       bookView,
			Check:      s.checkReferences,
			Persist:    persist,
			Location:   model.Book.URL,
		}
	}

	s.create = form("Create Book", repos.Books.Create)
	s.update = form("Update Book", repos.Books.Update)
	s.guard = &pipeline.Guard[model.BookSummary, model.BookInstance]{
		Kind:          model.KindBook,
		Template:      "book_delete",
		Title:         "Delete Book",
		DependentsKey: "book_instances",
		Fetch:         s.summary,
		Dependents:    repos.BookInstances.ListByBook,
		Remove:        repos.Books.Delete,
	}
	return s
}

func (s *BookService) references(ctx context.Context) (bookReferences, error) {
	var refs bookReferences
	err := pipeline.FanOut(ctx,
		func(ctx context.Context) (err error) {
			refs.Authors, err = s.repos.Authors.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			refs.Genres, err = s.repos.Genres.List(ctx)
			return err
		},
	)
	return refs, err
}

// bookView marks the book's genres as checked.
func bookView(book model.Book, refs bookReferences) map[string]any {
	return map[string]any{
		"book":    book,
		"authors": refs.Authors,
		"genres":  model.GenreOptions(refs.Genres, book.GenreIDs),
	}
}

// checkReferences requires the author and every genre to exist.
func (s *BookService) checkReferences(ctx context.Context, book model.Book) (errs.FieldErrors, error) {
	var authorErrs, genreErrs errs.FieldErrors

	err := pipeline.FanOut(ctx,
		func(ctx context.Context) (err error) {
			authorErrs, err = exists("author", "Author not found.", func() error {
				_, err := s.repos.Authors.Get(ctx, book.AuthorID)
				return err
			})
			return err
		},
		func(ctx context.Context) error {
			if len(book.GenreIDs) == 0 {
				return nil
			}
			found, err := s.repos.Genres.ListByIDs(ctx, book.GenreIDs)
			if err != nil {
				return err
			}
			known := make(map[string]bool, len(found))
			for _, g := range found {
				known[g.ID] = true
			}
			for _, id := range book.GenreIDs {
				if !known[id] {
					genreErrs = errs.FieldErrors{{Field: "genre", Error: "Genre not found."}}
					break
				}
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return append(authorErrs, genreErrs...), nil
}

// summary loads a book with its author.
func (s *BookService) summary(ctx context.Context, id string) (model.BookSummary, error) {
	book, err := s.repos.Books.Get(ctx, id)
	if err != nil {
		return model.BookSummary{}, err
	}
	author, err := s.repos.Authors.Get(ctx, book.AuthorID)
	if err != nil {
		return model.BookSummary{}, err
	}
	return model.BookSummary{Book: book, Author: author}, nil
}

// detail loads a book with its author and genres resolved.
func (s *BookService) detail(ctx context.Context, id string) (model.BookDetail, error) {
	book, err := s.repos.Books.Get(ctx, id)
	if err != nil {
		return model.BookDetail{}, err
	}

	d := model.BookDetail{Book: book}
	err = pipeline.FanOut(ctx,
		func(ctx context.Context) (err error) {
			d.Author, err = s.repos.Authors.Get(ctx, book.AuthorID)
			return err
		},
		func(ctx context.Context) (err error) {
			d.Genres, err = s.repos.Genres.ListByIDs(ctx, book.GenreIDs)
			return err
		},
	)
	return d, err
}

func (s *BookService) List(ctx context.Context) (pipeline.Outcome, error) {
	books, err := s.repos.Books.List(ctx)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	return pipeline.Render("book_list", map[string]any{
		"title":     "Book List",
		"book_list": books,
	}), nil
}

func (s *BookService) Detail(ctx context.Context, id string) (pipeline.Outcome, error) {
	var (
		book      model.BookDetail
		instances []model.BookInstance
	)

	err := pipeline.FanOut(ctx,
		func(ctx context.Context) (err error) {
			book, err = s.detail(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			instances, err = s.repos.BookInstances.ListByBook(ctx, id)
			return err
		},
	)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	return pipeline.Render("book_detail", map[string]any{
		"title":          book.Title,
		"book":           book,
		"book_instances": instances,
	}), nil
}

func (s *BookService) CreateForm(ctx context.Context) (pipeline.Outcome, error) {
	return s.create.Blank(ctx)
}

func (s *BookService) Create(ctx context.Context, form url.Values) (pipeline.Outcome, error) {
	return s.create.Run(ctx, form, "")
}

func (s *BookService) UpdateForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.update.Edit(ctx, fetch(id, s.repos.Books.Get))
}

func (s *BookService) Update(ctx context.Context, id string, form url.Values) (pipeline.Outcome, error) {
	return s.update.Run(ctx, form, id)
}

func (s *BookService) DeleteForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Confirm(ctx, id)
}

func (s *BookService) Delete(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Delete(ctx, id)
}
