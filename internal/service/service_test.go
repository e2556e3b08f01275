package service

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reminderCall struct {
	instance model.BookInstance
	title    string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []reminderCall
}

func (f *fakeNotifier) ScheduleLoanReminder(_ context.Context, instance model.BookInstance, bookTitle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, reminderCall{instance: instance, title: bookTitle})
	return nil
}

type fixture struct {
	repos    *repository.Repositories
	notifier *fakeNotifier

	authors       *AuthorService
	genres        *GenreService
	books         *BookService
	bookInstances *BookInstanceService
	catalog       *CatalogService
}

func newFixture() *fixture {
	repos := memory.NewRepositories()
	notifier := &fakeNotifier{}
	return &fixture{
		repos:         repos,
		notifier:      notifier,
		authors:       NewAuthorService(repos),
		genres:        NewGenreService(repos),
		books:         NewBookService(repos),
		bookInstances: NewBookInstanceService(repos, notifier),
		catalog:       NewCatalogService(repos),
	}
}

func (f *fixture) seedAuthor(t *testing.T) model.Author {
	t.Helper()
	a, err := f.repos.Authors.Create(context.Background(), model.Author{FirstName: "Isaac", FamilyName: "Asimov"})
	require.NoError(t, err)
	return a
}

func (f *fixture) seedBook(t *testing.T, authorID string, genreIDs ...string) model.Book {
	t.Helper()
	b, err := f.repos.Books.Create(context.Background(), model.Book{
		Title:    "Foundation",
		AuthorID: authorID,
		Summary:  "Psychohistory",
		ISBN:     "9780553293357",
		GenreIDs: genreIDs,
	})
	require.NoError(t, err)
	return b
}

func TestAuthorCreateRedirectsToDetail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.authors.Create(ctx, url.Values{
		"first_name":    {" Isaac "},
		"family_name":   {"Asimov"},
		"date_of_birth": {"1920-01-02"},
	})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRedirected, out.State)

	authors, err := f.repos.Authors.List(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Isaac", authors[0].FirstName)
	assert.Equal(t, authors[0].URL(), out.Location)
	require.NotNil(t, authors[0].DateOfBirth)
	assert.Equal(t, 1920, authors[0].DateOfBirth.Year())
}

func TestAuthorCreateInvalidRendersForm(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.authors.Create(ctx, url.Values{
		"first_name":  {"Jean-Luc"},
		"family_name": {""},
	})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StateRendered, out.State)
	assert.Equal(t, "author_form", out.Template)
	assert.Equal(t, []string{"First name has non-alphanumeric characters."}, out.Errors.For("first_name"))
	assert.Equal(t, []string{"Family name must be specified."}, out.Errors.For("family_name"))

	n, err := f.repos.Authors.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthorInvalidDateEchoesSanitizedInput(t *testing.T) {
	f := newFixture()

	out, err := f.authors.Create(context.Background(), url.Values{
		"first_name":    {"Isaac"},
		"family_name":   {"Asimov"},
		"date_of_birth": {"bogus"},
		"date_of_death": {"1992-04-06"},
	})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRendered, out.State)
	assert.Equal(t, []string{"Invalid date"}, out.Errors.For("date_of_birth"))

	echoed, ok := out.Data["author"].(model.Author)
	require.True(t, ok)
	assert.Nil(t, echoed.DateOfBirth)
	require.NotNil(t, echoed.DateOfDeath)
	assert.Equal(t, "1992-04-06", echoed.DateOfDeath.Format(time.DateOnly))
	assert.Equal(t, "Isaac", echoed.FirstName)
}

func TestGenreCreateReusesExistingName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.genres.Create(ctx, url.Values{"name": {"Fiction"}})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRedirected, first.State)

	second, err := f.genres.Create(ctx, url.Values{"name": {" fiction "}})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRedirected, second.State)
	assert.Equal(t, first.Location, second.Location)

	n, err := f.repos.Genres.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGenreCreateRequiresName(t *testing.T) {
	f := newFixture()

	out, err := f.genres.Create(context.Background(), url.Values{"name": {"   "}})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StateRendered, out.State)
	assert.Equal(t, []string{"Genre name required"}, out.Errors.For("name"))
}

func TestBookCreateChecksReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.seedAuthor(t)
	genre, err := f.repos.Genres.Create(ctx, model.Genre{Name: "Science Fiction"})
	require.NoError(t, err)

	form := url.Values{
		"title":   {"Foundation"},
		"author":  {"missing"},
		"summary": {"Psychohistory"},
		"isbn":    {"9780553293357"},
		"genre":   {genre.ID, "missing-genre"},
	}

	out, err := f.books.Create(ctx, form)
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRendered, out.State)
	assert.Equal(t, []string{"Author not found."}, out.Errors.For("author"))
	assert.Equal(t, []string{"Genre not found."}, out.Errors.For("genre"))

	options, ok := out.Data["genres"].([]model.GenreOption)
	require.True(t, ok)
	require.Len(t, options, 1)
	assert.True(t, options[0].Checked)

	form.Set("author", author.ID)
	form["genre"] = []string{genre.ID, genre.ID}

	out, err = f.books.Create(ctx, form)
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRedirected, out.State)

	books, err := f.repos.Books.ListByGenre(ctx, genre.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{genre.ID}, books[0].GenreIDs)
}

func TestBookFormSingleGenreBecomesList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.books.Create(ctx, url.Values{"genre": {"g1"}})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRendered, out.State)

	book, ok := out.Data["book"].(model.Book)
	require.True(t, ok)
	assert.Equal(t, []string{"g1"}, book.GenreIDs)
	assert.Len(t, out.Errors, 4)
}

func TestBookInstanceInvalidDueBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	book := f.seedBook(t, f.seedAuthor(t).ID)

	out, err := f.bookInstances.Create(ctx, url.Values{
		"book":     {book.ID},
		"imprint":  {"Gnome Press"},
		"status":   {"Lost"},
		"due_back": {"not-a-date"},
	})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRendered, out.State)
	assert.Equal(t, []string{"Invalid date"}, out.Errors.For("due_back"))
	assert.Equal(t, []string{"Invalid status"}, out.Errors.For("status"))
	assert.Equal(t, book.ID, out.Data["selected_book"])

	echoed, ok := out.Data["bookinstance"].(model.BookInstance)
	require.True(t, ok)
	assert.True(t, echoed.DueBack.IsZero())
	assert.Equal(t, model.Status("Lost"), echoed.Status)
	assert.Equal(t, "Gnome Press", echoed.Imprint)

	n, err := f.repos.BookInstances.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookInstanceDefaults(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	f := newFixture()
	ctx := context.Background()
	book := f.seedBook(t, f.seedAuthor(t).ID)

	out, err := f.bookInstances.Create(ctx, url.Values{
		"book":    {book.ID},
		"imprint": {"Gnome Press"},
	})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRedirected, out.State)

	copies, err := f.repos.BookInstances.ListByBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, copies, 1)
	assert.Equal(t, model.StatusMaintenance, copies[0].Status)
	assert.True(t, fixed.Equal(copies[0].DueBack))
	assert.Empty(t, f.notifier.calls)
}

func TestBookInstanceLoanedSchedulesReminder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	book := f.seedBook(t, f.seedAuthor(t).ID)

	out, err := f.bookInstances.Create(ctx, url.Values{
		"book":     {book.ID},
		"imprint":  {"Gnome Press"},
		"status":   {"Loaned"},
		"due_back": {"2026-11-01"},
	})
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRedirected, out.State)

	require.Len(t, f.notifier.calls, 1)
	call := f.notifier.calls[0]
	assert.Equal(t, "Foundation", call.title)
	assert.Equal(t, model.StatusLoaned, call.instance.Status)
	assert.Equal(t, call.instance.URL(), out.Location)
}

func TestBookInstanceUnknownStatus(t *testing.T) {
	f := newFixture()

	out, err := f.bookInstances.Create(context.Background(), url.Values{
		"book":    {"b"},
		"imprint": {"i"},
		"status":  {"Lost"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invalid status"}, out.Errors.For("status"))
}

func TestAuthorDeleteGuardedByBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.seedAuthor(t)
	book := f.seedBook(t, author.ID)

	out, err := f.authors.Delete(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRendered, out.State)
	assert.Equal(t, "author_delete", out.Template)
	assert.Len(t, out.Data["author_books"], 1)

	_, err = f.repos.Authors.Get(ctx, author.ID)
	require.NoError(t, err)

	require.NoError(t, f.repos.Books.Delete(ctx, book.ID))

	out, err = f.authors.Delete(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Redirect("/catalog/authors"), out)

	_, err = f.repos.Authors.Get(ctx, author.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGenreDeleteGuardedByBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	genre, err := f.repos.Genres.Create(ctx, model.Genre{Name: "Fantasy"})
	require.NoError(t, err)
	f.seedBook(t, f.seedAuthor(t).ID, genre.ID)

	out, err := f.genres.DeleteForm(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "genre_delete", out.Template)
	assert.Len(t, out.Data["genre_books"], 1)

	out, err = f.genres.Delete(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StateRendered, out.State)
}

func TestBookDeleteGuardedByCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	book := f.seedBook(t, f.seedAuthor(t).ID)
	instance, err := f.repos.BookInstances.Create(ctx, model.BookInstance{BookID: book.ID, Imprint: "Gnome", Status: model.StatusAvailable})
	require.NoError(t, err)

	out, err := f.books.Delete(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, pipeline.StateRendered, out.State)
	assert.Len(t, out.Data["book_instances"], 1)

	out, err = f.bookInstances.Delete(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Redirect("/catalog/bookinstances"), out)

	out, err = f.books.Delete(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Redirect("/catalog/books"), out)
}

func TestDeleteMissingRedirectsToList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.genres.DeleteForm(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, pipeline.Redirect("/catalog/genres"), out)

	out, err = f.bookInstances.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, pipeline.Redirect("/catalog/bookinstances"), out)
}

func TestDetailMissingIsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.books.Detail(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.authors.UpdateForm(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookDetailResolvesAuthorAndGenres(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.seedAuthor(t)
	genre, err := f.repos.Genres.Create(ctx, model.Genre{Name: "Science Fiction"})
	require.NoError(t, err)
	book := f.seedBook(t, author.ID, genre.ID)

	out, err := f.books.Detail(ctx, book.ID)
	require.NoError(t, err)

	detail, ok := out.Data["book"].(model.BookDetail)
	require.True(t, ok)
	assert.Equal(t, "Asimov, Isaac", detail.Author.Name())
	require.Len(t, detail.Genres, 1)
	assert.Equal(t, "Science Fiction", detail.Genres[0].Name)
	assert.Equal(t, "Foundation", out.Data["title"])
}

func TestCatalogIndexCounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	book := f.seedBook(t, f.seedAuthor(t).ID)
	for _, status := range []model.Status{model.StatusAvailable, model.StatusLoaned, model.StatusAvailable} {
		_, err := f.repos.BookInstances.Create(ctx, model.BookInstance{BookID: book.ID, Imprint: "x", Status: status})
		require.NoError(t, err)
	}

	out, err := f.catalog.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, "index", out.Template)
	assert.Equal(t, IndexCounts{
		Books:                  1,
		BookInstances:          3,
		BookInstancesAvailable: 2,
		Authors:                1,
		Genres:                 0,
	}, out.Data["data"])
	assert.Nil(t, out.Data["error"])
}

func TestFormErrorsCarriedInData(t *testing.T) {
	f := newFixture()

	out, err := f.genres.Create(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, out.Errors, out.Data["errors"].(errs.FieldErrors))
}
