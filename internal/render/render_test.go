package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryPageRenders(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	born := time.Date(1920, 1, 2, 0, 0, 0, 0, time.UTC)
	author := model.Author{ID: "a1", FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &born}
	genre := model.Genre{ID: "g1", Name: "Science Fiction"}
	book := model.Book{ID: "b1", Title: "Foundation", AuthorID: "a1", Summary: "s", ISBN: "i", GenreIDs: []string{"g1"}}
	instance := model.BookInstance{ID: "i1", BookID: "b1", Imprint: "Gnome", Status: model.StatusLoaned, DueBack: born}
	fieldErrs := errs.FieldErrors{{Field: "name", Error: "Genre name required"}}

	pages := map[string]map[string]any{
		"index":       {"title": "Local Library Home", "data": struct{ Books, BookInstances, BookInstancesAvailable, Authors, Genres int64 }{}},
		"error":       {"title": "Not Found", "message": "Not Found", "status": 404},
		"author_list": {"title": "Author List", "author_list": []model.Author{author}},
		"author_detail": {
			"title": "Author Detail", "author": author, "author_books": []model.Book{book},
		},
		"author_form":   {"title": "Create Author", "author": model.Author{}, "errors": fieldErrs},
		"author_delete": {"title": "Delete Author", "author": author, "author_books": []model.Book{}},
		"genre_list":    {"title": "Genre List", "genre_list": []model.Genre{genre}},
		"genre_detail":  {"title": "Genre Detail", "genre": genre, "genre_books": []model.Book{book}},
		"genre_form":    {"title": "Create Genre", "genre": genre, "errors": fieldErrs},
		"genre_delete":  {"title": "Delete Genre", "genre": genre, "genre_books": []model.Book{book}},
		"book_list": {
			"title": "Book List", "book_list": []model.BookSummary{{Book: book, Author: author}},
		},
		"book_detail": {
			"title":          "Foundation",
			"book":           model.BookDetail{Book: book, Author: author, Genres: []model.Genre{genre}},
			"book_instances": []model.BookInstance{instance},
		},
		"book_form": {
			"title": "Create Book", "book": book, "authors": []model.Author{author},
			"genres": model.GenreOptions([]model.Genre{genre}, book.GenreIDs),
		},
		"book_delete": {
			"title": "Delete Book", "book": model.BookSummary{Book: book, Author: author},
			"book_instances": []model.BookInstance{instance},
		},
		"bookinstance_list": {
			"title": "Book Instance List", "bookinstance_list": []model.BookInstanceDetail{{BookInstance: instance, Book: book}},
		},
		"bookinstance_detail": {
			"title": "Book: Foundation", "bookinstance": model.BookInstanceDetail{BookInstance: instance, Book: book},
		},
		"bookinstance_form": {
			"title": "Create BookInstance", "bookinstance": instance,
			"book_list":     []model.BookSummary{{Book: book, Author: author}},
			"selected_book": "b1", "statuses": model.Statuses,
		},
		"bookinstance_delete": {
			"title": "Delete BookInstance", "bookinstance": model.BookInstanceDetail{BookInstance: instance, Book: book},
		},
	}

	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			require.True(t, r.Has(name))

			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, name, data, nil))
			assert.Contains(t, buf.String(), "<title>")
		})
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "missing", nil, nil))
}

func TestPageTitleEscapedOnce(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	book := model.Book{ID: "b1", Title: "Tom &amp; Jerry"}
	var buf bytes.Buffer
	err = r.Render(&buf, "book_detail", map[string]any{
		"title":          book.Title,
		"book":           model.BookDetail{Book: book},
		"book_instances": []model.BookInstance{},
	}, nil)
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "<title>Tom &amp; Jerry</title>")
	assert.NotContains(t, body, "&amp;amp;")
}

func TestFormSelections(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err = r.Render(&buf, "bookinstance_form", map[string]any{
		"title":         "Update BookInstance",
		"bookinstance":  model.BookInstance{BookID: "b1", Status: model.StatusReserved, DueBack: due},
		"book_list":     []model.BookSummary{{Book: model.Book{ID: "b1", Title: "Dune"}}},
		"selected_book": "b1",
		"statuses":      model.Statuses,
	}, nil)
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, `value="b1" selected`)
	assert.Contains(t, body, `value="Reserved" selected`)
	assert.Contains(t, body, `value="2026-11-01"`)
}

func TestFuncs(t *testing.T) {
	d := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mar 4, 2026", formatDate(d))
	assert.Equal(t, "Mar 4, 2026", formatDate(&d))
	assert.Equal(t, "", formatDate((*time.Time)(nil)))
	assert.Equal(t, "2026-03-04", inputDate(d))
	assert.Equal(t, "", inputDate("nope"))
	assert.Equal(t, "/catalog/genres", Funcs()["listURL"].(func(string) string)("genre"))
}
