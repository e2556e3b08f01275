package mongostore

import (
	"context"
	"slices"

	"github.com/deppfellow/locallibrary/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Books struct {
	coll    *mongo.Collection
	authors *mongo.Collection
}

func (r *Books) List(ctx context.Context) ([]model.BookSummary, error) {
	books, err := findAll[model.Book](ctx, r.coll, bson.D{}, sortBy("title"))
	if err != nil {
		return nil, findErr(booksCollection, "list books", err)
	}

	authorIDs := make([]string, 0, len(books))
	for _, b := range books {
		if !slices.Contains(authorIDs, b.AuthorID) {
			authorIDs = append(authorIDs, b.AuthorID)
		}
	}

	authors, err := findAll[model.Author](ctx, r.authors, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: authorIDs}}}})
	if err != nil {
		return nil, findErr(authorsCollection, "list book authors", err)
	}
	authorsByID := make(map[string]model.Author, len(authors))
	for _, a := range authors {
		authorsByID[a.ID] = a
	}

	out := make([]model.BookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, model.BookSummary{Book: withGenres(b), Author: authorsByID[b.AuthorID]})
	}
	return out, nil
}

func (r *Books) Get(ctx context.Context, id string) (model.Book, error) {
	var b model.Book
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&b); err != nil {
		return model.Book{}, findErr(booksCollection, "get book", err)
	}
	return withGenres(b), nil
}

func (r *Books) ListByAuthor(ctx context.Context, authorID string) ([]model.Book, error) {
	return r.filter(ctx, "list books by author", bson.D{{Key: "author", Value: authorID}})
}

func (r *Books) ListByGenre(ctx context.Context, genreID string) ([]model.Book, error) {
	// genre is an array field; equality matches any element.
	return r.filter(ctx, "list books by genre", bson.D{{Key: "genre", Value: genreID}})
}

func (r *Books) Create(ctx context.Context, b model.Book) (model.Book, error) {
	b.ID = newID()
	b = withGenres(b)
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return model.Book{}, findErr(booksCollection, "create book", err)
	}
	return b, nil
}

func (r *Books) Update(ctx context.Context, b model.Book) (model.Book, error) {
	b = withGenres(b)
	if err := replace(ctx, r.coll, b.ID, b); err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (r *Books) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.coll, id)
}

func (r *Books) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, findErr(booksCollection, "count books", err)
	}
	return n, nil
}

func (r *Books) filter(ctx context.Context, op string, filter bson.D) ([]model.Book, error) {
	books, err := findAll[model.Book](ctx, r.coll, filter, sortBy("title"))
	if err != nil {
		return nil, findErr(booksCollection, op, err)
	}
	for i := range books {
		books[i] = withGenres(books[i])
	}
	return books, nil
}

// withGenres normalizes the genre list: never nil, no repeats.
func withGenres(b model.Book) model.Book {
	ids := make([]string, 0, len(b.GenreIDs))
	for _, id := range b.GenreIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	b.GenreIDs = ids
	return b
}
