// Package mongostore implements the catalog repositories on MongoDB.
//
// Documents use string uuid identifiers under _id so entity URLs look the
// same whichever backend serves them. Books reference their author and
// genres by id, copies reference their book.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	authorsCollection       = "authors"
	genresCollection        = "genres"
	booksCollection         = "books"
	bookInstancesCollection = "bookinstances"
)

var (
	_ repository.AuthorRepository       = (*Authors)(nil)
	_ repository.GenreRepository        = (*Genres)(nil)
	_ repository.BookRepository         = (*Books)(nil)
	_ repository.BookInstanceRepository = (*BookInstances)(nil)
)

// caseInsensitive compares strings ignoring case, the way genre names are matched.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// NewRepositories wires the collections of db into the repository container.
func NewRepositories(db *mongo.Database) *repository.Repositories {
	return &repository.Repositories{
		Authors:       &Authors{coll: db.Collection(authorsCollection)},
		Genres:        &Genres{coll: db.Collection(genresCollection)},
		Books:         &Books{coll: db.Collection(booksCollection), authors: db.Collection(authorsCollection)},
		BookInstances: &BookInstances{coll: db.Collection(bookInstancesCollection)},
	}
}

// EnsureIndexes creates the secondary indexes list and dependency queries use.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		authorsCollection: {
			{Keys: bson.D{{Key: "family_name", Value: 1}, {Key: "first_name", Value: 1}}},
		},
		genresCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetCollation(caseInsensitive)},
		},
		booksCollection: {
			{Keys: bson.D{{Key: "author", Value: 1}}},
			{Keys: bson.D{{Key: "genre", Value: 1}}},
			{Keys: bson.D{{Key: "title", Value: 1}}},
		},
		bookInstancesCollection: {
			{Keys: bson.D{{Key: "book", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// findErr annotates a failed operation, turning mongo.ErrNoDocuments into
// repository.ErrNotFound.
func findErr(coll, op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to %s: %w", op, repository.NotFound(coll))
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// findAll decodes every document matching filter into a non-nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func sortBy(fields ...string) *options.FindOptions {
	sort := bson.D{}
	for _, f := range fields {
		sort = append(sort, bson.E{Key: f, Value: 1})
	}
	return options.Find().SetSort(sort)
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	res, err := coll.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return findErr(coll.Name(), "replace "+coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return repository.NotFound(coll.Name())
	}
	return nil
}

func remove(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return findErr(coll.Name(), "delete "+coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repository.NotFound(coll.Name())
	}
	return nil
}
