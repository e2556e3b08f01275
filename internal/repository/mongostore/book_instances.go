package mongostore

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookInstances struct {
	coll *mongo.Collection
}

func (r *BookInstances) List(ctx context.Context) ([]model.BookInstanceDetail, error) {
	// $lookup joins each copy with its book in one round trip.
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: booksCollection},
			{Key: "localField", Value: "book"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "books"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "imprint", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, findErr(bookInstancesCollection, "list book instances", err)
	}

	var rows []struct {
		model.BookInstance `bson:",inline"`
		Books              []model.Book `bson:"books"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, findErr(bookInstancesCollection, "list book instances", err)
	}

	out := make([]model.BookInstanceDetail, 0, len(rows))
	for _, row := range rows {
		d := model.BookInstanceDetail{BookInstance: row.BookInstance}
		if len(row.Books) > 0 {
			d.Book = withGenres(row.Books[0])
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *BookInstances) Get(ctx context.Context, id string) (model.BookInstance, error) {
	var bi model.BookInstance
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&bi); err != nil {
		return model.BookInstance{}, findErr(bookInstancesCollection, "get book instance", err)
	}
	return bi, nil
}

func (r *BookInstances) ListByBook(ctx context.Context, bookID string) ([]model.BookInstance, error) {
	instances, err := findAll[model.BookInstance](ctx, r.coll, bson.D{{Key: "book", Value: bookID}}, sortBy("imprint"))
	if err != nil {
		return nil, findErr(bookInstancesCollection, "list book instances by book", err)
	}
	return instances, nil
}

func (r *BookInstances) Create(ctx context.Context, bi model.BookInstance) (model.BookInstance, error) {
	bi.ID = newID()
	if _, err := r.coll.InsertOne(ctx, bi); err != nil {
		return model.BookInstance{}, findErr(bookInstancesCollection, "create book instance", err)
	}
	return bi, nil
}

func (r *BookInstances) Update(ctx context.Context, bi model.BookInstance) (model.BookInstance, error) {
	if err := replace(ctx, r.coll, bi.ID, bi); err != nil {
		return model.BookInstance{}, err
	}
	return bi, nil
}

func (r *BookInstances) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.coll, id)
}

func (r *BookInstances) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, findErr(bookInstancesCollection, "count book instances", err)
	}
	return n, nil
}

func (r *BookInstances) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "status", Value: string(status)}})
	if err != nil {
		return 0, findErr(bookInstancesCollection, "count book instances by status", err)
	}
	return n, nil
}
