package mongostore

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Authors struct {
	coll *mongo.Collection
}

func (r *Authors) List(ctx context.Context) ([]model.Author, error) {
	authors, err := findAll[model.Author](ctx, r.coll, bson.D{}, sortBy("family_name", "first_name"))
	if err != nil {
		return nil, findErr(authorsCollection, "list authors", err)
	}
	return authors, nil
}

func (r *Authors) Get(ctx context.Context, id string) (model.Author, error) {
	var a model.Author
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&a); err != nil {
		return model.Author{}, findErr(authorsCollection, "get author", err)
	}
	return a, nil
}

func (r *Authors) Create(ctx context.Context, a model.Author) (model.Author, error) {
	a.ID = newID()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return model.Author{}, findErr(authorsCollection, "create author", err)
	}
	return a, nil
}

func (r *Authors) Update(ctx context.Context, a model.Author) (model.Author, error) {
	if err := replace(ctx, r.coll, a.ID, a); err != nil {
		return model.Author{}, err
	}
	return a, nil
}

func (r *Authors) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.coll, id)
}

func (r *Authors) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, findErr(authorsCollection, "count authors", err)
	}
	return n, nil
}
