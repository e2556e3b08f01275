package mongostore

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Genres struct {
	coll *mongo.Collection
}

func (r *Genres) List(ctx context.Context) ([]model.Genre, error) {
	genres, err := findAll[model.Genre](ctx, r.coll, bson.D{}, sortBy("name"))
	if err != nil {
		return nil, findErr(genresCollection, "list genres", err)
	}
	return genres, nil
}

func (r *Genres) ListByIDs(ctx context.Context, ids []string) ([]model.Genre, error) {
	if len(ids) == 0 {
		return []model.Genre{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	genres, err := findAll[model.Genre](ctx, r.coll, filter, sortBy("name"))
	if err != nil {
		return nil, findErr(genresCollection, "list genres by id", err)
	}
	return genres, nil
}

func (r *Genres) Get(ctx context.Context, id string) (model.Genre, error) {
	var g model.Genre
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&g); err != nil {
		return model.Genre{}, findErr(genresCollection, "get genre", err)
	}
	return g, nil
}

func (r *Genres) FindByName(ctx context.Context, name string) (model.Genre, error) {
	var g model.Genre
	opts := options.FindOne().SetCollation(caseInsensitive)
	if err := r.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}, opts).Decode(&g); err != nil {
		return model.Genre{}, findErr(genresCollection, "find genre by name", err)
	}
	return g, nil
}

func (r *Genres) Create(ctx context.Context, g model.Genre) (model.Genre, error) {
	g.ID = newID()
	if _, err := r.coll.InsertOne(ctx, g); err != nil {
		return model.Genre{}, findErr(genresCollection, "create genre", err)
	}
	return g, nil
}

func (r *Genres) Update(ctx context.Context, g model.Genre) (model.Genre, error) {
	if err := replace(ctx, r.coll, g.ID, g); err != nil {
		return model.Genre{}, err
	}
	return g, nil
}

func (r *Genres) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.coll, id)
}

func (r *Genres) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, findErr(genresCollection, "count genres", err)
	}
	return n, nil
}
