package repository

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/jackc/pgx/v5"
)

const genreColumns = `id::text AS id, name`

type GenrePostgres struct {
	server *server.Server
}

func NewGenreRepository(s *server.Server) *GenrePostgres {
	return &GenrePostgres{server: s}
}

func (r *GenrePostgres) List(ctx context.Context) ([]model.Genre, error) {
	return r.collect(ctx, "list genres", `
		SELECT `+genreColumns+`
		FROM genres
		ORDER BY name ASC
	`, nil)
}

func (r *GenrePostgres) ListByIDs(ctx context.Context, ids []string) ([]model.Genre, error) {
	return r.collect(ctx, "list genres by id", `
		SELECT `+genreColumns+`
		FROM genres
		WHERE id = ANY(@ids::uuid[])
		ORDER BY name ASC
	`, pgx.NamedArgs{"ids": parseIDs(ids)})
}

func (r *GenrePostgres) Get(ctx context.Context, id string) (model.Genre, error) {
	genreID, err := parseID("genres", id)
	if err != nil {
		return model.Genre{}, err
	}
	return r.one(ctx, "get genre", `
		SELECT `+genreColumns+`
		FROM genres
		WHERE id = @id
	`, pgx.NamedArgs{"id": genreID})
}

func (r *GenrePostgres) FindByName(ctx context.Context, name string) (model.Genre, error) {
	return r.one(ctx, "find genre by name", `
		SELECT `+genreColumns+`
		FROM genres
		WHERE lower(name) = lower(@name)
		LIMIT 1
	`, pgx.NamedArgs{"name": name})
}

func (r *GenrePostgres) Create(ctx context.Context, genre model.Genre) (model.Genre, error) {
	return r.one(ctx, "create genre", `
		INSERT INTO genres (name)
		VALUES (@name)
		RETURNING `+genreColumns,
		pgx.NamedArgs{"name": genre.Name})
}

func (r *GenrePostgres) Update(ctx context.Context, genre model.Genre) (model.Genre, error) {
	genreID, err := parseID("genres", genre.ID)
	if err != nil {
		return model.Genre{}, err
	}
	return r.one(ctx, "update genre", `
		UPDATE genres
		SET name = @name
		WHERE id = @id
		RETURNING `+genreColumns,
		pgx.NamedArgs{"id": genreID, "name": genre.Name})
}

func (r *GenrePostgres) Delete(ctx context.Context, id string) error {
	genreID, err := parseID("genres", id)
	if err != nil {
		return err
	}

	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM genres WHERE id = @id`, pgx.NamedArgs{"id": genreID})
	if err != nil {
		return queryErr("genres", "delete genre", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound("genres")
	}
	return nil
}

func (r *GenrePostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT count(*) FROM genres`).Scan(&n); err != nil {
		return 0, queryErr("genres", "count genres", err)
	}
	return n, nil
}

func (r *GenrePostgres) collect(ctx context.Context, op, query string, args pgx.NamedArgs) ([]model.Genre, error) {
	var queryArgs []any
	if args != nil {
		queryArgs = append(queryArgs, args)
	}

	rows, err := r.server.DB.Pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, queryErr("genres", op, err)
	}

	genres, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Genre])
	if err != nil {
		return nil, queryErr("genres", op, err)
	}
	return genres, nil
}

func (r *GenrePostgres) one(ctx context.Context, op, query string, args pgx.NamedArgs) (model.Genre, error) {
	rows, err := r.server.DB.Pool.Query(ctx, query, args)
	if err != nil {
		return model.Genre{}, queryErr("genres", op, err)
	}

	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Genre])
	if err != nil {
		return model.Genre{}, queryErr("genres", op, err)
	}
	return genre, nil
}
