package repository

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/jackc/pgx/v5"
)

const authorColumns = `id::text AS id, first_name, family_name, date_of_birth, date_of_death`

type AuthorPostgres struct {
	server *server.Server
}

func NewAuthorRepository(s *server.Server) *AuthorPostgres {
	return &AuthorPostgres{server: s}
}

func (r *AuthorPostgres) List(ctx context.Context) ([]model.Author, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+authorColumns+`
		FROM authors
		ORDER BY family_name ASC, first_name ASC
	`)
	if err != nil {
		return nil, queryErr("authors", "list authors", err)
	}

	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		return nil, queryErr("authors", "collect authors", err)
	}
	return authors, nil
}

func (r *AuthorPostgres) Get(ctx context.Context, id string) (model.Author, error) {
	authorID, err := parseID("authors", id)
	if err != nil {
		return model.Author{}, err
	}

	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+authorColumns+`
		FROM authors
		WHERE id = @id
	`, pgx.NamedArgs{"id": authorID})
	if err != nil {
		return model.Author{}, queryErr("authors", "get author", err)
	}

	author, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		return model.Author{}, queryErr("authors", "get author", err)
	}
	return author, nil
}

func (r *AuthorPostgres) Create(ctx context.Context, author model.Author) (model.Author, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		INSERT INTO authors (first_name, family_name, date_of_birth, date_of_death)
		VALUES (@first_name, @family_name, @date_of_birth, @date_of_death)
		RETURNING `+authorColumns,
		authorArgs(author))
	if err != nil {
		return model.Author{}, queryErr("authors", "create author", err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		return model.Author{}, queryErr("authors", "create author", err)
	}
	return created, nil
}

func (r *AuthorPostgres) Update(ctx context.Context, author model.Author) (model.Author, error) {
	authorID, err := parseID("authors", author.ID)
	if err != nil {
		return model.Author{}, err
	}

	args := authorArgs(author)
	args["id"] = authorID

	rows, err := r.server.DB.Pool.Query(ctx, `
		UPDATE authors
		SET first_name = @first_name,
			family_name = @family_name,
			date_of_birth = @date_of_birth,
			date_of_death = @date_of_death
		WHERE id = @id
		RETURNING `+authorColumns,
		args)
	if err != nil {
		return model.Author{}, queryErr("authors", "update author", err)
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		return model.Author{}, queryErr("authors", "update author", err)
	}
	return updated, nil
}

func (r *AuthorPostgres) Delete(ctx context.Context, id string) error {
	authorID, err := parseID("authors", id)
	if err != nil {
		return err
	}

	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM authors WHERE id = @id`, pgx.NamedArgs{"id": authorID})
	if err != nil {
		return queryErr("authors", "delete author", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound("authors")
	}
	return nil
}

func (r *AuthorPostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT count(*) FROM authors`).Scan(&n); err != nil {
		return 0, queryErr("authors", "count authors", err)
	}
	return n, nil
}

func authorArgs(a model.Author) pgx.NamedArgs {
	return pgx.NamedArgs{
		"first_name":    a.FirstName,
		"family_name":   a.FamilyName,
		"date_of_birth": a.DateOfBirth,
		"date_of_death": a.DateOfDeath,
	}
}
