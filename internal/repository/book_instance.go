package repository

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookInstanceColumns = `id::text AS id, book_id::text AS book_id, imprint, status, due_back`

type BookInstancePostgres struct {
	server *server.Server
}

func NewBookInstanceRepository(s *server.Server) *BookInstancePostgres {
	return &BookInstancePostgres{server: s}
}

func (r *BookInstancePostgres) List(ctx context.Context) ([]model.BookInstanceDetail, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT
			bi.id::text,
			bi.book_id::text,
			bi.imprint,
			bi.status,
			bi.due_back,
			b.title,
			b.author_id::text,
			b.summary,
			b.isbn
		FROM book_instances bi
		JOIN books b ON b.id = bi.book_id
		ORDER BY b.title ASC, bi.imprint ASC
	`)
	if err != nil {
		return nil, queryErr("book_instances", "list book instances", err)
	}

	instances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BookInstanceDetail, error) {
		var d model.BookInstanceDetail
		err := row.Scan(
			&d.ID,
			&d.BookID,
			&d.Imprint,
			&d.Status,
			&d.DueBack,
			&d.Book.Title,
			&d.Book.AuthorID,
			&d.Book.Summary,
			&d.Book.ISBN,
		)
		d.Book.ID = d.BookID
		d.Book.GenreIDs = []string{}
		return d, err
	})
	if err != nil {
		return nil, queryErr("book_instances", "collect book instances", err)
	}
	return instances, nil
}

func (r *BookInstancePostgres) Get(ctx context.Context, id string) (model.BookInstance, error) {
	instanceID, err := parseID("book_instances", id)
	if err != nil {
		return model.BookInstance{}, err
	}
	return r.one(ctx, "get book instance", `
		SELECT `+bookInstanceColumns+`
		FROM book_instances
		WHERE id = @id
	`, pgx.NamedArgs{"id": instanceID})
}

func (r *BookInstancePostgres) ListByBook(ctx context.Context, bookID string) ([]model.BookInstance, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return []model.BookInstance{}, nil
	}

	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+bookInstanceColumns+`
		FROM book_instances
		WHERE book_id = @id
		ORDER BY imprint ASC
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, queryErr("book_instances", "list book instances by book", err)
	}

	instances, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BookInstance])
	if err != nil {
		return nil, queryErr("book_instances", "list book instances by book", err)
	}
	return instances, nil
}

func (r *BookInstancePostgres) Create(ctx context.Context, instance model.BookInstance) (model.BookInstance, error) {
	bookID, err := parseID("books", instance.BookID)
	if err != nil {
		return model.BookInstance{}, err
	}
	return r.one(ctx, "create book instance", `
		INSERT INTO book_instances (book_id, imprint, status, due_back)
		VALUES (@book_id, @imprint, @status, @due_back)
		RETURNING `+bookInstanceColumns,
		pgx.NamedArgs{
			"book_id":  bookID,
			"imprint":  instance.Imprint,
			"status":   string(instance.Status),
			"due_back": instance.DueBack,
		})
}

func (r *BookInstancePostgres) Update(ctx context.Context, instance model.BookInstance) (model.BookInstance, error) {
	instanceID, err := parseID("book_instances", instance.ID)
	if err != nil {
		return model.BookInstance{}, err
	}
	bookID, err := parseID("books", instance.BookID)
	if err != nil {
		return model.BookInstance{}, err
	}
	return r.one(ctx, "update book instance", `
		UPDATE book_instances
		SET book_id = @book_id,
			imprint = @imprint,
			status = @status,
			due_back = @due_back
		WHERE id = @id
		RETURNING `+bookInstanceColumns,
		pgx.NamedArgs{
			"id":       instanceID,
			"book_id":  bookID,
			"imprint":  instance.Imprint,
			"status":   string(instance.Status),
			"due_back": instance.DueBack,
		})
}

func (r *BookInstancePostgres) Delete(ctx context.Context, id string) error {
	instanceID, err := parseID("book_instances", id)
	if err != nil {
		return err
	}

	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM book_instances WHERE id = @id`, pgx.NamedArgs{"id": instanceID})
	if err != nil {
		return queryErr("book_instances", "delete book instance", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound("book_instances")
	}
	return nil
}

func (r *BookInstancePostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT count(*) FROM book_instances`).Scan(&n); err != nil {
		return 0, queryErr("book_instances", "count book instances", err)
	}
	return n, nil
}

func (r *BookInstancePostgres) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	var n int64
	err := r.server.DB.Pool.QueryRow(ctx,
		`SELECT count(*) FROM book_instances WHERE status = @status`,
		pgx.NamedArgs{"status": string(status)},
	).Scan(&n)
	if err != nil {
		return 0, queryErr("book_instances", "count book instances by status", err)
	}
	return n, nil
}

func (r *BookInstancePostgres) one(ctx context.Context, op, query string, args pgx.NamedArgs) (model.BookInstance, error) {
	rows, err := r.server.DB.Pool.Query(ctx, query, args)
	if err != nil {
		return model.BookInstance{}, queryErr("book_instances", op, err)
	}

	instance, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BookInstance])
	if err != nil {
		return model.BookInstance{}, queryErr("book_instances", op, err)
	}
	return instance, nil
}
