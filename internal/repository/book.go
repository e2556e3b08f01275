package repository

import (
	"context"

	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// bookSelect reads books with their genre ids in submission order.
const bookSelect = `
	SELECT
		b.id::text AS id,
		b.title,
		b.author_id::text AS author_id,
		b.summary,
		b.isbn,
		COALESCE(
			array_agg(bg.genre_id::text ORDER BY bg.position) FILTER (WHERE bg.genre_id IS NOT NULL),
			'{}'
		) AS genre_ids
	FROM books b
	LEFT JOIN book_genres bg ON bg.book_id = b.id
`

type BookPostgres struct {
	server *server.Server
}

func NewBookRepository(s *server.Server) *BookPostgres {
	return &BookPostgres{server: s}
}

func (r *BookPostgres) List(ctx context.Context) ([]model.BookSummary, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT
			b.id::text,
			b.title,
			b.author_id::text,
			b.summary,
			b.isbn,
			a.first_name,
			a.family_name,
			a.date_of_birth,
			a.date_of_death
		FROM books b
		JOIN authors a ON a.id = b.author_id
		ORDER BY b.title ASC
	`)
	if err != nil {
		return nil, queryErr("books", "list books", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BookSummary, error) {
		var s model.BookSummary
		err := row.Scan(
			&s.ID,
			&s.Title,
			&s.AuthorID,
			&s.Summary,
			&s.ISBN,
			&s.Author.FirstName,
			&s.Author.FamilyName,
			&s.Author.DateOfBirth,
			&s.Author.DateOfDeath,
		)
		s.Author.ID = s.AuthorID
		s.GenreIDs = []string{}
		return s, err
	})
	if err != nil {
		return nil, queryErr("books", "collect books", err)
	}
	return books, nil
}

func (r *BookPostgres) Get(ctx context.Context, id string) (model.Book, error) {
	bookID, err := parseID("books", id)
	if err != nil {
		return model.Book{}, err
	}

	return r.get(ctx, r.server.DB.Pool, bookID)
}

func (r *BookPostgres) ListByAuthor(ctx context.Context, authorID string) ([]model.Book, error) {
	id, err := uuid.Parse(authorID)
	if err != nil {
		return []model.Book{}, nil
	}
	return r.collect(ctx, "list books by author", bookSelect+`
		WHERE b.author_id = @id
		GROUP BY b.id
		ORDER BY b.title ASC
	`, pgx.NamedArgs{"id": id})
}

func (r *BookPostgres) ListByGenre(ctx context.Context, genreID string) ([]model.Book, error) {
	id, err := uuid.Parse(genreID)
	if err != nil {
		return []model.Book{}, nil
	}
	return r.collect(ctx, "list books by genre", bookSelect+`
		WHERE b.id IN (SELECT book_id FROM book_genres WHERE genre_id = @id)
		GROUP BY b.id
		ORDER BY b.title ASC
	`, pgx.NamedArgs{"id": id})
}

func (r *BookPostgres) Create(ctx context.Context, book model.Book) (model.Book, error) {
	authorID, err := parseID("authors", book.AuthorID)
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	err = pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		var bookID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO books (title, author_id, summary, isbn)
			VALUES (@title, @author_id, @summary, @isbn)
			RETURNING id
		`, pgx.NamedArgs{
			"title":     book.Title,
			"author_id": authorID,
			"summary":   book.Summary,
			"isbn":      book.ISBN,
		}).Scan(&bookID)
		if err != nil {
			return err
		}

		if err := replaceGenres(ctx, tx, bookID, book.GenreIDs); err != nil {
			return err
		}

		created, err = r.get(ctx, tx, bookID)
		return err
	})
	if err != nil {
		return model.Book{}, queryErr("books", "create book", err)
	}
	return created, nil
}

func (r *BookPostgres) Update(ctx context.Context, book model.Book) (model.Book, error) {
	bookID, err := parseID("books", book.ID)
	if err != nil {
		return model.Book{}, err
	}
	authorID, err := parseID("authors", book.AuthorID)
	if err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	err = pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE books
			SET title = @title,
				author_id = @author_id,
				summary = @summary,
				isbn = @isbn
			WHERE id = @id
		`, pgx.NamedArgs{
			"id":        bookID,
			"title":     book.Title,
			"author_id": authorID,
			"summary":   book.Summary,
			"isbn":      book.ISBN,
		})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		if err := replaceGenres(ctx, tx, bookID, book.GenreIDs); err != nil {
			return err
		}

		updated, err = r.get(ctx, tx, bookID)
		return err
	})
	if err != nil {
		return model.Book{}, queryErr("books", "update book", err)
	}
	return updated, nil
}

func (r *BookPostgres) Delete(ctx context.Context, id string) error {
	bookID, err := parseID("books", id)
	if err != nil {
		return err
	}

	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM books WHERE id = @id`, pgx.NamedArgs{"id": bookID})
	if err != nil {
		return queryErr("books", "delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound("books")
	}
	return nil
}

func (r *BookPostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&n); err != nil {
		return 0, queryErr("books", "count books", err)
	}
	return n, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *BookPostgres) get(ctx context.Context, q querier, id uuid.UUID) (model.Book, error) {
	rows, err := q.Query(ctx, bookSelect+`
		WHERE b.id = @id
		GROUP BY b.id
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Book{}, queryErr("books", "get book", err)
	}

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.Book{}, queryErr("books", "get book", err)
	}
	return book, nil
}

func (r *BookPostgres) collect(ctx context.Context, op, query string, args pgx.NamedArgs) ([]model.Book, error) {
	rows, err := r.server.DB.Pool.Query(ctx, query, args)
	if err != nil {
		return nil, queryErr("books", op, err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, queryErr("books", op, err)
	}
	return books, nil
}

// replaceGenres rewrites the genre set of a book, keeping submission order
// and dropping duplicates.
func replaceGenres(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, genreIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = @id`, pgx.NamedArgs{"id": bookID}); err != nil {
		return err
	}

	ids := parseIDs(genreIDs)
	if len(ids) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO book_genres (book_id, genre_id, position)
		SELECT @book_id, g.genre_id, g.position
		FROM unnest(@genre_ids::uuid[]) WITH ORDINALITY AS g(genre_id, position)
	`, pgx.NamedArgs{"book_id": bookID, "genre_ids": ids})
	return err
}
