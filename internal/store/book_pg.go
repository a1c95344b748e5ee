package store

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
)

type BookPG struct {
	pgRepo
}

const bookColumns = `id, isbn, title, date_published`

func scanBook(row pgx.CollectableRow) (entity.Book, error) {
	var b entity.Book
	err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.DatePublished)
	return b, err
}

func (r *BookPG) Get(ctx context.Context, id int64) (entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return queryOne(ctx, r.pgRepo, fmt.Errorf("book %d: %w", id, usecase.ErrNotFound), scanBook, query, id)
}

func (r *BookPG) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 LIMIT 1`
	return queryOne(ctx, r.pgRepo, fmt.Errorf("book isbn %q: %w", isbn, usecase.ErrNotFound), scanBook, query, isbn)
}

func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY title, id`
	return queryAll(ctx, r.pgRepo, scanBook, query)
}

func (r *BookPG) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id)
}

func (r *BookPG) IsDuplicateISBN(ctx context.Context, bookID int64, isbn string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var dup bool
	if err := r.db.QueryRow(timeoutCtx, query, isbn, bookID).Scan(&dup); err != nil {
		return false, err
	}
	return dup, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
		INSERT INTO books (isbn, title, date_published)
		VALUES ($1, $2, $3)
		RETURNING id`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, b.ISBN, b.Title, b.DatePublished).Scan(&b.ID); err != nil {
		return wrapPG("insert book", err)
	}
	return nil
}

func (r *BookPG) Update(ctx context.Context, b *entity.Book) error {
	const query = `
		UPDATE books SET isbn = $2, title = $3, date_published = $4
		WHERE id = $1`
	return r.execOne(ctx, "update book", "book", b.ID, query, b.ID, b.ISBN, b.Title, b.DatePublished)
}

func (r *BookPG) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete book", "book", id, `DELETE FROM books WHERE id = $1`, id)
}
