package store

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"

	"github.com/jackc/pgx/v5"
)

type AssociationPG struct {
	pgRepo
}

func (r *AssociationPG) ReplaceBookAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	return r.replace(ctx, "book_authors", "author_id", bookID, authorIDs)
}

func (r *AssociationPG) ReplaceBookCategories(ctx context.Context, bookID int64, categoryIDs []int64) error {
	return r.replace(ctx, "book_categories", "category_id", bookID, categoryIDs)
}

// replace swaps a book's join set in one (sub)transaction.
func (r *AssociationPG) replace(ctx context.Context, table, column string, bookID int64, ids []int64) error {
	del := fmt.Sprintf(`DELETE FROM %s WHERE book_id = $1`, table)
	ins := fmt.Sprintf(`
		INSERT INTO %s (book_id, %s)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, table, column)

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		timeoutCtx, cancel := r.withTimeout(ctx)
		defer cancel()
		if _, err := tx.Exec(timeoutCtx, del, bookID); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		_, err := tx.Exec(timeoutCtx, ins, bookID, ids)
		return err
	})
	if err != nil {
		return wrapPG("replace "+table, err)
	}
	return nil
}

func (r *AssociationPG) AuthorsOfBook(ctx context.Context, bookID int64) ([]entity.Author, error) {
	const query = `
		SELECT a.id, a.first_name, a.last_name, a.country_id
		FROM authors a
		JOIN book_authors ba ON ba.author_id = a.id
		WHERE ba.book_id = $1
		ORDER BY a.last_name, a.first_name, a.id`
	return queryAll(ctx, r.pgRepo, scanAuthor, query, bookID)
}

func (r *AssociationPG) CategoriesOfBook(ctx context.Context, bookID int64) ([]entity.Category, error) {
	const query = `
		SELECT c.id, c.name
		FROM categories c
		JOIN book_categories bc ON bc.category_id = c.id
		WHERE bc.book_id = $1
		ORDER BY c.name, c.id`
	return queryAll(ctx, r.pgRepo, func(row pgx.CollectableRow) (entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	}, query, bookID)
}

func (r *AssociationPG) BooksOfAuthor(ctx context.Context, authorID int64) ([]entity.Book, error) {
	const query = `
		SELECT b.id, b.isbn, b.title, b.date_published
		FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		WHERE ba.author_id = $1
		ORDER BY b.title, b.id`
	return queryAll(ctx, r.pgRepo, scanBook, query, authorID)
}

func (r *AssociationPG) BooksOfCategory(ctx context.Context, categoryID int64) ([]entity.Book, error) {
	const query = `
		SELECT b.id, b.isbn, b.title, b.date_published
		FROM books b
		JOIN book_categories bc ON bc.book_id = b.id
		WHERE bc.category_id = $1
		ORDER BY b.title, b.id`
	return queryAll(ctx, r.pgRepo, scanBook, query, categoryID)
}

func (r *AssociationPG) DeleteBookLinks(ctx context.Context, bookID int64) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		timeoutCtx, cancel := r.withTimeout(ctx)
		defer cancel()
		if _, err := tx.Exec(timeoutCtx, `DELETE FROM book_authors WHERE book_id = $1`, bookID); err != nil {
			return err
		}
		_, err := tx.Exec(timeoutCtx, `DELETE FROM book_categories WHERE book_id = $1`, bookID)
		return err
	})
	if err != nil {
		return wrapPG("delete book links", err)
	}
	return nil
}
