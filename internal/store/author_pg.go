package store

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
)

type AuthorPG struct {
	pgRepo
}

func scanAuthor(row pgx.CollectableRow) (entity.Author, error) {
	var a entity.Author
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CountryID)
	return a, err
}

func (r *AuthorPG) Get(ctx context.Context, id int64) (entity.Author, error) {
	const query = `SELECT id, first_name, last_name, country_id FROM authors WHERE id = $1`
	return queryOne(ctx, r.pgRepo, fmt.Errorf("author %d: %w", id, usecase.ErrNotFound), scanAuthor, query, id)
}

func (r *AuthorPG) List(ctx context.Context) ([]entity.Author, error) {
	const query = `
		SELECT id, first_name, last_name, country_id
		FROM authors
		ORDER BY last_name, first_name, id`
	return queryAll(ctx, r.pgRepo, scanAuthor, query)
}

func (r *AuthorPG) ListByCountry(ctx context.Context, countryID int64) ([]entity.Author, error) {
	const query = `
		SELECT id, first_name, last_name, country_id
		FROM authors
		WHERE country_id = $1
		ORDER BY last_name, first_name, id`
	return queryAll(ctx, r.pgRepo, scanAuthor, query, countryID)
}

func (r *AuthorPG) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id)
}

func (r *AuthorPG) Create(ctx context.Context, a *entity.Author) error {
	const query = `
		INSERT INTO authors (first_name, last_name, country_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, a.FirstName, a.LastName, a.CountryID).Scan(&a.ID); err != nil {
		return wrapPG("insert author", err)
	}
	return nil
}

func (r *AuthorPG) Update(ctx context.Context, a *entity.Author) error {
	const query = `
		UPDATE authors SET first_name = $2, last_name = $3, country_id = $4
		WHERE id = $1`
	return r.execOne(ctx, "update author", "author", a.ID, query, a.ID, a.FirstName, a.LastName, a.CountryID)
}

func (r *AuthorPG) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete author", "author", id, `DELETE FROM authors WHERE id = $1`, id)
}
