package store

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
)

type ReviewerPG struct {
	pgRepo
}

func scanReviewer(row pgx.CollectableRow) (entity.Reviewer, error) {
	var r entity.Reviewer
	err := row.Scan(&r.ID, &r.FirstName, &r.LastName)
	return r, err
}

func (r *ReviewerPG) Get(ctx context.Context, id int64) (entity.Reviewer, error) {
	const query = `SELECT id, first_name, last_name FROM reviewers WHERE id = $1`
	return queryOne(ctx, r.pgRepo, fmt.Errorf("reviewer %d: %w", id, usecase.ErrNotFound), scanReviewer, query, id)
}

func (r *ReviewerPG) List(ctx context.Context) ([]entity.Reviewer, error) {
	const query = `SELECT id, first_name, last_name FROM reviewers ORDER BY last_name, first_name, id`
	return queryAll(ctx, r.pgRepo, scanReviewer, query)
}

func (r *ReviewerPG) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM reviewers WHERE id = $1)`, id)
}

func (r *ReviewerPG) Create(ctx context.Context, v *entity.Reviewer) error {
	const query = `INSERT INTO reviewers (first_name, last_name) VALUES ($1, $2) RETURNING id`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, v.FirstName, v.LastName).Scan(&v.ID); err != nil {
		return wrapPG("insert reviewer", err)
	}
	return nil
}

func (r *ReviewerPG) Update(ctx context.Context, v *entity.Reviewer) error {
	const query = `UPDATE reviewers SET first_name = $2, last_name = $3 WHERE id = $1`
	return r.execOne(ctx, "update reviewer", "reviewer", v.ID, query, v.ID, v.FirstName, v.LastName)
}

func (r *ReviewerPG) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete reviewer", "reviewer", id, `DELETE FROM reviewers WHERE id = $1`, id)
}

type ReviewPG struct {
	pgRepo
}

const reviewColumns = `id, headline, review_text, rating, book_id, reviewer_id`

func scanReview(row pgx.CollectableRow) (entity.Review, error) {
	var v entity.Review
	err := row.Scan(&v.ID, &v.Headline, &v.ReviewText, &v.Rating, &v.BookID, &v.ReviewerID)
	return v, err
}

func (r *ReviewPG) Get(ctx context.Context, id int64) (entity.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return queryOne(ctx, r.pgRepo, fmt.Errorf("review %d: %w", id, usecase.ErrNotFound), scanReview, query, id)
}

func (r *ReviewPG) List(ctx context.Context) ([]entity.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY rating, id`
	return queryAll(ctx, r.pgRepo, scanReview, query)
}

func (r *ReviewPG) ListByBook(ctx context.Context, bookID int64) ([]entity.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE book_id = $1 ORDER BY rating, id`
	return queryAll(ctx, r.pgRepo, scanReview, query, bookID)
}

func (r *ReviewPG) ListByReviewer(ctx context.Context, reviewerID int64) ([]entity.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE reviewer_id = $1 ORDER BY rating, id`
	return queryAll(ctx, r.pgRepo, scanReview, query, reviewerID)
}

func (r *ReviewPG) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE id = $1)`, id)
}

func (r *ReviewPG) Create(ctx context.Context, v *entity.Review) error {
	const query = `
		INSERT INTO reviews (headline, review_text, rating, book_id, reviewer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, v.Headline, v.ReviewText, v.Rating, v.BookID, v.ReviewerID).Scan(&v.ID)
	if err != nil {
		return wrapPG("insert review", err)
	}
	return nil
}

func (r *ReviewPG) Update(ctx context.Context, v *entity.Review) error {
	const query = `
		UPDATE reviews
		SET headline = $2, review_text = $3, rating = $4, book_id = $5, reviewer_id = $6
		WHERE id = $1`
	return r.execOne(ctx, "update review", "review", v.ID, query,
		v.ID, v.Headline, v.ReviewText, v.Rating, v.BookID, v.ReviewerID)
}

func (r *ReviewPG) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete review", "review", id, `DELETE FROM reviews WHERE id = $1`, id)
}

func (r *ReviewPG) DeleteByBook(ctx context.Context, bookID int64) (int, error) {
	return r.count(ctx, "delete reviews of book", `DELETE FROM reviews WHERE book_id = $1`, bookID)
}

func (r *ReviewPG) DeleteByReviewer(ctx context.Context, reviewerID int64) (int, error) {
	return r.count(ctx, "delete reviews of reviewer", `DELETE FROM reviews WHERE reviewer_id = $1`, reviewerID)
}
