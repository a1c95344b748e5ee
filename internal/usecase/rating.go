package usecase

import (
	"context"

	"bookcatalog/internal/entity"
)

// RatingSummary is the aggregate rating of one book.
type RatingSummary struct {
	BookID  int64   `json:"book_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type RatingAggregator struct {
	reviews ReviewRepository
}

func NewRatingAggregator(reviews ReviewRepository) *RatingAggregator {
	return &RatingAggregator{reviews: reviews}
}

// RatingOf returns the mean rating of a book's reviews, or 0 when the book
// has none.
func (a *RatingAggregator) RatingOf(ctx context.Context, bookID int64) (float64, error) {
	s, err := a.Summary(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return s.Average, nil
}

func (a *RatingAggregator) Summary(ctx context.Context, bookID int64) (RatingSummary, error) {
	reviews, err := a.reviews.ListByBook(ctx, bookID)
	if err != nil {
		return RatingSummary{}, err
	}
	return RatingSummary{
		BookID:  bookID,
		Average: averageRating(reviews),
		Count:   len(reviews),
	}, nil
}

func averageRating(reviews []entity.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
