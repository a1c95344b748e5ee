package usecase_test

import (
	"context"
	"testing"

	"bookcatalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingAggregator(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single review", []int{4}, 4},
		{"mean of two", []int{3, 5}, 4},
		{"fractional mean", []int{1, 2}, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			book := f.createBook(t, "978-20", "Thud!")
			for _, r := range tt.ratings {
				f.createReview(t, book.ID, r)
			}

			agg := usecase.NewRatingAggregator(f.store.Repositories().Reviews)
			got, err := agg.RatingOf(context.Background(), book.ID)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)

			rating, err := f.svc.BookRating(context.Background(), book.ID)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, rating, 1e-9)
		})
	}
}

func TestCatalogService_BookRatingSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.createBook(t, "978-21", "Snuff")
	f.createReview(t, book.ID, 3)
	f.createReview(t, book.ID, 5)

	summary, err := f.svc.BookRatingSummary(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, usecase.RatingSummary{BookID: book.ID, Average: 4, Count: 2}, summary)

	_, err = f.svc.BookRating(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
