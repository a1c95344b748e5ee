package store

import (
	"context"
	"errors"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	c := entity.Country{Name: "Norway"}
	require.NoError(t, repos.Countries.Create(ctx, &c))
	require.Equal(t, int64(1), c.ID)

	got, err := repos.Countries.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	c.Name = "Sweden"
	require.NoError(t, repos.Countries.Update(ctx, &c))
	got, err = repos.Countries.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sweden", got.Name)

	require.NoError(t, repos.Countries.Delete(ctx, c.ID))
	ok, err := repos.Countries.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repos.Countries.Get(ctx, c.ID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.ErrorIs(t, repos.Countries.Delete(ctx, c.ID), usecase.ErrNotFound)
	assert.ErrorIs(t, repos.Countries.Update(ctx, &c), usecase.ErrNotFound)
}

func TestMemoryStore_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	a := entity.Reviewer{FirstName: "A", LastName: "A"}
	require.NoError(t, repos.Reviewers.Create(ctx, &a))
	require.NoError(t, repos.Reviewers.Delete(ctx, a.ID))

	b := entity.Reviewer{FirstName: "B", LastName: "B"}
	require.NoError(t, repos.Reviewers.Create(ctx, &b))
	assert.Greater(t, b.ID, a.ID)
}

func TestMemoryStore_ListOrder(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	for _, title := range []string{"Zen", "Alpha", "Middle"} {
		b := entity.Book{ISBN: "isbn-" + title, Title: title}
		require.NoError(t, repos.Books.Create(ctx, &b))
	}
	books, err := repos.Books.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"Alpha", "Middle", "Zen"}, []string{books[0].Title, books[1].Title, books[2].Title})

	for _, rating := range []int{5, 1, 3} {
		r := entity.Review{Headline: "h", Rating: rating, BookID: books[0].ID, ReviewerID: 1}
		require.NoError(t, repos.Reviews.Create(ctx, &r))
	}
	reviews, err := repos.Reviews.ListByBook(ctx, books[0].ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{reviews[0].Rating, reviews[1].Rating, reviews[2].Rating})
}

func TestMemoryStore_BookISBN(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	b := entity.Book{ISBN: "978-0", Title: "One"}
	require.NoError(t, repos.Books.Create(ctx, &b))

	got, err := repos.Books.GetByISBN(ctx, "978-0")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = repos.Books.GetByISBN(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	dup, err := repos.Books.IsDuplicateISBN(ctx, 0, "978-0")
	require.NoError(t, err)
	assert.True(t, dup)
	dup, err = repos.Books.IsDuplicateISBN(ctx, b.ID, "978-0")
	require.NoError(t, err)
	assert.False(t, dup)

	other := entity.Book{ISBN: "978-0", Title: "Two"}
	err = repos.Books.Create(ctx, &other)
	assert.ErrorIs(t, err, errDuplicateKey)
	assert.Zero(t, other.ID)
}

func TestMemoryStore_IsDuplicateName(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	c := entity.Category{Name: "Science Fiction"}
	require.NoError(t, repos.Categories.Create(ctx, &c))

	dup, err := repos.Categories.IsDuplicateName(ctx, 0, "  science fiction ")
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = repos.Categories.IsDuplicateName(ctx, c.ID, "SCIENCE FICTION")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestMemoryStore_NormalizedNameIsUnique(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	c := entity.Country{Name: "France"}
	require.NoError(t, repos.Countries.Create(ctx, &c))

	dup := entity.Country{Name: " FRANCE "}
	assert.ErrorIs(t, repos.Countries.Create(ctx, &dup), errDuplicateKey)
	assert.Zero(t, dup.ID)

	other := entity.Country{Name: "Spain"}
	require.NoError(t, repos.Countries.Create(ctx, &other))
	other.Name = "france"
	assert.ErrorIs(t, repos.Countries.Update(ctx, &other), errDuplicateKey)

	cat := entity.Category{Name: "Poetry"}
	require.NoError(t, repos.Categories.Create(ctx, &cat))
	cat.Name = " poetry "
	require.NoError(t, repos.Categories.Update(ctx, &cat))
	again := entity.Category{Name: "POETRY"}
	assert.ErrorIs(t, repos.Categories.Create(ctx, &again), errDuplicateKey)
}

func TestMemoryStore_Associations(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	b := entity.Book{ISBN: "1", Title: "Book"}
	require.NoError(t, repos.Books.Create(ctx, &b))
	a1 := entity.Author{FirstName: "Ann", LastName: "Zed"}
	a2 := entity.Author{FirstName: "Bob", LastName: "Abe"}
	require.NoError(t, repos.Authors.Create(ctx, &a1))
	require.NoError(t, repos.Authors.Create(ctx, &a2))

	require.NoError(t, repos.Associations.ReplaceBookAuthors(ctx, b.ID, []int64{a1.ID, a2.ID, a1.ID}))
	authors, err := repos.Associations.AuthorsOfBook(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, a2.ID, authors[0].ID)

	books, err := repos.Associations.BooksOfAuthor(ctx, a1.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)

	require.NoError(t, repos.Associations.ReplaceBookAuthors(ctx, b.ID, []int64{a2.ID}))
	books, err = repos.Associations.BooksOfAuthor(ctx, a1.ID)
	require.NoError(t, err)
	assert.Empty(t, books)

	require.NoError(t, repos.Associations.DeleteBookLinks(ctx, b.ID))
	authors, err = repos.Associations.AuthorsOfBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestMemoryStore_DeleteReviewsBy(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	for _, r := range []entity.Review{
		{Headline: "a", Rating: 1, BookID: 1, ReviewerID: 1},
		{Headline: "b", Rating: 2, BookID: 1, ReviewerID: 2},
		{Headline: "c", Rating: 3, BookID: 2, ReviewerID: 1},
	} {
		require.NoError(t, repos.Reviews.Create(ctx, &r))
	}

	n, err := repos.Reviews.DeleteByBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repos.Reviews.DeleteByReviewer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := repos.Reviews.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryStore_WithinTx(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, repos usecase.Repositories) error {
		c := entity.Country{Name: "Kept"}
		return repos.Countries.Create(ctx, &c)
	})
	require.NoError(t, err)

	err = s.WithinTx(ctx, func(ctx context.Context, repos usecase.Repositories) error {
		c := entity.Country{Name: "Dropped"}
		if err := repos.Countries.Create(ctx, &c); err != nil {
			return err
		}
		if err := repos.Countries.Delete(ctx, 1); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	countries, err := s.Repositories().Countries.List(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "Kept", countries[0].Name)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repos := NewMemoryStore().Repositories()

	_, err := repos.Books.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	b := entity.Book{ISBN: "1", Title: "t"}
	assert.ErrorIs(t, repos.Books.Create(ctx, &b), context.Canceled)
}
