package usecase_test

import (
	"bytes"
	"context"
	"log"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/store"
	"bookcatalog/internal/usecase"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *usecase.CatalogService
	store    *store.MemoryStore
	logs     *bytes.Buffer
	country  entity.Country
	author   entity.Author
	category entity.Category
	reviewer entity.Reviewer
}

func newFixture(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	return newFixtureOn(t, s, s, opts...)
}

// newFixtureOn seeds through seedStore and serves through svcStore, which
// may wrap seedStore.
func newFixtureOn(t *testing.T, seedStore *store.MemoryStore, svcStore usecase.Store, opts ...usecase.Option) *fixture {
	t.Helper()
	ctx := context.Background()
	logs := &bytes.Buffer{}
	opts = append([]usecase.Option{usecase.WithLogger(log.New(logs, "", 0))}, opts...)

	seed := usecase.NewCatalogService(seedStore)
	f := &fixture{
		svc:   usecase.NewCatalogService(svcStore, opts...),
		store: seedStore,
		logs:  logs,
	}

	var err error
	f.country, err = seed.CreateCountry(ctx, entity.Country{Name: "United Kingdom"})
	require.NoError(t, err)
	f.author, err = seed.CreateAuthor(ctx, entity.Author{FirstName: "Terry", LastName: "Pratchett", CountryID: f.country.ID})
	require.NoError(t, err)
	f.category, err = seed.CreateCategory(ctx, entity.Category{Name: "Fantasy"})
	require.NoError(t, err)
	f.reviewer, err = seed.CreateReviewer(ctx, entity.Reviewer{FirstName: "Ada", LastName: "Critic"})
	require.NoError(t, err)
	return f
}

func (f *fixture) bookInput(isbn, title string) usecase.BookInput {
	return usecase.BookInput{
		Book:        entity.Book{ISBN: isbn, Title: title},
		AuthorIDs:   []int64{f.author.ID},
		CategoryIDs: []int64{f.category.ID},
	}
}

func (f *fixture) createBook(t *testing.T, isbn, title string) entity.Book {
	t.Helper()
	b, err := f.svc.CreateBook(context.Background(), f.bookInput(isbn, title))
	require.NoError(t, err)
	return b
}

func (f *fixture) createReview(t *testing.T, bookID int64, rating int) entity.Review {
	t.Helper()
	r, err := f.svc.CreateReview(context.Background(), entity.Review{
		Headline:   "Review",
		Rating:     rating,
		BookID:     bookID,
		ReviewerID: f.reviewer.ID,
	})
	require.NoError(t, err)
	return r
}

func violations(t *testing.T, err error) usecase.Violations {
	t.Helper()
	var conflict *usecase.ConflictError
	require.ErrorAs(t, err, &conflict)
	return conflict.Violations
}
