package usecase_test

import (
	"context"
	"errors"
	"testing"

	"bookcatalog/internal/store"
	"bookcatalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// faultyLinks fails selected join writes and delegates everything else.
type faultyLinks struct {
	usecase.AssociationRepository
	failCategories bool
	failDetach     bool
}

func (l faultyLinks) ReplaceBookCategories(ctx context.Context, bookID int64, ids []int64) error {
	if l.failCategories {
		return errDiskFull
	}
	return l.AssociationRepository.ReplaceBookCategories(ctx, bookID, ids)
}

func (l faultyLinks) DeleteBookLinks(ctx context.Context, bookID int64) error {
	if l.failDetach {
		return errDiskFull
	}
	return l.AssociationRepository.DeleteBookLinks(ctx, bookID)
}

// faultyStore wraps a MemoryStore so that join writes can be made to fail.
type faultyStore struct {
	inner          *store.MemoryStore
	failCategories bool
	failDetach     bool
}

func (s *faultyStore) wrap(repos usecase.Repositories) usecase.Repositories {
	repos.Associations = faultyLinks{
		AssociationRepository: repos.Associations,
		failCategories:        s.failCategories,
		failDetach:            s.failDetach,
	}
	return repos
}

func (s *faultyStore) Repositories() usecase.Repositories {
	return s.wrap(s.inner.Repositories())
}

func (s *faultyStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	return s.inner.WithinTx(ctx, func(ctx context.Context, repos usecase.Repositories) error {
		return fn(ctx, s.wrap(repos))
	})
}

func TestCatalogService_CreateBookPartialFailure(t *testing.T) {
	tests := []struct {
		name       string
		atomic     bool
		wantRemain bool
	}{
		{"non-atomic keeps book row", false, true},
		{"atomic rolls back", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := store.NewMemoryStore()
			faulty := &faultyStore{inner: mem}
			f := newFixtureOn(t, mem, faulty, usecase.WithAtomicWrites(tt.atomic))
			faulty.failCategories = true

			_, err := f.svc.CreateBook(ctx, f.bookInput("978-70", "Night Watch"))
			require.ErrorIs(t, err, usecase.ErrPersistence)
			assert.ErrorIs(t, err, errDiskFull)

			var perr *usecase.PersistenceError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "attach categories", perr.Op)
			assert.Contains(t, f.logs.String(), `op="create book"`)

			_, err = mem.Repositories().Books.GetByISBN(ctx, "978-70")
			if tt.wantRemain {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, usecase.ErrNotFound)
			}
		})
	}
}

func TestCatalogService_DeleteBookPartialFailure(t *testing.T) {
	tests := []struct {
		name        string
		atomic      bool
		wantReviews int
	}{
		{"non-atomic loses reviews", false, 0},
		{"atomic keeps reviews", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := store.NewMemoryStore()
			faulty := &faultyStore{inner: mem}
			f := newFixtureOn(t, mem, faulty, usecase.WithAtomicWrites(tt.atomic))
			book := f.createBook(t, "978-80", "Feet of Clay")
			f.createReview(t, book.ID, 1)
			f.createReview(t, book.ID, 5)
			faulty.failDetach = true

			err := f.svc.DeleteBook(ctx, book.ID)
			require.ErrorIs(t, err, usecase.ErrPersistence)

			repos := mem.Repositories()
			ok, err := repos.Books.Exists(ctx, book.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			reviews, err := repos.Reviews.ListByBook(ctx, book.ID)
			require.NoError(t, err)
			assert.Len(t, reviews, tt.wantReviews)
		})
	}
}

func TestCatalogService_AtomicWritesOption(t *testing.T) {
	assert.False(t, usecase.NewCatalogService(store.NewMemoryStore()).AtomicWrites())
	assert.True(t, usecase.NewCatalogService(store.NewMemoryStore(), usecase.WithAtomicWrites(true)).AtomicWrites())
}
