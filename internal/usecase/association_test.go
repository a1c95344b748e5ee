package usecase_test

import (
	"context"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociationManager_AttachIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.createBook(t, "978-10", "Hogfather")
	m := usecase.NewAssociationManager(f.store.Repositories())

	second, err := f.svc.CreateAuthor(ctx, entity.Author{FirstName: "Neil", LastName: "Gaiman", CountryID: f.country.ID})
	require.NoError(t, err)

	ids := []int64{f.author.ID, second.ID, f.author.ID}
	require.NoError(t, m.AttachAuthors(ctx, book.ID, ids))
	first, err := m.AuthorsOf(ctx, book.ID)
	require.NoError(t, err)

	require.NoError(t, m.AttachAuthors(ctx, book.ID, ids))
	again, err := m.AuthorsOf(ctx, book.ID)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Equal(t, first, again)
}

func TestAssociationManager_AttachReplacesSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.createBook(t, "978-11", "Jingo")
	m := usecase.NewAssociationManager(f.store.Repositories())

	satire, err := f.svc.CreateCategory(ctx, entity.Category{Name: "Satire"})
	require.NoError(t, err)

	require.NoError(t, m.AttachCategories(ctx, book.ID, []int64{satire.ID}))
	cats, err := m.CategoriesOf(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Satire", cats[0].Name)

	books, err := m.BooksOfCategory(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAssociationManager_AttachRejectsUnknownIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.createBook(t, "978-12", "Eric")
	m := usecase.NewAssociationManager(f.store.Repositories())

	err := m.AttachAuthors(ctx, book.ID, []int64{f.author.ID, 77, 78})
	require.ErrorIs(t, err, usecase.ErrConflict)
	vs := violations(t, err)
	assert.Len(t, vs, 2)
	assert.True(t, vs.Has(usecase.RuleUnknownAuthor))

	err = m.AttachCategories(ctx, 9999, []int64{f.category.ID})
	assert.True(t, violations(t, err).Has(usecase.RuleUnknownBook))

	authors, err := m.AuthorsOf(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, f.author.ID, authors[0].ID)
}
