package usecase

import (
	"context"

	"bookcatalog/internal/entity"
)

// AssociationManager owns the Book↔Author and Book↔Category join sets.
type AssociationManager struct {
	repos Repositories
}

func NewAssociationManager(repos Repositories) *AssociationManager {
	return &AssociationManager{repos: repos}
}

// AttachAuthors replaces the authors of bookID with authorIDs. Repeated ids
// collapse, so attaching the same set twice leaves the same join rows.
func (m *AssociationManager) AttachAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	ids := uniqueIDs(authorIDs)
	vs, err := m.checkLinks(ctx, bookID, ids, m.repos.Authors.Exists, RuleUnknownAuthor, "author_ids", "author")
	if err != nil {
		return err
	}
	if err := vs.Err(); err != nil {
		return err
	}
	return m.repos.Associations.ReplaceBookAuthors(ctx, bookID, ids)
}

// AttachCategories replaces the categories of bookID with categoryIDs.
func (m *AssociationManager) AttachCategories(ctx context.Context, bookID int64, categoryIDs []int64) error {
	ids := uniqueIDs(categoryIDs)
	vs, err := m.checkLinks(ctx, bookID, ids, m.repos.Categories.Exists, RuleUnknownCategory, "category_ids", "category")
	if err != nil {
		return err
	}
	if err := vs.Err(); err != nil {
		return err
	}
	return m.repos.Associations.ReplaceBookCategories(ctx, bookID, ids)
}

func (m *AssociationManager) checkLinks(
	ctx context.Context,
	bookID int64,
	ids []int64,
	exists existsFunc,
	rule Rule,
	field, kind string,
) (Violations, error) {
	var vs Violations
	ok, err := m.repos.Books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		vs.Add(RuleUnknownBook, "book_id", "book %d not found", bookID)
	}
	missing, err := missingIDs(ctx, ids, exists)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		vs.Add(rule, field, "%s %d not found", kind, id)
	}
	return vs, nil
}

func (m *AssociationManager) AuthorsOf(ctx context.Context, bookID int64) ([]entity.Author, error) {
	return m.repos.Associations.AuthorsOfBook(ctx, bookID)
}

func (m *AssociationManager) BooksOfAuthor(ctx context.Context, authorID int64) ([]entity.Book, error) {
	return m.repos.Associations.BooksOfAuthor(ctx, authorID)
}

func (m *AssociationManager) CategoriesOf(ctx context.Context, bookID int64) ([]entity.Category, error) {
	return m.repos.Associations.CategoriesOfBook(ctx, bookID)
}

func (m *AssociationManager) BooksOfCategory(ctx context.Context, categoryID int64) ([]entity.Book, error) {
	return m.repos.Associations.BooksOfCategory(ctx, categoryID)
}

// DetachAll drops every join row of a book. Only book deletion calls it.
func (m *AssociationManager) DetachAll(ctx context.Context, bookID int64) error {
	return m.repos.Associations.DeleteBookLinks(ctx, bookID)
}
