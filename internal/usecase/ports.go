package usecase

//go:generate mockgen -destination=../store/mocks/repositories.go -package=mocks bookcatalog/internal/usecase BookRepository,AuthorRepository,CategoryRepository,CountryRepository,ReviewerRepository,ReviewRepository,AssociationRepository

import (
	"context"

	"bookcatalog/internal/entity"
)

// EntityStore is the persistence contract shared by every catalog entity.
// Writes touch a single row and never enforce cross-entity rules; Get,
// Update and Delete report a missing row with ErrNotFound.
type EntityStore[T any] interface {
	Get(ctx context.Context, id int64) (T, error)
	List(ctx context.Context) ([]T, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
}

type BookRepository interface {
	EntityStore[entity.Book]
	GetByISBN(ctx context.Context, isbn string) (entity.Book, error)
	// IsDuplicateISBN reports whether a book other than bookID owns isbn.
	IsDuplicateISBN(ctx context.Context, bookID int64, isbn string) (bool, error)
}

type AuthorRepository interface {
	EntityStore[entity.Author]
	ListByCountry(ctx context.Context, countryID int64) ([]entity.Author, error)
}

type CategoryRepository interface {
	EntityStore[entity.Category]
	// IsDuplicateName reports whether a category other than id carries
	// name under entity.NormalizeName.
	IsDuplicateName(ctx context.Context, id int64, name string) (bool, error)
}

type CountryRepository interface {
	EntityStore[entity.Country]
	IsDuplicateName(ctx context.Context, id int64, name string) (bool, error)
}

type ReviewerRepository interface {
	EntityStore[entity.Reviewer]
}

type ReviewRepository interface {
	EntityStore[entity.Review]
	ListByBook(ctx context.Context, bookID int64) ([]entity.Review, error)
	ListByReviewer(ctx context.Context, reviewerID int64) ([]entity.Review, error)
	DeleteByBook(ctx context.Context, bookID int64) (int, error)
	DeleteByReviewer(ctx context.Context, reviewerID int64) (int, error)
}

// AssociationRepository stores the Book↔Author and Book↔Category join rows.
// Replace calls swap the whole set for a book; duplicate ids collapse.
type AssociationRepository interface {
	ReplaceBookAuthors(ctx context.Context, bookID int64, authorIDs []int64) error
	ReplaceBookCategories(ctx context.Context, bookID int64, categoryIDs []int64) error
	AuthorsOfBook(ctx context.Context, bookID int64) ([]entity.Author, error)
	BooksOfAuthor(ctx context.Context, authorID int64) ([]entity.Book, error)
	CategoriesOfBook(ctx context.Context, bookID int64) ([]entity.Category, error)
	BooksOfCategory(ctx context.Context, categoryID int64) ([]entity.Book, error)
	DeleteBookLinks(ctx context.Context, bookID int64) error
}

// Repositories is the set of stores one use case runs against.
type Repositories struct {
	Books        BookRepository
	Authors      AuthorRepository
	Categories   CategoryRepository
	Countries    CountryRepository
	Reviewers    ReviewerRepository
	Reviews      ReviewRepository
	Associations AssociationRepository
}

// Store hands out repositories, either bound directly to the backing
// storage or to a transaction that commits only when fn returns nil.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
