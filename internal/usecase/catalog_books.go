package usecase

import (
	"context"

	"bookcatalog/internal/entity"
)

func (s *CatalogService) ListBooks(ctx context.Context) ([]entity.Book, error) {
	return s.repos().Books.List(ctx)
}

func (s *CatalogService) GetBook(ctx context.Context, id int64) (entity.Book, error) {
	return s.repos().Books.Get(ctx, id)
}

func (s *CatalogService) GetBookByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	return s.repos().Books.GetByISBN(ctx, isbn)
}

// BookRating returns the aggregate rating of a book, 0 when it has no
// reviews.
func (s *CatalogService) BookRating(ctx context.Context, id int64) (float64, error) {
	summary, err := s.BookRatingSummary(ctx, id)
	if err != nil {
		return 0, err
	}
	return summary.Average, nil
}

func (s *CatalogService) BookRatingSummary(ctx context.Context, id int64) (RatingSummary, error) {
	repos := s.repos()
	if err := requireExists(ctx, "book", id, repos.Books.Exists); err != nil {
		return RatingSummary{}, err
	}
	return NewRatingAggregator(repos.Reviews).Summary(ctx, id)
}

func (s *CatalogService) AuthorsOfBook(ctx context.Context, bookID int64) ([]entity.Author, error) {
	repos := s.repos()
	if err := requireExists(ctx, "book", bookID, repos.Books.Exists); err != nil {
		return nil, err
	}
	return NewAssociationManager(repos).AuthorsOf(ctx, bookID)
}

func (s *CatalogService) CategoriesOfBook(ctx context.Context, bookID int64) ([]entity.Category, error) {
	repos := s.repos()
	if err := requireExists(ctx, "book", bookID, repos.Books.Exists); err != nil {
		return nil, err
	}
	return NewAssociationManager(repos).CategoriesOf(ctx, bookID)
}

// CreateBook stores the book row, then its author links, then its category
// links.
func (s *CatalogService) CreateBook(ctx context.Context, in BookInput) (entity.Book, error) {
	book := in.Book
	book.ID = 0
	in.Book = book

	err := s.write(ctx, "create book", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).CreateBook(ctx, in)); err != nil {
			return err
		}
		if err := repos.Books.Create(ctx, &book); err != nil {
			return persist("create book row", err)
		}
		links := NewAssociationManager(repos)
		if err := links.AttachAuthors(ctx, book.ID, in.AuthorIDs); err != nil {
			return persist("attach authors", err)
		}
		if err := links.AttachCategories(ctx, book.ID, in.CategoryIDs); err != nil {
			return persist("attach categories", err)
		}
		return nil
	})
	if err != nil {
		return entity.Book{}, err
	}
	return book, nil
}

// UpdateBook rewrites the book row and replaces both of its link sets.
func (s *CatalogService) UpdateBook(ctx context.Context, id int64, in BookInput) (entity.Book, error) {
	book := in.Book
	book.ID = id
	in.Book = book

	err := s.write(ctx, "update book", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).UpdateBook(ctx, id, in)); err != nil {
			return err
		}
		if err := repos.Books.Update(ctx, &book); err != nil {
			return persist("update book row", err)
		}
		links := NewAssociationManager(repos)
		if err := links.AttachAuthors(ctx, id, in.AuthorIDs); err != nil {
			return persist("replace authors", err)
		}
		if err := links.AttachCategories(ctx, id, in.CategoryIDs); err != nil {
			return persist("replace categories", err)
		}
		return nil
	})
	if err != nil {
		return entity.Book{}, err
	}
	return book, nil
}

// DeleteBook removes the book's reviews, then its join rows, then the book.
func (s *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	return s.write(ctx, "delete book", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).DeleteBook(ctx, id)); err != nil {
			return err
		}
		if _, err := repos.Reviews.DeleteByBook(ctx, id); err != nil {
			return persist("delete reviews", err)
		}
		if err := NewAssociationManager(repos).DetachAll(ctx, id); err != nil {
			return persist("detach links", err)
		}
		return persist("delete book row", repos.Books.Delete(ctx, id))
	})
}
