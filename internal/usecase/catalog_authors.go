package usecase

import (
	"context"

	"bookcatalog/internal/entity"
)

func (s *CatalogService) ListAuthors(ctx context.Context) ([]entity.Author, error) {
	return s.repos().Authors.List(ctx)
}

func (s *CatalogService) GetAuthor(ctx context.Context, id int64) (entity.Author, error) {
	return s.repos().Authors.Get(ctx, id)
}

func (s *CatalogService) BooksOfAuthor(ctx context.Context, authorID int64) ([]entity.Book, error) {
	repos := s.repos()
	if err := requireExists(ctx, "author", authorID, repos.Authors.Exists); err != nil {
		return nil, err
	}
	return NewAssociationManager(repos).BooksOfAuthor(ctx, authorID)
}

func (s *CatalogService) CountryOfAuthor(ctx context.Context, authorID int64) (entity.Country, error) {
	repos := s.repos()
	author, err := repos.Authors.Get(ctx, authorID)
	if err != nil {
		return entity.Country{}, err
	}
	return repos.Countries.Get(ctx, author.CountryID)
}

func (s *CatalogService) AuthorsOfCountry(ctx context.Context, countryID int64) ([]entity.Author, error) {
	repos := s.repos()
	if err := requireExists(ctx, "country", countryID, repos.Countries.Exists); err != nil {
		return nil, err
	}
	return repos.Authors.ListByCountry(ctx, countryID)
}

func (s *CatalogService) CreateAuthor(ctx context.Context, a entity.Author) (entity.Author, error) {
	a.ID = 0
	err := s.write(ctx, "create author", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).CreateAuthor(ctx, a)); err != nil {
			return err
		}
		return persist("create author row", repos.Authors.Create(ctx, &a))
	})
	if err != nil {
		return entity.Author{}, err
	}
	return a, nil
}

func (s *CatalogService) UpdateAuthor(ctx context.Context, id int64, a entity.Author) (entity.Author, error) {
	a.ID = id
	err := s.write(ctx, "update author", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).UpdateAuthor(ctx, id, a)); err != nil {
			return err
		}
		return persist("update author row", repos.Authors.Update(ctx, &a))
	})
	if err != nil {
		return entity.Author{}, err
	}
	return a, nil
}

// DeleteAuthor refuses while any book still lists the author.
func (s *CatalogService) DeleteAuthor(ctx context.Context, id int64) error {
	return s.write(ctx, "delete author", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).DeleteAuthor(ctx, id)); err != nil {
			return err
		}
		return persist("delete author row", repos.Authors.Delete(ctx, id))
	})
}
