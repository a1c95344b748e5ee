package usecase

import (
	"context"
	"strings"

	"bookcatalog/internal/entity"
)

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.repos().Categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (entity.Category, error) {
	return s.repos().Categories.Get(ctx, id)
}

func (s *CatalogService) BooksOfCategory(ctx context.Context, categoryID int64) ([]entity.Book, error) {
	repos := s.repos()
	if err := requireExists(ctx, "category", categoryID, repos.Categories.Exists); err != nil {
		return nil, err
	}
	return NewAssociationManager(repos).BooksOfCategory(ctx, categoryID)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c entity.Category) (entity.Category, error) {
	c.ID = 0
	c.Name = strings.TrimSpace(c.Name)
	err := s.write(ctx, "create category", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).CreateCategory(ctx, c)); err != nil {
			return err
		}
		return persist("create category row", repos.Categories.Create(ctx, &c))
	})
	if err != nil {
		return entity.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, c entity.Category) (entity.Category, error) {
	c.ID = id
	c.Name = strings.TrimSpace(c.Name)
	err := s.write(ctx, "update category", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).UpdateCategory(ctx, id, c)); err != nil {
			return err
		}
		return persist("update category row", repos.Categories.Update(ctx, &c))
	})
	if err != nil {
		return entity.Category{}, err
	}
	return c, nil
}

// DeleteCategory refuses while any book is still filed under the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.write(ctx, "delete category", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).DeleteCategory(ctx, id)); err != nil {
			return err
		}
		return persist("delete category row", repos.Categories.Delete(ctx, id))
	})
}

func (s *CatalogService) ListCountries(ctx context.Context) ([]entity.Country, error) {
	return s.repos().Countries.List(ctx)
}

func (s *CatalogService) GetCountry(ctx context.Context, id int64) (entity.Country, error) {
	return s.repos().Countries.Get(ctx, id)
}

func (s *CatalogService) CreateCountry(ctx context.Context, c entity.Country) (entity.Country, error) {
	c.ID = 0
	c.Name = strings.TrimSpace(c.Name)
	err := s.write(ctx, "create country", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).CreateCountry(ctx, c)); err != nil {
			return err
		}
		return persist("create country row", repos.Countries.Create(ctx, &c))
	})
	if err != nil {
		return entity.Country{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCountry(ctx context.Context, id int64, c entity.Country) (entity.Country, error) {
	c.ID = id
	c.Name = strings.TrimSpace(c.Name)
	err := s.write(ctx, "update country", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).UpdateCountry(ctx, id, c)); err != nil {
			return err
		}
		return persist("update country row", repos.Countries.Update(ctx, &c))
	})
	if err != nil {
		return entity.Country{}, err
	}
	return c, nil
}

// DeleteCountry refuses while any author still belongs to the country.
func (s *CatalogService) DeleteCountry(ctx context.Context, id int64) error {
	return s.write(ctx, "delete country", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).DeleteCountry(ctx, id)); err != nil {
			return err
		}
		return persist("delete country row", repos.Countries.Delete(ctx, id))
	})
}
