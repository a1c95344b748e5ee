package usecase

import (
	"context"

	"bookcatalog/internal/entity"
)

func (s *CatalogService) ListReviewers(ctx context.Context) ([]entity.Reviewer, error) {
	return s.repos().Reviewers.List(ctx)
}

func (s *CatalogService) GetReviewer(ctx context.Context, id int64) (entity.Reviewer, error) {
	return s.repos().Reviewers.Get(ctx, id)
}

func (s *CatalogService) ReviewsByReviewer(ctx context.Context, reviewerID int64) ([]entity.Review, error) {
	repos := s.repos()
	if err := requireExists(ctx, "reviewer", reviewerID, repos.Reviewers.Exists); err != nil {
		return nil, err
	}
	return repos.Reviews.ListByReviewer(ctx, reviewerID)
}

func (s *CatalogService) CreateReviewer(ctx context.Context, r entity.Reviewer) (entity.Reviewer, error) {
	r.ID = 0
	err := s.write(ctx, "create reviewer", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).CreateReviewer(ctx, r)); err != nil {
			return err
		}
		return persist("create reviewer row", repos.Reviewers.Create(ctx, &r))
	})
	if err != nil {
		return entity.Reviewer{}, err
	}
	return r, nil
}

func (s *CatalogService) UpdateReviewer(ctx context.Context, id int64, r entity.Reviewer) (entity.Reviewer, error) {
	r.ID = id
	err := s.write(ctx, "update reviewer", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).UpdateReviewer(ctx, id, r)); err != nil {
			return err
		}
		return persist("update reviewer row", repos.Reviewers.Update(ctx, &r))
	})
	if err != nil {
		return entity.Reviewer{}, err
	}
	return r, nil
}

// DeleteReviewer removes the reviewer's reviews before the reviewer row.
func (s *CatalogService) DeleteReviewer(ctx context.Context, id int64) error {
	return s.write(ctx, "delete reviewer", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).DeleteReviewer(ctx, id)); err != nil {
			return err
		}
		if _, err := repos.Reviews.DeleteByReviewer(ctx, id); err != nil {
			return persist("delete reviews", err)
		}
		return persist("delete reviewer row", repos.Reviewers.Delete(ctx, id))
	})
}

func (s *CatalogService) ListReviews(ctx context.Context) ([]entity.Review, error) {
	return s.repos().Reviews.List(ctx)
}

func (s *CatalogService) GetReview(ctx context.Context, id int64) (entity.Review, error) {
	return s.repos().Reviews.Get(ctx, id)
}

func (s *CatalogService) ReviewsOfBook(ctx context.Context, bookID int64) ([]entity.Review, error) {
	repos := s.repos()
	if err := requireExists(ctx, "book", bookID, repos.Books.Exists); err != nil {
		return nil, err
	}
	return repos.Reviews.ListByBook(ctx, bookID)
}

func (s *CatalogService) BookOfReview(ctx context.Context, reviewID int64) (entity.Book, error) {
	repos := s.repos()
	review, err := repos.Reviews.Get(ctx, reviewID)
	if err != nil {
		return entity.Book{}, err
	}
	return repos.Books.Get(ctx, review.BookID)
}

func (s *CatalogService) ReviewerOfReview(ctx context.Context, reviewID int64) (entity.Reviewer, error) {
	repos := s.repos()
	review, err := repos.Reviews.Get(ctx, reviewID)
	if err != nil {
		return entity.Reviewer{}, err
	}
	return repos.Reviewers.Get(ctx, review.ReviewerID)
}

func (s *CatalogService) CreateReview(ctx context.Context, r entity.Review) (entity.Review, error) {
	r.ID = 0
	err := s.write(ctx, "create review", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).CreateReview(ctx, r)); err != nil {
			return err
		}
		return persist("create review row", repos.Reviews.Create(ctx, &r))
	})
	if err != nil {
		return entity.Review{}, err
	}
	return r, nil
}

func (s *CatalogService) UpdateReview(ctx context.Context, id int64, r entity.Review) (entity.Review, error) {
	r.ID = id
	err := s.write(ctx, "update review", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).UpdateReview(ctx, id, r)); err != nil {
			return err
		}
		return persist("update review row", repos.Reviews.Update(ctx, &r))
	})
	if err != nil {
		return entity.Review{}, err
	}
	return r, nil
}

func (s *CatalogService) DeleteReview(ctx context.Context, id int64) error {
	return s.write(ctx, "delete review", func(ctx context.Context, repos Repositories) error {
		if err := approve(NewIntegrityValidator(repos).DeleteReview(ctx, id)); err != nil {
			return err
		}
		return persist("delete review row", repos.Reviews.Delete(ctx, id))
	})
}
