package usecase

import (
	"context"
	"strings"

	"bookcatalog/internal/entity"
)

// BookInput is a book together with the full author and category sets it
// should be attached to.
type BookInput struct {
	Book        entity.Book
	AuthorIDs   []int64
	CategoryIDs []int64
}

type existsFunc func(ctx context.Context, id int64) (bool, error)

// IntegrityValidator decides whether a command may be applied. It never
// writes. Every check returns the full list of violated rules; a non-nil
// error means the target is missing (ErrNotFound) or the store could not be
// read.
type IntegrityValidator struct {
	repos Repositories
}

func NewIntegrityValidator(repos Repositories) *IntegrityValidator {
	return &IntegrityValidator{repos: repos}
}

func (v *IntegrityValidator) CreateBook(ctx context.Context, in BookInput) (Violations, error) {
	return v.checkBook(ctx, 0, in)
}

func (v *IntegrityValidator) UpdateBook(ctx context.Context, id int64, in BookInput) (Violations, error) {
	if err := requireExists(ctx, "book", id, v.repos.Books.Exists); err != nil {
		return nil, err
	}
	return v.checkBook(ctx, id, in)
}

func (v *IntegrityValidator) checkBook(ctx context.Context, id int64, in BookInput) (Violations, error) {
	var vs Violations
	checkFields(&vs, in.Book)

	if len(in.AuthorIDs) == 0 {
		vs.Add(RuleMissingAuthors, "author_ids", "at least one author is required")
	}
	if len(in.CategoryIDs) == 0 {
		vs.Add(RuleMissingCategories, "category_ids", "at least one category is required")
	}

	if strings.TrimSpace(in.Book.ISBN) != "" {
		dup, err := v.repos.Books.IsDuplicateISBN(ctx, id, in.Book.ISBN)
		if err != nil {
			return nil, err
		}
		if dup {
			vs.Add(RuleDuplicateISBN, "isbn", "isbn %q is already used by another book", in.Book.ISBN)
		}
	}

	missing, err := missingIDs(ctx, in.AuthorIDs, v.repos.Authors.Exists)
	if err != nil {
		return nil, err
	}
	for _, authorID := range missing {
		vs.Add(RuleUnknownAuthor, "author_ids", "author %d not found", authorID)
	}

	missing, err = missingIDs(ctx, in.CategoryIDs, v.repos.Categories.Exists)
	if err != nil {
		return nil, err
	}
	for _, categoryID := range missing {
		vs.Add(RuleUnknownCategory, "category_ids", "category %d not found", categoryID)
	}
	return vs, nil
}

func (v *IntegrityValidator) DeleteBook(ctx context.Context, id int64) (Violations, error) {
	return nil, requireExists(ctx, "book", id, v.repos.Books.Exists)
}

func (v *IntegrityValidator) CreateAuthor(ctx context.Context, a entity.Author) (Violations, error) {
	var vs Violations
	checkFields(&vs, a)

	ok, err := v.repos.Countries.Exists(ctx, a.CountryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		vs.Add(RuleUnknownCountry, "country_id", "country %d not found", a.CountryID)
	}
	return vs, nil
}

func (v *IntegrityValidator) UpdateAuthor(ctx context.Context, id int64, a entity.Author) (Violations, error) {
	if err := requireExists(ctx, "author", id, v.repos.Authors.Exists); err != nil {
		return nil, err
	}
	return v.CreateAuthor(ctx, a)
}

func (v *IntegrityValidator) DeleteAuthor(ctx context.Context, id int64) (Violations, error) {
	author, err := v.repos.Authors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	books, err := v.repos.Associations.BooksOfAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	var vs Violations
	if len(books) > 0 {
		vs.Add(RuleHasDependents, "", "author %s %s can not be deleted because %d book(s) reference it",
			author.FirstName, author.LastName, len(books))
	}
	return vs, nil
}

func (v *IntegrityValidator) CreateCategory(ctx context.Context, c entity.Category) (Violations, error) {
	return v.checkName(ctx, "category", c, c.ID, c.Name, v.repos.Categories.IsDuplicateName)
}

func (v *IntegrityValidator) UpdateCategory(ctx context.Context, id int64, c entity.Category) (Violations, error) {
	if err := requireExists(ctx, "category", id, v.repos.Categories.Exists); err != nil {
		return nil, err
	}
	return v.checkName(ctx, "category", c, id, c.Name, v.repos.Categories.IsDuplicateName)
}

func (v *IntegrityValidator) DeleteCategory(ctx context.Context, id int64) (Violations, error) {
	category, err := v.repos.Categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	books, err := v.repos.Associations.BooksOfCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	var vs Violations
	if len(books) > 0 {
		vs.Add(RuleHasDependents, "", "category %s can not be deleted because %d book(s) reference it",
			category.Name, len(books))
	}
	return vs, nil
}

func (v *IntegrityValidator) CreateCountry(ctx context.Context, c entity.Country) (Violations, error) {
	return v.checkName(ctx, "country", c, c.ID, c.Name, v.repos.Countries.IsDuplicateName)
}

func (v *IntegrityValidator) UpdateCountry(ctx context.Context, id int64, c entity.Country) (Violations, error) {
	if err := requireExists(ctx, "country", id, v.repos.Countries.Exists); err != nil {
		return nil, err
	}
	return v.checkName(ctx, "country", c, id, c.Name, v.repos.Countries.IsDuplicateName)
}

func (v *IntegrityValidator) DeleteCountry(ctx context.Context, id int64) (Violations, error) {
	country, err := v.repos.Countries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	authors, err := v.repos.Authors.ListByCountry(ctx, id)
	if err != nil {
		return nil, err
	}
	var vs Violations
	if len(authors) > 0 {
		vs.Add(RuleHasDependents, "", "country %s can not be deleted because %d author(s) reference it",
			country.Name, len(authors))
	}
	return vs, nil
}

func (v *IntegrityValidator) checkName(
	ctx context.Context,
	kind string,
	s any,
	id int64,
	name string,
	isDuplicate func(ctx context.Context, id int64, name string) (bool, error),
) (Violations, error) {
	var vs Violations
	checkFields(&vs, s)
	if strings.TrimSpace(name) == "" {
		return vs, nil
	}
	dup, err := isDuplicate(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if dup {
		vs.Add(RuleDuplicateName, "name", "%s %s already exists", kind, strings.TrimSpace(name))
	}
	return vs, nil
}

func (v *IntegrityValidator) CreateReviewer(_ context.Context, r entity.Reviewer) (Violations, error) {
	var vs Violations
	checkFields(&vs, r)
	return vs, nil
}

func (v *IntegrityValidator) UpdateReviewer(ctx context.Context, id int64, r entity.Reviewer) (Violations, error) {
	if err := requireExists(ctx, "reviewer", id, v.repos.Reviewers.Exists); err != nil {
		return nil, err
	}
	return v.CreateReviewer(ctx, r)
}

func (v *IntegrityValidator) DeleteReviewer(ctx context.Context, id int64) (Violations, error) {
	return nil, requireExists(ctx, "reviewer", id, v.repos.Reviewers.Exists)
}

func (v *IntegrityValidator) CreateReview(ctx context.Context, r entity.Review) (Violations, error) {
	var vs Violations
	checkFields(&vs, r)

	ok, err := v.repos.Books.Exists(ctx, r.BookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		vs.Add(RuleUnknownBook, "book_id", "book %d not found", r.BookID)
	}

	ok, err = v.repos.Reviewers.Exists(ctx, r.ReviewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		vs.Add(RuleUnknownReviewer, "reviewer_id", "reviewer %d not found", r.ReviewerID)
	}
	return vs, nil
}

func (v *IntegrityValidator) UpdateReview(ctx context.Context, id int64, r entity.Review) (Violations, error) {
	if err := requireExists(ctx, "review", id, v.repos.Reviews.Exists); err != nil {
		return nil, err
	}
	return v.CreateReview(ctx, r)
}

func (v *IntegrityValidator) DeleteReview(ctx context.Context, id int64) (Violations, error) {
	return nil, requireExists(ctx, "review", id, v.repos.Reviews.Exists)
}

func requireExists(ctx context.Context, kind string, id int64, exists existsFunc) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(kind, id)
	}
	return nil
}

// missingIDs returns, in first-seen order and without repeats, the ids
// that do not resolve to a live row.
func missingIDs(ctx context.Context, ids []int64, exists existsFunc) ([]int64, error) {
	var missing []int64
	for _, id := range uniqueIDs(ids) {
		ok, err := exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
