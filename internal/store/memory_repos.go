package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"
)

var errDuplicateKey = errors.New("duplicate key")

func bookOrder(a, b entity.Book) int {
	return cmp.Or(strings.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
}

func authorOrder(a, b entity.Author) int {
	return cmp.Or(
		strings.Compare(a.LastName, b.LastName),
		strings.Compare(a.FirstName, b.FirstName),
		cmp.Compare(a.ID, b.ID),
	)
}

func categoryOrder(a, b entity.Category) int {
	return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}

func countryOrder(a, b entity.Country) int {
	return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}

func reviewerOrder(a, b entity.Reviewer) int {
	return cmp.Or(
		strings.Compare(a.LastName, b.LastName),
		strings.Compare(a.FirstName, b.FirstName),
		cmp.Compare(a.ID, b.ID),
	)
}

func reviewOrder(a, b entity.Review) int {
	return cmp.Or(cmp.Compare(a.Rating, b.Rating), cmp.Compare(a.ID, b.ID))
}

func newBookTable(s *MemoryStore) memTable[entity.Book] {
	return memTable[entity.Book]{
		s:     s,
		kind:  "book",
		pick:  func(d *memData) *table[entity.Book] { return d.books },
		idOf:  func(b *entity.Book) *int64 { return &b.ID },
		order: bookOrder,
		check: func(d *memData, b entity.Book) error {
			for id, other := range d.books.rows {
				if id != b.ID && other.ISBN == b.ISBN {
					return fmt.Errorf("isbn %q: %w", b.ISBN, errDuplicateKey)
				}
			}
			return nil
		},
	}
}

func newAuthorTable(s *MemoryStore) memTable[entity.Author] {
	return memTable[entity.Author]{
		s:     s,
		kind:  "author",
		pick:  func(d *memData) *table[entity.Author] { return d.authors },
		idOf:  func(a *entity.Author) *int64 { return &a.ID },
		order: authorOrder,
	}
}

func newCategoryTable(s *MemoryStore) memTable[entity.Category] {
	return memTable[entity.Category]{
		s:     s,
		kind:  "category",
		pick:  func(d *memData) *table[entity.Category] { return d.categories },
		idOf:  func(c *entity.Category) *int64 { return &c.ID },
		order: categoryOrder,
		check: func(d *memData, c entity.Category) error {
			return uniqueName(d.categories, c.ID, c.Name, func(o entity.Category) string { return o.Name })
		},
	}
}

func newCountryTable(s *MemoryStore) memTable[entity.Country] {
	return memTable[entity.Country]{
		s:     s,
		kind:  "country",
		pick:  func(d *memData) *table[entity.Country] { return d.countries },
		idOf:  func(c *entity.Country) *int64 { return &c.ID },
		order: countryOrder,
		check: func(d *memData, c entity.Country) error {
			return uniqueName(d.countries, c.ID, c.Name, func(o entity.Country) string { return o.Name })
		},
	}
}

// uniqueName mirrors the normalized-name unique index of the SQL schema.
func uniqueName[T any](t *table[T], id int64, name string, nameOf func(T) string) error {
	key := entity.NormalizeName(name)
	for otherID, other := range t.rows {
		if otherID != id && entity.NormalizeName(nameOf(other)) == key {
			return fmt.Errorf("name %q: %w", name, errDuplicateKey)
		}
	}
	return nil
}

func newReviewerTable(s *MemoryStore) memTable[entity.Reviewer] {
	return memTable[entity.Reviewer]{
		s:     s,
		kind:  "reviewer",
		pick:  func(d *memData) *table[entity.Reviewer] { return d.reviewers },
		idOf:  func(r *entity.Reviewer) *int64 { return &r.ID },
		order: reviewerOrder,
	}
}

func newReviewTable(s *MemoryStore) memTable[entity.Review] {
	return memTable[entity.Review]{
		s:     s,
		kind:  "review",
		pick:  func(d *memData) *table[entity.Review] { return d.reviews },
		idOf:  func(r *entity.Review) *int64 { return &r.ID },
		order: reviewOrder,
	}
}

type memBooks struct {
	memTable[entity.Book]
}

func (r *memBooks) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	if err := ctx.Err(); err != nil {
		return entity.Book{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.data.books.rows {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return entity.Book{}, fmt.Errorf("book isbn %q: %w", isbn, usecase.ErrNotFound)
}

func (r *memBooks) IsDuplicateISBN(ctx context.Context, bookID int64, isbn string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, b := range r.s.data.books.rows {
		if id != bookID && b.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

type memAuthors struct {
	memTable[entity.Author]
}

func (r *memAuthors) ListByCountry(ctx context.Context, countryID int64) ([]entity.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(func(a entity.Author) bool { return a.CountryID == countryID }), nil
}

type memCategories struct {
	memTable[entity.Category]
}

func (r *memCategories) IsDuplicateName(ctx context.Context, id int64, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for otherID, c := range r.s.data.categories.rows {
		if otherID != id && entity.SameName(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

type memCountries struct {
	memTable[entity.Country]
}

func (r *memCountries) IsDuplicateName(ctx context.Context, id int64, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for otherID, c := range r.s.data.countries.rows {
		if otherID != id && entity.SameName(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

type memReviewers struct {
	memTable[entity.Reviewer]
}

type memReviews struct {
	memTable[entity.Review]
}

func (r *memReviews) ListByBook(ctx context.Context, bookID int64) ([]entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(func(v entity.Review) bool { return v.BookID == bookID }), nil
}

func (r *memReviews) ListByReviewer(ctx context.Context, reviewerID int64) ([]entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(func(v entity.Review) bool { return v.ReviewerID == reviewerID }), nil
}

func (r *memReviews) DeleteByBook(ctx context.Context, bookID int64) (int, error) {
	return r.deleteWhere(ctx, func(v entity.Review) bool { return v.BookID == bookID })
}

func (r *memReviews) DeleteByReviewer(ctx context.Context, reviewerID int64) (int, error) {
	return r.deleteWhere(ctx, func(v entity.Review) bool { return v.ReviewerID == reviewerID })
}

func (r *memReviews) deleteWhere(ctx context.Context, match func(entity.Review) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, v := range r.s.data.reviews.rows {
		if match(v) {
			delete(r.s.data.reviews.rows, id)
			n++
		}
	}
	return n, nil
}

type memAssociations struct {
	s *MemoryStore
}

func (r *memAssociations) ReplaceBookAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	return r.replace(ctx, func(d *memData) links { return d.bookAuthors }, bookID, authorIDs)
}

func (r *memAssociations) ReplaceBookCategories(ctx context.Context, bookID int64, categoryIDs []int64) error {
	return r.replace(ctx, func(d *memData) links { return d.bookCategories }, bookID, categoryIDs)
}

func (r *memAssociations) replace(ctx context.Context, pick func(*memData) links, bookID int64, ids []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l := pick(r.s.data)
	if len(ids) == 0 {
		delete(l, bookID)
		return nil
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	l[bookID] = set
	return nil
}

func (r *memAssociations) AuthorsOfBook(ctx context.Context, bookID int64) ([]entity.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Author{}
	for id := range r.s.data.bookAuthors[bookID] {
		if a, ok := r.s.data.authors.rows[id]; ok {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, authorOrder)
	return out, nil
}

func (r *memAssociations) CategoriesOfBook(ctx context.Context, bookID int64) ([]entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Category{}
	for id := range r.s.data.bookCategories[bookID] {
		if c, ok := r.s.data.categories.rows[id]; ok {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, categoryOrder)
	return out, nil
}

func (r *memAssociations) BooksOfAuthor(ctx context.Context, authorID int64) ([]entity.Book, error) {
	return r.booksLinkedTo(ctx, func(d *memData) links { return d.bookAuthors }, authorID)
}

func (r *memAssociations) BooksOfCategory(ctx context.Context, categoryID int64) ([]entity.Book, error) {
	return r.booksLinkedTo(ctx, func(d *memData) links { return d.bookCategories }, categoryID)
}

func (r *memAssociations) booksLinkedTo(ctx context.Context, pick func(*memData) links, id int64) ([]entity.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Book{}
	for bookID, set := range pick(r.s.data) {
		if _, ok := set[id]; !ok {
			continue
		}
		if b, ok := r.s.data.books.rows[bookID]; ok {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, bookOrder)
	return out, nil
}

func (r *memAssociations) DeleteBookLinks(ctx context.Context, bookID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.bookAuthors, bookID)
	delete(r.s.data.bookCategories, bookID)
	return nil
}
