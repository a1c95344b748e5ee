package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"
)

// table is one in-memory relation keyed by surrogate id.
type table[T any] struct {
	rows map[int64]T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[int64]T{}}
}

func (t *table[T]) clone() *table[T] {
	return &table[T]{rows: maps.Clone(t.rows), next: t.next}
}

// links is a join relation: left id -> set of right ids.
type links map[int64]map[int64]struct{}

func (l links) clone() links {
	out := make(links, len(l))
	for k, set := range l {
		out[k] = maps.Clone(set)
	}
	return out
}

type memData struct {
	books          *table[entity.Book]
	authors        *table[entity.Author]
	categories     *table[entity.Category]
	countries      *table[entity.Country]
	reviewers      *table[entity.Reviewer]
	reviews        *table[entity.Review]
	bookAuthors    links
	bookCategories links
}

func newMemData() *memData {
	return &memData{
		books:          newTable[entity.Book](),
		authors:        newTable[entity.Author](),
		categories:     newTable[entity.Category](),
		countries:      newTable[entity.Country](),
		reviewers:      newTable[entity.Reviewer](),
		reviews:        newTable[entity.Review](),
		bookAuthors:    links{},
		bookCategories: links{},
	}
}

func (d *memData) clone() *memData {
	return &memData{
		books:          d.books.clone(),
		authors:        d.authors.clone(),
		categories:     d.categories.clone(),
		countries:      d.countries.clone(),
		reviewers:      d.reviewers.clone(),
		reviews:        d.reviews.clone(),
		bookAuthors:    d.bookAuthors.clone(),
		bookCategories: d.bookCategories.clone(),
	}
}

// MemoryStore keeps the catalog in process memory. Every repository call
// holds mu for its own duration. WithinTx serializes transactions and, when
// fn fails, restores the tables to the snapshot taken on entry.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *memData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemData()}
}

func (s *MemoryStore) Repositories() usecase.Repositories {
	return usecase.Repositories{
		Books:        &memBooks{memTable: newBookTable(s)},
		Authors:      &memAuthors{memTable: newAuthorTable(s)},
		Categories:   &memCategories{memTable: newCategoryTable(s)},
		Countries:    &memCountries{memTable: newCountryTable(s)},
		Reviewers:    &memReviewers{memTable: newReviewerTable(s)},
		Reviews:      &memReviews{memTable: newReviewTable(s)},
		Associations: &memAssociations{s: s},
	}
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// memTable implements usecase.EntityStore over one table of memData.
type memTable[T any] struct {
	s     *MemoryStore
	kind  string
	pick  func(*memData) *table[T]
	idOf  func(*T) *int64
	order func(a, b T) int
	// check guards table-local constraints such as unique keys.
	check func(d *memData, v T) error
}

func (t *memTable[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	v, ok := t.pick(t.s.data).rows[id]
	if !ok {
		return zero, fmt.Errorf("%s %d: %w", t.kind, id, usecase.ErrNotFound)
	}
	return v, nil
}

func (t *memTable[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return t.sorted(func(T) bool { return true }), nil
}

// sorted returns the rows accepted by keep in the table's list order.
// Callers hold mu.
func (t *memTable[T]) sorted(keep func(T) bool) []T {
	out := []T{}
	for _, v := range t.pick(t.s.data).rows {
		if keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, t.order)
	return out
}

func (t *memTable[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	_, ok := t.pick(t.s.data).rows[id]
	return ok, nil
}

func (t *memTable[T]) Create(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tbl := t.pick(t.s.data)
	id := t.idOf(v)
	*id = tbl.next + 1
	if t.check != nil {
		if err := t.check(t.s.data, *v); err != nil {
			*id = 0
			return fmt.Errorf("create %s: %w", t.kind, err)
		}
	}
	tbl.next = *id
	tbl.rows[*id] = *v
	return nil
}

func (t *memTable[T]) Update(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tbl := t.pick(t.s.data)
	id := *t.idOf(v)
	if _, ok := tbl.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.kind, id, usecase.ErrNotFound)
	}
	if t.check != nil {
		if err := t.check(t.s.data, *v); err != nil {
			return fmt.Errorf("update %s: %w", t.kind, err)
		}
	}
	tbl.rows[id] = *v
	return nil
}

func (t *memTable[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tbl := t.pick(t.s.data)
	if _, ok := tbl.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.kind, id, usecase.ErrNotFound)
	}
	delete(tbl.rows, id)
	return nil
}

var _ usecase.Store = (*MemoryStore)(nil)
