package usecase

import (
	"context"
	"errors"
	"log"
)

// CatalogService implements the catalog use cases. Each mutating method
// validates the command with IntegrityValidator and only then writes, in a
// fixed order, through the store's repositories.
//
// With atomic writes off (the default) the steps of a multi-row use case
// are applied one after another and an earlier step is not undone when a
// later one fails. With atomic writes on, the whole use case runs inside
// Store.WithinTx.
type CatalogService struct {
	store  Store
	atomic bool
	logger *log.Logger
}

type Option func(*CatalogService)

// WithAtomicWrites makes every mutating use case run in one transaction.
func WithAtomicWrites(on bool) Option {
	return func(s *CatalogService) {
		s.atomic = on
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *CatalogService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewCatalogService(store Store, opts ...Option) *CatalogService {
	s := &CatalogService{
		store:  store,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) AtomicWrites() bool {
	return s.atomic
}

func (s *CatalogService) repos() Repositories {
	return s.store.Repositories()
}

// write runs one mutating use case. Any failure that is neither a missing
// target nor a rule violation is reported as a *PersistenceError.
func (s *CatalogService) write(ctx context.Context, op string, fn func(ctx context.Context, repos Repositories) error) error {
	var err error
	if s.atomic {
		err = s.store.WithinTx(ctx, fn)
	} else {
		err = fn(ctx, s.repos())
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		perr = &PersistenceError{Op: op, Err: err}
		err = perr
	}
	s.logger.Printf("catalog op=%q step=%q atomic=%t error=%v", op, perr.Op, s.atomic, perr.Err)
	return err
}

// persist tags a failed write step so the caller sees which step broke.
func persist(step string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	return &PersistenceError{Op: step, Err: err}
}

// approve folds a validator result into a single error.
func approve(vs Violations, err error) error {
	if err != nil {
		return err
	}
	return vs.Err()
}
