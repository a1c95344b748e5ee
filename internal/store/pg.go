package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const DefaultQueryTimeout = 3 * time.Second

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repositories run inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore is the PostgreSQL backed usecase.Store.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &PostgresStore{pool: pool, timeout: timeout}
}

// EnsureSchema creates the catalog tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Repositories() usecase.Repositories {
	return s.repositories(s.pool)
}

func (s *PostgresStore) repositories(db querier) usecase.Repositories {
	base := pgRepo{db: db, timeout: s.timeout}
	return usecase.Repositories{
		Books:        &BookPG{pgRepo: base},
		Authors:      &AuthorPG{pgRepo: base},
		Categories:   &CategoryPG{names: pgNames{pgRepo: base, table: "categories", kind: "category"}},
		Countries:    &CountryPG{names: pgNames{pgRepo: base, table: "countries", kind: "country"}},
		Reviewers:    &ReviewerPG{pgRepo: base},
		Reviews:      &ReviewPG{pgRepo: base},
		Associations: &AssociationPG{pgRepo: base},
	}
}

// WithinTx runs fn in one database transaction. fn's error rolls it back.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, s.repositories(tx))
	})
}

type pgRepo struct {
	db      querier
	timeout time.Duration
}

func (r pgRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// execOne runs a single-row write and reports ErrNotFound when no row
// matched.
func (r pgRepo) execOne(ctx context.Context, op, kind string, id int64, sql string, args ...any) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, args...)
	if err != nil {
		return wrapPG(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, usecase.ErrNotFound)
	}
	return nil
}

func (r pgRepo) exists(ctx context.Context, sql string, id int64) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var ok bool
	if err := r.db.QueryRow(timeoutCtx, sql, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r pgRepo) count(ctx context.Context, op, sql string, args ...any) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, args...)
	if err != nil {
		return 0, wrapPG(op, err)
	}
	return int(tag.RowsAffected()), nil
}

// queryAll runs sql and scans every row with scan.
func queryAll[T any](ctx context.Context, r pgRepo, scan func(row pgx.CollectableRow) (T, error), sql string, args ...any) ([]T, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// queryOne scans a single row, mapping pgx.ErrNoRows to ErrNotFound.
func queryOne[T any](ctx context.Context, r pgRepo, notFound error, scan func(row pgx.CollectableRow) (T, error), sql string, args ...any) (T, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := pgx.CollectExactlyOneRow(rows, scan)
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, notFound
		}
		return zero, err
	}
	return v, nil
}

func wrapPG(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w (%s)", op, errDuplicateKey, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var (
	_ usecase.Store                 = (*PostgresStore)(nil)
	_ usecase.BookRepository        = (*BookPG)(nil)
	_ usecase.AuthorRepository      = (*AuthorPG)(nil)
	_ usecase.CategoryRepository    = (*CategoryPG)(nil)
	_ usecase.CountryRepository     = (*CountryPG)(nil)
	_ usecase.ReviewerRepository    = (*ReviewerPG)(nil)
	_ usecase.ReviewRepository      = (*ReviewPG)(nil)
	_ usecase.AssociationRepository = (*AssociationPG)(nil)
)
