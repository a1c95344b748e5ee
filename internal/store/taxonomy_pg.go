package store

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
)

// pgNames stores the (id, name) tables shared by categories and countries.
type pgNames struct {
	pgRepo
	table string
	kind  string
}

type nameRow struct {
	ID   int64
	Name string
}

func scanNameRow(row pgx.CollectableRow) (nameRow, error) {
	var n nameRow
	err := row.Scan(&n.ID, &n.Name)
	return n, err
}

func (r pgNames) get(ctx context.Context, id int64) (nameRow, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, r.table)
	return queryOne(ctx, r.pgRepo, fmt.Errorf("%s %d: %w", r.kind, id, usecase.ErrNotFound), scanNameRow, query, id)
}

func (r pgNames) list(ctx context.Context) ([]nameRow, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name, id`, r.table)
	return queryAll(ctx, r.pgRepo, scanNameRow, query)
}

func (r pgNames) exists(ctx context.Context, id int64) (bool, error) {
	return r.pgRepo.exists(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.table), id)
}

// isDuplicate looks up name_key, which holds entity.NormalizeName(name), so
// both stores apply the same normalization.
func (r pgNames) isDuplicate(ctx context.Context, id int64, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name_key = $1 AND id <> $2)`, r.table)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var dup bool
	if err := r.db.QueryRow(timeoutCtx, query, entity.NormalizeName(name), id).Scan(&dup); err != nil {
		return false, wrapPG("check "+r.kind+" name", err)
	}
	return dup, nil
}

func (r pgNames) create(ctx context.Context, name string) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, name_key) VALUES ($1, $2) RETURNING id`, r.table)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var id int64
	if err := r.db.QueryRow(timeoutCtx, query, name, entity.NormalizeName(name)).Scan(&id); err != nil {
		return 0, wrapPG("insert "+r.kind, err)
	}
	return id, nil
}

func (r pgNames) update(ctx context.Context, id int64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $2, name_key = $3 WHERE id = $1`, r.table)
	return r.execOne(ctx, "update "+r.kind, r.kind, id, query, id, name, entity.NormalizeName(name))
}

func (r pgNames) delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	return r.execOne(ctx, "delete "+r.kind, r.kind, id, query, id)
}

type CategoryPG struct {
	names pgNames
}

func (r *CategoryPG) Get(ctx context.Context, id int64) (entity.Category, error) {
	n, err := r.names.get(ctx, id)
	if err != nil {
		return entity.Category{}, err
	}
	return entity.Category{ID: n.ID, Name: n.Name}, nil
}

func (r *CategoryPG) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.names.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(rows))
	for _, n := range rows {
		out = append(out, entity.Category{ID: n.ID, Name: n.Name})
	}
	return out, nil
}

func (r *CategoryPG) Exists(ctx context.Context, id int64) (bool, error) {
	return r.names.exists(ctx, id)
}

func (r *CategoryPG) IsDuplicateName(ctx context.Context, id int64, name string) (bool, error) {
	return r.names.isDuplicate(ctx, id, name)
}

func (r *CategoryPG) Create(ctx context.Context, c *entity.Category) error {
	id, err := r.names.create(ctx, c.Name)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CategoryPG) Update(ctx context.Context, c *entity.Category) error {
	return r.names.update(ctx, c.ID, c.Name)
}

func (r *CategoryPG) Delete(ctx context.Context, id int64) error {
	return r.names.delete(ctx, id)
}

type CountryPG struct {
	names pgNames
}

func (r *CountryPG) Get(ctx context.Context, id int64) (entity.Country, error) {
	n, err := r.names.get(ctx, id)
	if err != nil {
		return entity.Country{}, err
	}
	return entity.Country{ID: n.ID, Name: n.Name}, nil
}

func (r *CountryPG) List(ctx context.Context) ([]entity.Country, error) {
	rows, err := r.names.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Country, 0, len(rows))
	for _, n := range rows {
		out = append(out, entity.Country{ID: n.ID, Name: n.Name})
	}
	return out, nil
}

func (r *CountryPG) Exists(ctx context.Context, id int64) (bool, error) {
	return r.names.exists(ctx, id)
}

func (r *CountryPG) IsDuplicateName(ctx context.Context, id int64, name string) (bool, error) {
	return r.names.isDuplicate(ctx, id, name)
}

func (r *CountryPG) Create(ctx context.Context, c *entity.Country) error {
	id, err := r.names.create(ctx, c.Name)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CountryPG) Update(ctx context.Context, c *entity.Country) error {
	return r.names.update(ctx, c.ID, c.Name)
}

func (r *CountryPG) Delete(ctx context.Context, id int64) error {
	return r.names.delete(ctx, id)
}
