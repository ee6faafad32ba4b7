package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Simplici0/printstock/internal/model"
)

var filamentColumns = []string{"id", "name", "color", "cost_per_kg", "active", "created_at", "updated_at"}

func scanFilament(row scanner) (model.Filament, error) {
	var f model.Filament
	err := row.Scan(&f.ID, &f.Name, &f.Color, &f.CostPerKg, &f.Active, sqlTime{&f.CreatedAt}, sqlTime{&f.UpdatedAt})
	return f, err
}

// ListFilaments returns the catalog in registration order.
func (s *Store) ListFilaments(ctx context.Context, activeOnly bool) ([]model.Filament, error) {
	q := s.sb.Select(filamentColumns...).From("filaments").OrderBy("id ASC")
	if activeOnly {
		q = q.Where(sq.Eq{"active": true})
	}

	rows, err := query(ctx, s.db, q)
	if err != nil {
		return nil, fmt.Errorf("query filaments: %w", err)
	}
	defer rows.Close()

	filaments := make([]model.Filament, 0)
	for rows.Next() {
		f, err := scanFilament(rows)
		if err != nil {
			return nil, fmt.Errorf("scan filament: %w", err)
		}
		filaments = append(filaments, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filaments: %w", err)
	}

	return filaments, nil
}

func (s *Store) GetFilament(ctx context.Context, id int64) (model.Filament, error) {
	row, err := queryRow(ctx, s.db, s.sb.Select(filamentColumns...).From("filaments").Where(sq.Eq{"id": id}))
	if err != nil {
		return model.Filament{}, err
	}

	f, err := scanFilament(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Filament{}, ErrNotFound
		}
		return model.Filament{}, fmt.Errorf("query filament: %w", err)
	}
	return f, nil
}

func (s *Store) CreateFilament(ctx context.Context, f model.Filament) (int64, error) {
	res, err := exec(ctx, s.db, s.sb.
		Insert("filaments").
		Columns("name", "color", "cost_per_kg", "active").
		Values(f.Name, f.Color, f.CostPerKg, f.Active))
	if err != nil {
		return 0, fmt.Errorf("insert filament: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert filament: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateFilament(ctx context.Context, f model.Filament) error {
	res, err := exec(ctx, s.db, s.sb.
		Update("filaments").
		Set("name", f.Name).
		Set("color", f.Color).
		Set("cost_per_kg", f.CostPerKg).
		Set("active", f.Active).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": f.ID}))
	if err != nil {
		return fmt.Errorf("update filament: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteFilament(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("filaments").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete filament: %w", err)
	}
	return requireAffected(res)
}
