package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// PasswordHash returns the stored hash for email, or ErrNotFound.
func (s *Store) PasswordHash(ctx context.Context, email string) (string, error) {
	row, err := queryRow(ctx, s.db, s.sb.Select("password_hash").From("users").Where(sq.Eq{"email": email}))
	if err != nil {
		return "", err
	}

	var hash string
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("query user credentials: %w", err)
	}
	return hash, nil
}
