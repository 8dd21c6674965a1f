package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindTag(ctx context.Context, itemName string) (string, error) {
	query := `
		SELECT tag
		FROM tag_rules
		WHERE $1 ILIKE '%' || name_pattern || '%'
		ORDER BY LENGTH(name_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var tag string

	err := s.db.QueryRowContext(ctx, query, itemName).Scan(&tag)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding tag: %w", err)
	}

	return tag, nil
}

func (s *Store) SaveRule(ctx context.Context, namePattern, tag string) error {
	query := `
		INSERT INTO tag_rules (name_pattern, tag, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name_pattern) DO UPDATE SET tag = EXCLUDED.tag
	`

	_, err := s.db.ExecContext(ctx, query, namePattern, tag)
	if err != nil {
		return fmt.Errorf("saving tag rule: %w", err)
	}

	return nil
}
