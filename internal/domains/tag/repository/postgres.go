package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptvault-backend/internal/domains/tag/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresTagRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTagRepository(pool *pgxpool.Pool) TagRepository {
	return &postgresTagRepository{pool: pool}
}

func (r *postgresTagRepository) GetOrCreate(ctx context.Context, tag *model.Tag) (bool, error) {
	// Insert-or-fetch in two statements, both resolved by the unique index
	// rather than an application-level existence probe. When the insert
	// loses a race the follow-up select sees the winner's row.
	insertQuery := `
		INSERT INTO tags (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at
	`

	err := r.pool.QueryRow(ctx, insertQuery, tag.ID, tag.Name, tag.CreatedAt).
		Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("failed to create tag: %w", err)
	}

	// Conflict: the name already exists, fetch the canonical row.
	selectQuery := `SELECT id, name, created_at FROM tags WHERE name = $1`

	err = r.pool.QueryRow(ctx, selectQuery, tag.Name).
		Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to fetch existing tag: %w", err)
	}
	return false, nil
}

func (r *postgresTagRepository) ListNames(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM tags ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag rows: %w", err)
	}

	return names, nil
}
