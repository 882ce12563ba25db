package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"promptvault-backend/internal/domains/prompt/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const promptColumns = `
	id, owner_id, title, content, description, tags,
	version, cover_image_url, is_public, category,
	created_at, updated_at
`

type postgresPromptRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPromptRepository(pool *pgxpool.Pool) PromptRepository {
	return &postgresPromptRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresPromptRepository) Create(ctx context.Context, prompt *model.Prompt) error {
	query := `
		INSERT INTO prompts (
			id, owner_id, title, content, description, tags,
			version, cover_image_url, is_public, category,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		prompt.ID,
		prompt.OwnerID,
		prompt.Title,
		prompt.Content,
		prompt.Description,
		pq.Array(prompt.Tags),
		prompt.Version,
		prompt.CoverImageURL,
		prompt.IsPublic,
		prompt.Category,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}

	return nil
}

// =====================================================
// GET (VISIBILITY-SCOPED)
// =====================================================

func (r *postgresPromptRepository) GetVisible(ctx context.Context, id uuid.UUID, callerID string) (*model.Prompt, error) {
	// An absent row and a private row the caller does not own produce the
	// same ErrPromptNotFound so existence never leaks.
	query := fmt.Sprintf(`
		SELECT %s FROM prompts
		WHERE id = $1 AND (owner_id = $2 OR is_public = TRUE)
	`, promptColumns)

	return r.scanOne(r.pool.QueryRow(ctx, query, id, callerID))
}

func (r *postgresPromptRepository) GetPublic(ctx context.Context, id uuid.UUID) (*model.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM prompts
		WHERE id = $1 AND is_public = TRUE
	`, promptColumns)

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// =====================================================
// LIST
// =====================================================

func (r *postgresPromptRepository) List(ctx context.Context, callerID string, filters model.ListFilters) ([]*model.Prompt, error) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Visibility rule first: public-only, caller-or-public, or anonymous.
	switch {
	case filters.PublicOnly:
		conditions = append(conditions, "is_public = TRUE")
	case callerID != "":
		conditions = append(conditions, fmt.Sprintf("(owner_id = %s OR is_public = TRUE)", arg(callerID)))
	default:
		conditions = append(conditions, "is_public = TRUE")
	}

	if filters.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("%s = ANY(tags)", arg(filters.Tag)))
	}
	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = %s", arg(filters.Category)))
	}
	if filters.Search != "" {
		pattern := arg("%" + filters.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE %s OR content ILIKE %s)", pattern, pattern))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM prompts
		WHERE %s
		ORDER BY created_at DESC
	`, promptColumns, strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []*model.Prompt
	for rows.Next() {
		prompt, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt rows: %w", err)
	}

	return prompts, nil
}

// =====================================================
// CONDITIONAL MUTATIONS
// =====================================================

func (r *postgresPromptRepository) UpdateOwned(ctx context.Context, id uuid.UUID, ownerID string, patch UpdatePatch) (bool, error) {
	setClauses := []string{"updated_at = now()"}
	var args []interface{}

	set := func(column string, v interface{}) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Tags != nil {
		set("tags", pq.Array(*patch.Tags))
	}
	if patch.Version != nil {
		// Stored verbatim; no conflict detection against the current value.
		set("version", *patch.Version)
	}
	if patch.CoverImgURL != nil {
		set("cover_image_url", *patch.CoverImgURL)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.IsPublic != nil {
		set("is_public", *patch.IsPublic)
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`
		UPDATE prompts SET %s
		WHERE id = $%d AND owner_id = $%d
	`, strings.Join(setClauses, ", "), len(args)-1, len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update prompt: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresPromptRepository) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID string) (bool, error) {
	query := `DELETE FROM prompts WHERE id = $1 AND owner_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete prompt: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresPromptRepository) PublishOwned(ctx context.Context, id uuid.UUID, ownerID string) (bool, error) {
	query := `
		UPDATE prompts
		SET is_public = TRUE, updated_at = now()
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to publish prompt: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// =====================================================
// SCAN HELPERS
// =====================================================

func (r *postgresPromptRepository) scanOne(row pgx.Row) (*model.Prompt, error) {
	prompt, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return prompt, nil
}

func (r *postgresPromptRepository) scanRow(rows pgx.Rows) (*model.Prompt, error) {
	prompt, err := scanPrompt(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan prompt row: %w", err)
	}
	return prompt, nil
}

func scanPrompt(row pgx.Row) (*model.Prompt, error) {
	prompt := &model.Prompt{}
	var tags []string

	err := row.Scan(
		&prompt.ID,
		&prompt.OwnerID,
		&prompt.Title,
		&prompt.Content,
		&prompt.Description,
		pq.Array(&tags),
		&prompt.Version,
		&prompt.CoverImageURL,
		&prompt.IsPublic,
		&prompt.Category,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	prompt.Tags = tags
	return prompt, nil
}
