package repository

import (
	"context"

	"github.com/google/uuid"

	"promptvault-backend/internal/domains/prompt/model"
)

// UpdatePatch carries the already-normalized partial update applied by a
// conditional statement. Nil fields keep their stored values.
type UpdatePatch struct {
	Title       *string
	Content     *string
	Description *string
	Tags        *[]string
	Version     *string
	CoverImgURL *string
	Category    *string
	IsPublic    *bool
}

// PromptRepository is the storage contract for prompt records.
//
// Mutations that require ownership are expressed as single conditional
// statements (WHERE id AND owner_id) so the store enforces atomicity;
// callers learn about staleness from the affected-row count, never from a
// separate existence probe.
type PromptRepository interface {
	// Create inserts a new prompt record.
	Create(ctx context.Context, prompt *model.Prompt) error

	// GetVisible returns the prompt iff the caller may read it (owner or
	// public). A missing row and an invisible row are both ErrPromptNotFound.
	GetVisible(ctx context.Context, id uuid.UUID, callerID string) (*model.Prompt, error)

	// GetPublic returns the prompt iff it is public.
	GetPublic(ctx context.Context, id uuid.UUID) (*model.Prompt, error)

	// List returns visible prompts newest-created first. Visibility is
	// resolved from callerID and filters.PublicOnly; remaining filters are
	// conjunctive.
	List(ctx context.Context, callerID string, filters model.ListFilters) ([]*model.Prompt, error)

	// UpdateOwned applies the patch iff the row exists and is owned by
	// ownerID, refreshing updated_at. Returns false when no row matched.
	UpdateOwned(ctx context.Context, id uuid.UUID, ownerID string, patch UpdatePatch) (bool, error)

	// DeleteOwned removes the row iff owned by ownerID. Returns false when
	// no row matched.
	DeleteOwned(ctx context.Context, id uuid.UUID, ownerID string) (bool, error)

	// PublishOwned flips is_public to true iff owned by ownerID, refreshing
	// updated_at. Returns false when no row matched.
	PublishOwned(ctx context.Context, id uuid.UUID, ownerID string) (bool, error)
}
