package service

import (
	"context"

	"github.com/google/uuid"

	"promptvault-backend/internal/domains/prompt/model"
)

// ServiceInterface is the business-logic contract for prompt records,
// including the publish transition layered on top of the store.
type ServiceInterface interface {
	// CreatePrompt creates a prompt owned by ownerID.
	CreatePrompt(ctx context.Context, ownerID string, req model.CreatePromptRequest) (*model.Prompt, error)

	// GetPrompt fetches one prompt under the read-visibility rule; a missing
	// and an invisible record are indistinguishable to the caller.
	GetPrompt(ctx context.Context, id uuid.UUID, callerID string) (*model.Prompt, error)

	// GetPublicPrompt fetches a prompt for anonymous readers iff public.
	GetPublicPrompt(ctx context.Context, id uuid.UUID) (*model.Prompt, error)

	// ListPrompts lists visible prompts newest-created first.
	ListPrompts(ctx context.Context, callerID string, req model.ListPromptsRequest) ([]*model.Prompt, error)

	// UpdatePrompt applies a partial patch; ownership is strict.
	UpdatePrompt(ctx context.Context, id uuid.UUID, callerID string, req model.UpdatePromptRequest) error

	// DeletePrompt removes the record; ownership is strict.
	DeletePrompt(ctx context.Context, id uuid.UUID, callerID string) error

	// PublishPrompt makes the prompt publicly readable; ownership is strict.
	PublishPrompt(ctx context.Context, id uuid.UUID, callerID string) error
}
