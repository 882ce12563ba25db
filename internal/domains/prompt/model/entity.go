package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is the bucket a prompt lands in when the creator
// does not classify it.
const DefaultCategory = "general"

// Prompt represents a user-owned prompt record
type Prompt struct {
	ID      uuid.UUID `json:"id"`
	OwnerID string    `json:"owner_id"`

	// Content
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// Version is a caller-supplied label stored verbatim. It is not an
	// optimistic-concurrency token; updates are last-write-wins.
	Version string `json:"version"`

	CoverImageURL string `json:"cover_img"`
	Category      string `json:"category"`

	// Visibility
	IsPublic bool `json:"is_public"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VisibleTo reports whether the prompt is readable by the given caller.
func (p *Prompt) VisibleTo(callerID string) bool {
	return p.IsPublic || (callerID != "" && p.OwnerID == callerID)
}

// OwnedBy reports whether the caller holds write/delete rights.
func (p *Prompt) OwnedBy(callerID string) bool {
	return callerID != "" && p.OwnerID == callerID
}
