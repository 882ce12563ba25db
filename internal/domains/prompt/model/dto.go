package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreatePromptRequest carries the fields accepted at prompt creation.
// Title and content are required; everything else has a stated default.
type CreatePromptRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Version     string   `json:"version"`
	CoverImgURL string   `json:"cover_img"`
	Category    string   `json:"category"`
	IsPublic    bool     `json:"is_public"`
}

func (r CreatePromptRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Category,
			validation.Length(0, 64),
		),
	)
}

// UpdatePromptRequest is a partial patch: nil pointer fields keep the
// stored value, non-nil fields replace it. Tags uses a pointer to a slice
// so "absent" and "set to empty" stay distinguishable.
type UpdatePromptRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Version     *string   `json:"version"`
	CoverImgURL *string   `json:"cover_img"`
	Category    *string   `json:"category"`
	IsPublic    *bool     `json:"is_public"`
}

func (r UpdatePromptRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be blank"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content must not be blank"),
		),
	)
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdatePromptRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Description == nil &&
		r.Tags == nil && r.Version == nil && r.CoverImgURL == nil &&
		r.Category == nil && r.IsPublic == nil
}

// ListPromptsRequest mirrors the collection query parameters.
type ListPromptsRequest struct {
	Tag        string `form:"tag"`
	Category   string `form:"category"`
	Search     string `form:"search"`
	PublicOnly bool   `form:"public"`
}

// ListFilters is the repository-level filter set after boundary cleanup.
type ListFilters struct {
	Tag        string
	Category   string
	Search     string
	PublicOnly bool
}
