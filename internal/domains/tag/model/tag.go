package model

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Tag is a globally shared, deduplicated label. Names are case-sensitive
// and trimmed; rows are created lazily on first use and never mutated.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Error codes
const (
	ErrCodeTagValidation = "TAG001"
)

var ErrEmptyTagName = errors.New("tag name must not be empty")

// TagError custom error type
type TagError struct {
	Code    string
	Message string
	Err     error
}

func (e *TagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TagError) Unwrap() error {
	return e.Err
}

func NewEmptyTagNameError() *TagError {
	return &TagError{
		Code:    ErrCodeTagValidation,
		Message: "Tag name must not be empty",
		Err:     ErrEmptyTagName,
	}
}

// CreateTagRequest carries the raw tag name from the boundary.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("tag name is required"),
			validation.Length(1, 128),
		),
	)
}
