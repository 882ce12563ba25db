package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodePromptNotFound = "PRM001"
	ErrCodeNotOwner       = "PRM002"
	ErrCodeValidation     = "PRM003"
	ErrCodeUnauthorized   = "PRM004"
)

// Errors
var (
	// ErrPromptNotFound covers both a missing row and a row the caller may
	// not see. The two cases are merged so private records do not leak.
	ErrPromptNotFound = errors.New("prompt not found")
	ErrNotOwner       = errors.New("caller does not own this prompt")
	ErrUnauthorized   = errors.New("unauthorized to perform this action")
)

// PromptError custom error type
type PromptError struct {
	Code    string
	Message string
	Err     error
}

func (e *PromptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PromptError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewPromptNotFoundError() *PromptError {
	return &PromptError{
		Code:    ErrCodePromptNotFound,
		Message: "Prompt not found",
		Err:     ErrPromptNotFound,
	}
}

func NewNotOwnerError() *PromptError {
	return &PromptError{
		Code:    ErrCodeNotOwner,
		Message: "You do not have permission to modify this prompt",
		Err:     ErrNotOwner,
	}
}

func NewValidationError(message string) *PromptError {
	return &PromptError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}
