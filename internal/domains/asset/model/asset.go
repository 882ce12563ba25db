package model

import (
	"errors"
	"fmt"
	"time"
)

// AllowedContentTypes is the image allow-list enforced at upload.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Asset describes an uploaded object under a caller-scoped path.
type Asset struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	PublicURL   string    `json:"url"`
	SizeBytes   int64     `json:"size"`
	ContentType string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadFile is the boundary representation of an incoming file.
type UploadFile struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Data        []byte
}

// Error codes
const (
	ErrCodeInvalidFileType = "AST001"
	ErrCodeFileTooLarge    = "AST002"
	ErrCodePathForbidden   = "AST003"
	ErrCodeMissingFile     = "AST004"
)

// Errors
var (
	ErrInvalidFileType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrPathForbidden   = errors.New("path is outside the caller's folder")
	ErrMissingFile     = errors.New("no file provided")
)

// AssetError custom error type
type AssetError struct {
	Code    string
	Message string
	Err     error
}

func (e *AssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewInvalidFileTypeError() *AssetError {
	return &AssetError{
		Code:    ErrCodeInvalidFileType,
		Message: "Unsupported file type, only JPEG, PNG, GIF and WebP are allowed",
		Err:     ErrInvalidFileType,
	}
}

func NewFileTooLargeError(maxBytes int64) *AssetError {
	return &AssetError{
		Code:    ErrCodeFileTooLarge,
		Message: fmt.Sprintf("File exceeds the %dMB size limit", maxBytes/(1024*1024)),
		Err:     ErrFileTooLarge,
	}
}

func NewPathForbiddenError() *AssetError {
	return &AssetError{
		Code:    ErrCodePathForbidden,
		Message: "You do not have permission to access this path",
		Err:     ErrPathForbidden,
	}
}

func NewMissingFileError() *AssetError {
	return &AssetError{
		Code:    ErrCodeMissingFile,
		Message: "No file was provided",
		Err:     ErrMissingFile,
	}
}
