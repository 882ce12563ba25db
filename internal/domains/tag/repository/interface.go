package repository

import (
	"context"

	"promptvault-backend/internal/domains/tag/model"
)

// TagRepository is the storage contract for the shared tag namespace.
type TagRepository interface {
	// GetOrCreate returns the tag row for name, inserting it on first use.
	// The insert is conflict-tolerant against the unique name index, so two
	// concurrent first-uses of the same name converge on one row; created
	// reports whether this call inserted it.
	GetOrCreate(ctx context.Context, tag *model.Tag) (created bool, err error)

	// ListNames returns every tag name.
	ListNames(ctx context.Context) ([]string, error)
}
