package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"promptvault-backend/internal/config"
	"promptvault-backend/internal/domains/asset/model"
	"promptvault-backend/internal/infrastructure/storage"
	"promptvault-backend/internal/shared/utils"
)

// =====================================================
// ASSET SERVICE
// =====================================================

// ObjectStore is the storage contract the asset service drives. Satisfied
// by storage.MinIOStorage.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string, limit int) ([]storage.ObjectInfo, error)
	PublicURL(key string) string
}

// ServiceInterface brokers caller-scoped binary assets. Every destructive
// or enumerating operation authorizes by path prefix before touching the
// store.
type ServiceInterface interface {
	// Upload validates and stores a file under "<ownerID>/...".
	Upload(ctx context.Context, ownerID string, file model.UploadFile) (*model.Asset, error)

	// Remove deletes an object; the path must live under "<ownerID>/".
	Remove(ctx context.Context, ownerID, path string) error

	// List enumerates objects under folder (default: the owner's root),
	// newest first, bounded by limit.
	List(ctx context.Context, ownerID, folder string, limit int) ([]model.Asset, error)
}

type assetService struct {
	store ObjectStore
	cfg   config.UploadConfig
}

func NewAssetService(store ObjectStore, cfg config.UploadConfig) ServiceInterface {
	return &assetService{
		store: store,
		cfg:   cfg,
	}
}

// =====================================================
// UPLOAD
// =====================================================

func (s *assetService) Upload(ctx context.Context, ownerID string, file model.UploadFile) (*model.Asset, error) {
	// Step 1: Validate content type against the image allow-list
	if !model.AllowedContentTypes[file.ContentType] {
		return nil, model.NewInvalidFileTypeError()
	}

	// Step 2: Enforce the size cap
	if file.SizeBytes > s.cfg.MaxSizeBytes {
		return nil, model.NewFileTooLargeError(s.cfg.MaxSizeBytes)
	}

	// Step 3: Derive the owner-scoped key. The millisecond discriminator
	// keeps concurrent uploads of the same filename from colliding.
	sanitized := utils.SanitizeFilename(file.Name)
	key := fmt.Sprintf("%s/%d_%s", ownerID, time.Now().UnixMilli(), sanitized)

	// Step 4: Store and return the durable public URL
	url, err := s.store.Upload(ctx, key, file.Data, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	return &model.Asset{
		Name:        file.Name,
		Path:        key,
		PublicURL:   url,
		SizeBytes:   file.SizeBytes,
		ContentType: file.ContentType,
		CreatedAt:   time.Now(),
	}, nil
}

// =====================================================
// REMOVE
// =====================================================

func (s *assetService) Remove(ctx context.Context, ownerID, path string) error {
	// The prefix check is the entire authorization model for destructive
	// asset operations; it runs before any store call.
	if !strings.HasPrefix(path, ownerID+"/") {
		return model.NewPathForbiddenError()
	}

	if err := s.store.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to remove asset: %w", err)
	}
	return nil
}

// =====================================================
// LIST
// =====================================================

func (s *assetService) List(ctx context.Context, ownerID, folder string, limit int) ([]model.Asset, error) {
	if folder == "" {
		folder = ownerID
	}
	if folder != ownerID && !strings.HasPrefix(folder, ownerID+"/") {
		return nil, model.NewPathForbiddenError()
	}

	if limit <= 0 {
		limit = s.cfg.ListLimit
	}

	prefix := folder
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	objects, err := s.store.List(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	assets := make([]model.Asset, 0, len(objects))
	for _, obj := range objects {
		assets = append(assets, model.Asset{
			Name:        strings.TrimPrefix(obj.Key, prefix),
			Path:        obj.Key,
			PublicURL:   s.store.PublicURL(obj.Key),
			SizeBytes:   obj.Size,
			ContentType: obj.ContentType,
			CreatedAt:   obj.LastModified,
		})
	}
	return assets, nil
}
