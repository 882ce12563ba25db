package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"promptvault-backend/internal/domains/prompt/model"
	"promptvault-backend/internal/domains/prompt/repository"
	"promptvault-backend/internal/infrastructure/cache"
	"promptvault-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const (
	publicPromptCacheKey = "prompt:public:%s"
	publicPromptCacheTTL = 5 * time.Minute
)

type promptService struct {
	promptRepo repository.PromptRepository
	cache      cache.Cache
}

func NewPromptService(promptRepo repository.PromptRepository, cache cache.Cache) ServiceInterface {
	return &promptService{
		promptRepo: promptRepo,
		cache:      cache,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *promptService) CreatePrompt(ctx context.Context, ownerID string, req model.CreatePromptRequest) (*model.Prompt, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, model.NewValidationError("title and content are required")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	// Step 2: Build entity with stated defaults
	now := time.Now()
	prompt := &model.Prompt{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         title,
		Content:       content,
		Description:   strings.TrimSpace(req.Description),
		Tags:          normalizeTags(req.Tags),
		Version:       req.Version,
		CoverImageURL: req.CoverImgURL,
		Category:      category,
		IsPublic:      req.IsPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Step 3: Save to database
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	return prompt, nil
}

// =====================================================
// READS
// =====================================================

func (s *promptService) GetPrompt(ctx context.Context, id uuid.UUID, callerID string) (*model.Prompt, error) {
	prompt, err := s.promptRepo.GetVisible(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, model.ErrPromptNotFound) {
			return nil, model.NewPromptNotFoundError()
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return prompt, nil
}

func (s *promptService) GetPublicPrompt(ctx context.Context, id uuid.UUID) (*model.Prompt, error) {
	cacheKey := fmt.Sprintf(publicPromptCacheKey, id)

	var cached model.Prompt
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	prompt, err := s.promptRepo.GetPublic(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPromptNotFound) {
			return nil, model.NewPromptNotFoundError()
		}
		return nil, fmt.Errorf("failed to get public prompt: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, prompt, publicPromptCacheTTL); err != nil {
		logger.Warn("Failed to cache public prompt", map[string]interface{}{
			"prompt_id": id.String(),
			"error":     err.Error(),
		})
	}

	return prompt, nil
}

func (s *promptService) ListPrompts(ctx context.Context, callerID string, req model.ListPromptsRequest) ([]*model.Prompt, error) {
	category := strings.TrimSpace(req.Category)
	// "all" is the legacy client sentinel for "no category filter".
	if category == "all" {
		category = ""
	}

	filters := model.ListFilters{
		Tag:        strings.TrimSpace(req.Tag),
		Category:   category,
		Search:     strings.TrimSpace(req.Search),
		PublicOnly: req.PublicOnly,
	}

	prompts, err := s.promptRepo.List(ctx, callerID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	if prompts == nil {
		prompts = []*model.Prompt{}
	}
	return prompts, nil
}

// =====================================================
// MUTATIONS
// =====================================================

func (s *promptService) UpdatePrompt(ctx context.Context, id uuid.UUID, callerID string, req model.UpdatePromptRequest) error {
	// Step 1: Validate patch
	if err := req.Validate(); err != nil {
		return model.NewValidationError(err.Error())
	}

	patch := repository.UpdatePatch{
		Description: req.Description,
		Version:     req.Version,
		CoverImgURL: req.CoverImgURL,
		Category:    req.Category,
		IsPublic:    req.IsPublic,
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.NewValidationError("title must not be blank")
		}
		patch.Title = &title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return model.NewValidationError("content must not be blank")
		}
		patch.Content = &content
	}
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		patch.Tags = &tags
	}

	// Step 2: Apply as a single conditional statement
	matched, err := s.promptRepo.UpdateOwned(ctx, id, callerID, patch)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	if !matched {
		return s.classifyWriteMiss(ctx, id, callerID)
	}

	s.invalidatePublicCache(ctx, id)
	return nil
}

func (s *promptService) DeletePrompt(ctx context.Context, id uuid.UUID, callerID string) error {
	matched, err := s.promptRepo.DeleteOwned(ctx, id, callerID)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	if !matched {
		// Absent and not-owned collapse to NotFound so existence of other
		// users' private prompts never leaks through the delete route.
		return model.NewPromptNotFoundError()
	}

	s.invalidatePublicCache(ctx, id)
	return nil
}

func (s *promptService) PublishPrompt(ctx context.Context, id uuid.UUID, callerID string) error {
	matched, err := s.promptRepo.PublishOwned(ctx, id, callerID)
	if err != nil {
		return fmt.Errorf("failed to publish prompt: %w", err)
	}
	if !matched {
		return model.NewPromptNotFoundError()
	}

	s.invalidatePublicCache(ctx, id)
	return nil
}

// =====================================================
// HELPERS
// =====================================================

// classifyWriteMiss decides between Forbidden and NotFound after a
// conditional write matched no row. A prompt the caller can see but does
// not own is Forbidden; everything else stays NotFound.
func (s *promptService) classifyWriteMiss(ctx context.Context, id uuid.UUID, callerID string) error {
	if _, err := s.promptRepo.GetVisible(ctx, id, callerID); err == nil {
		return model.NewNotOwnerError()
	}
	return model.NewPromptNotFoundError()
}

func (s *promptService) invalidatePublicCache(ctx context.Context, id uuid.UUID) {
	cacheKey := fmt.Sprintf(publicPromptCacheKey, id)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("Failed to invalidate public prompt cache", map[string]interface{}{
			"prompt_id": id.String(),
			"error":     err.Error(),
		})
	}
}

// normalizeTags trims, drops empties, and deduplicates while preserving
// first-seen order. Prompts carry tags canonically as an ordered set.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
