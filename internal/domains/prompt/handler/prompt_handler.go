package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"promptvault-backend/internal/domains/prompt/model"
	"promptvault-backend/internal/domains/prompt/service"
	tagservice "promptvault-backend/internal/domains/tag/service"
	"promptvault-backend/internal/shared/middleware"
	"promptvault-backend/internal/shared/response"
	"promptvault-backend/pkg/logger"
)

// =====================================================
// PROMPT HANDLER
// =====================================================

type PromptHandler struct {
	promptService service.ServiceInterface
	tagService    tagservice.ServiceInterface
}

func NewPromptHandler(promptService service.ServiceInterface, tagService tagservice.ServiceInterface) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		tagService:    tagService,
	}
}

// CreatePrompt creates a new prompt
// POST /api/v1/prompts
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	// Step 1: Get caller ID
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	// Step 2: Bind request body
	var req model.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Register tag names in the shared registry. Registration is
	// not rolled back if the prompt insert fails afterwards.
	h.registerTags(c, req.Tags)

	// Step 4: Call service
	prompt, err := h.promptService.CreatePrompt(c.Request.Context(), callerID, req)
	if err != nil {
		h.respondPromptError(c, err)
		return
	}

	// Step 5: Return success
	response.Success(c, http.StatusCreated, prompt)
}

// ListPrompts lists visible prompts with filters
// GET /api/v1/prompts?tag=&category=&search=&public=
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	// Anonymous callers get public prompts only.
	callerID := middleware.CallerID(c)

	var req model.ListPromptsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	prompts, err := h.promptService.ListPrompts(c.Request.Context(), callerID, req)
	if err != nil {
		h.respondPromptError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, prompts, &response.Meta{Total: len(prompts)})
}

// GetPrompt fetches one prompt under the visibility rule
// GET /api/v1/prompts/:id
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	prompt, err := h.promptService.GetPrompt(c.Request.Context(), id, callerID)
	if err != nil {
		h.respondPromptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, prompt)
}

// UpdatePrompt applies a partial patch
// POST /api/v1/prompts/:id
// PUT  /api/v1/prompts/:id
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	var req model.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.promptService.UpdatePrompt(c.Request.Context(), id, callerID, req); err != nil {
		h.respondPromptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Prompt updated successfully"})
}

// DeletePrompt removes a prompt
// DELETE /api/v1/prompts/:id
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	if err := h.promptService.DeletePrompt(c.Request.Context(), id, callerID); err != nil {
		h.respondPromptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Prompt deleted successfully"})
}

// SharePrompt publishes a prompt for public read access
// POST /api/v1/prompts/:id/share
func (h *PromptHandler) SharePrompt(c *gin.Context) {
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	if err := h.promptService.PublishPrompt(c.Request.Context(), id, callerID); err != nil {
		h.respondPromptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Prompt shared successfully"})
}

// GetSharedPrompt fetches a public prompt without authentication
// GET /api/v1/share/:id
func (h *PromptHandler) GetSharedPrompt(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	prompt, err := h.promptService.GetPublicPrompt(c.Request.Context(), id)
	if err != nil {
		h.respondPromptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, prompt)
}

// =====================================================
// HELPERS
// =====================================================

// registerTags records each tag name in the shared registry. Registry
// failures do not block the prompt operation; the prompt row carries its
// own tag set.
func (h *PromptHandler) registerTags(c *gin.Context, tags []string) {
	for _, name := range tags {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, _, err := h.tagService.GetOrCreate(c.Request.Context(), name); err != nil {
			logger.Warn("Failed to register tag", map[string]interface{}{
				"tag":   name,
				"error": err.Error(),
			})
		}
	}
}

func parsePromptID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Prompt not found")
		return uuid.Nil, false
	}
	return id, true
}

// respondPromptError maps domain errors to HTTP statuses. Internal failures
// are logged with their cause but surface a generic message.
func (h *PromptHandler) respondPromptError(c *gin.Context, err error) {
	var promptErr *model.PromptError
	if errors.As(err, &promptErr) {
		switch promptErr.Code {
		case model.ErrCodePromptNotFound:
			response.ErrorResponse(c, http.StatusNotFound, promptErr.Code, promptErr.Message)
		case model.ErrCodeNotOwner:
			response.ErrorResponse(c, http.StatusForbidden, promptErr.Code, promptErr.Message)
		case model.ErrCodeValidation:
			response.ErrorResponse(c, http.StatusBadRequest, promptErr.Code, promptErr.Message)
		case model.ErrCodeUnauthorized:
			response.ErrorResponse(c, http.StatusUnauthorized, promptErr.Code, promptErr.Message)
		default:
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	logger.Error("Prompt operation failed", err)
	response.InternalServerError(c, "Internal server error")
}
