package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/domains/tag/model"
	"promptvault-backend/internal/domains/tag/service"
	"promptvault-backend/internal/shared/response"
	"promptvault-backend/pkg/logger"
)

// =====================================================
// TAG HANDLER
// =====================================================

type TagHandler struct {
	tagService service.ServiceInterface
}

func NewTagHandler(tagService service.ServiceInterface) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// ListTags lists all tag names
// GET /api/v1/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	names, err := h.tagService.ListNames(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list tags", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, names)
}

// CreateTag registers a tag name, returning the existing row when the name
// is already taken
// POST /api/v1/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, created, err := h.tagService.GetOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		var tagErr *model.TagError
		if errors.As(err, &tagErr) {
			response.ErrorResponse(c, http.StatusBadRequest, tagErr.Code, tagErr.Message)
			return
		}
		logger.Error("Failed to create tag", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, tag)
}
