package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/domains/asset/model"
	"promptvault-backend/internal/domains/asset/service"
	"promptvault-backend/internal/shared/middleware"
	"promptvault-backend/internal/shared/response"
	"promptvault-backend/pkg/logger"
)

// =====================================================
// ASSET HANDLER
// =====================================================

type AssetHandler struct {
	assetService service.ServiceInterface
}

func NewAssetHandler(assetService service.ServiceInterface) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Upload stores a multipart file under the caller's folder
// POST /api/v1/upload
func (h *AssetHandler) Upload(c *gin.Context) {
	// Step 1: Get caller ID
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	// Step 2: Read the multipart file field
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondAssetError(c, model.NewMissingFileError())
		return
	}

	opened, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		logger.Error("Failed to read uploaded file", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	// Step 3: Call service
	asset, err := h.assetService.Upload(c.Request.Context(), callerID, model.UploadFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Data:        data,
	})
	if err != nil {
		h.respondAssetError(c, err)
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusCreated, asset)
}

// List enumerates the caller's stored assets
// GET /api/v1/upload?folder=&limit=
func (h *AssetHandler) List(c *gin.Context) {
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	folder := c.Query("folder")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	assets, err := h.assetService.List(c.Request.Context(), callerID, folder, limit)
	if err != nil {
		h.respondAssetError(c, err)
		return
	}

	response.Success(c, http.StatusOK, assets)
}

// Remove deletes one of the caller's assets
// DELETE /api/v1/upload?path=
func (h *AssetHandler) Remove(c *gin.Context) {
	callerID, ok := middleware.MustCallerID(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if path == "" {
		response.BadRequest(c, "path query parameter is required")
		return
	}

	if err := h.assetService.Remove(c.Request.Context(), callerID, path); err != nil {
		h.respondAssetError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// =====================================================
// HELPERS
// =====================================================

func (h *AssetHandler) respondAssetError(c *gin.Context, err error) {
	var assetErr *model.AssetError
	if errors.As(err, &assetErr) {
		switch assetErr.Code {
		case model.ErrCodePathForbidden:
			response.ErrorResponse(c, http.StatusForbidden, assetErr.Code, assetErr.Message)
		case model.ErrCodeInvalidFileType, model.ErrCodeFileTooLarge, model.ErrCodeMissingFile:
			response.ErrorResponse(c, http.StatusBadRequest, assetErr.Code, assetErr.Message)
		default:
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	logger.Error("Asset operation failed", err)
	response.InternalServerError(c, "Internal server error")
}
