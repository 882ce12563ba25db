package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptvault-backend/internal/domains/asset/model"
	"promptvault-backend/internal/shared/middleware"
)

type fakeAssetService struct {
	asset  *model.Asset
	assets []model.Asset
	err    error

	lastOwner  string
	lastFile   model.UploadFile
	lastFolder string
	lastLimit  int
	lastPath   string
}

func (f *fakeAssetService) Upload(ctx context.Context, ownerID string, file model.UploadFile) (*model.Asset, error) {
	f.lastOwner = ownerID
	f.lastFile = file
	return f.asset, f.err
}

func (f *fakeAssetService) Remove(ctx context.Context, ownerID, path string) error {
	f.lastOwner = ownerID
	f.lastPath = path
	return f.err
}

func (f *fakeAssetService) List(ctx context.Context, ownerID, folder string, limit int) ([]model.Asset, error) {
	f.lastOwner = ownerID
	f.lastFolder = folder
	f.lastLimit = limit
	return f.assets, f.err
}

func assetRouter(svc *fakeAssetService, callerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAssetHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if callerID != "" {
			c.Set(middleware.CallerIDKey, callerID)
		}
		c.Next()
	})
	r.POST("/upload", h.Upload)
	r.GET("/upload", h.List)
	r.DELETE("/upload", h.Remove)
	return r
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// -------- upload --------

func TestUpload_StoresMultipartFile(t *testing.T) {
	svc := &fakeAssetService{asset: &model.Asset{
		Name:      "cover.png",
		Path:      "user-1/1700000000000_cover.png",
		PublicURL: "http://localhost:9000/prompt-vault/user-1/1700000000000_cover.png",
	}}
	r := assetRouter(svc, "user-1")

	body, contentType := multipartUpload(t, "cover.png", "image/png", []byte("png-bytes"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", svc.lastOwner)
	assert.Equal(t, "cover.png", svc.lastFile.Name)
	assert.Equal(t, "image/png", svc.lastFile.ContentType)
	assert.Equal(t, []byte("png-bytes"), svc.lastFile.Data)

	var payload struct {
		Success bool        `json:"success"`
		Data    model.Asset `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, svc.asset.Path, payload.Data.Path)
}

func TestUpload_MissingFileFieldIs400(t *testing.T) {
	svc := &fakeAssetService{}
	r := assetRouter(svc, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var payload struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.NotNil(t, payload.Error)
	assert.Equal(t, model.ErrCodeMissingFile, payload.Error.Code)
}

func TestUpload_ValidationErrorsAre400(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		wantCode string
	}{
		{"bad type", model.NewInvalidFileTypeError(), model.ErrCodeInvalidFileType},
		{"too large", model.NewFileTooLargeError(50 * 1024 * 1024), model.ErrCodeFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssetService{err: tt.svcErr}
			r := assetRouter(svc, "user-1")

			body, contentType := multipartUpload(t, "f.bin", "application/octet-stream", []byte("x"))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var payload struct {
				Error *struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			require.NotNil(t, payload.Error)
			assert.Equal(t, tt.wantCode, payload.Error.Code)
		})
	}
}

func TestUpload_AnonymousIs401(t *testing.T) {
	svc := &fakeAssetService{}
	r := assetRouter(svc, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.lastOwner)
}

// -------- list --------

func TestList_ForwardsFolderAndLimit(t *testing.T) {
	svc := &fakeAssetService{assets: []model.Asset{{Name: "a.png", Path: "user-1/a.png"}}}
	r := assetRouter(svc, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/upload?folder=user-1/covers&limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1/covers", svc.lastFolder)
	assert.Equal(t, 5, svc.lastLimit)
}

func TestList_ForeignFolderIs403(t *testing.T) {
	svc := &fakeAssetService{err: model.NewPathForbiddenError()}
	r := assetRouter(svc, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/upload?folder=user-2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// -------- remove --------

func TestRemove_MissingPathIs400(t *testing.T) {
	svc := &fakeAssetService{}
	r := assetRouter(svc, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastPath, "service must not be reached without a path")
}

func TestRemove_ForbiddenPathIs403(t *testing.T) {
	svc := &fakeAssetService{err: model.NewPathForbiddenError()}
	r := assetRouter(svc, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/upload?path=user-2/file.png", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRemove_OwnedPathSucceeds(t *testing.T) {
	svc := &fakeAssetService{}
	r := assetRouter(svc, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/upload?path=user-1/file.png", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1/file.png", svc.lastPath)
	assert.Equal(t, "user-1", svc.lastOwner)
}
