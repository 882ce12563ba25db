package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptvault-backend/internal/domains/tag/model"
)

type fakeTagService struct {
	tag     *model.Tag
	created bool
	names   []string
	err     error

	lastName string
}

func (f *fakeTagService) GetOrCreate(ctx context.Context, rawName string) (*model.Tag, bool, error) {
	f.lastName = rawName
	return f.tag, f.created, f.err
}

func (f *fakeTagService) ListNames(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

func tagRouter(svc *fakeTagService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTagHandler(svc)
	r := gin.New()
	r.GET("/tags", h.ListTags)
	r.POST("/tags", h.CreateTag)
	return r
}

func postTag(r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTag_NewNameIs201(t *testing.T) {
	svc := &fakeTagService{
		tag:     &model.Tag{ID: uuid.New(), Name: "golang", CreatedAt: time.Now()},
		created: true,
	}
	r := tagRouter(svc)

	w := postTag(r, map[string]any{"name": "golang"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "golang", svc.lastName)

	var payload struct {
		Success bool      `json:"success"`
		Data    model.Tag `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, "golang", payload.Data.Name)
}

func TestCreateTag_ExistingNameIs200(t *testing.T) {
	svc := &fakeTagService{
		tag:     &model.Tag{ID: uuid.New(), Name: "golang", CreatedAt: time.Now()},
		created: false,
	}
	r := tagRouter(svc)

	w := postTag(r, map[string]any{"name": "golang"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTag_BlankNameIs400(t *testing.T) {
	svc := &fakeTagService{}
	r := tagRouter(svc)

	w := postTag(r, map[string]any{"name": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastName, "validation failures must not reach the service")
}

func TestCreateTag_ServiceDomainErrorIs400(t *testing.T) {
	svc := &fakeTagService{err: model.NewEmptyTagNameError()}
	r := tagRouter(svc)

	w := postTag(r, map[string]any{"name": "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var payload struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.NotNil(t, payload.Error)
	assert.Equal(t, model.ErrCodeTagValidation, payload.Error.Code)
}

func TestCreateTag_StoreErrorIs500(t *testing.T) {
	svc := &fakeTagService{err: assert.AnError}
	r := tagRouter(svc)

	w := postTag(r, map[string]any{"name": "golang"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListTags_ReturnsNames(t *testing.T) {
	svc := &fakeTagService{names: []string{"ai", "golang"}}
	r := tagRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, []string{"ai", "golang"}, payload.Data)
}

func TestListTags_StoreErrorIs500(t *testing.T) {
	svc := &fakeTagService{err: assert.AnError}
	r := tagRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
