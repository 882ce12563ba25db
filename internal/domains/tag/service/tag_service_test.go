package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptvault-backend/internal/domains/tag/model"
)

// -------- test fakes --------

// fakeTagRepo mimics the store-level get-or-create contract: one row per
// distinct name, concurrent inserts converge on the first writer.
type fakeTagRepo struct {
	rows map[string]model.Tag
	err  error

	listNames []string
	listErr   error
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{rows: make(map[string]model.Tag)}
}

func (f *fakeTagRepo) GetOrCreate(ctx context.Context, tag *model.Tag) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if existing, ok := f.rows[tag.Name]; ok {
		*tag = existing
		return false, nil
	}
	f.rows[tag.Name] = *tag
	return true, nil
}

func (f *fakeTagRepo) ListNames(ctx context.Context) ([]string, error) {
	return f.listNames, f.listErr
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) Ping(ctx context.Context) error { return nil }

// -------- get-or-create --------

func TestGetOrCreate_IsIdempotent(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, newMemCache())

	first, created, err := svc.GetOrCreate(context.Background(), "golang")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.GetOrCreate(context.Background(), "golang")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID, "same name must yield the same tag identity")
	assert.Len(t, repo.rows, 1)
}

func TestGetOrCreate_TrimsName(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewTagService(repo, newMemCache())

	tag, created, err := svc.GetOrCreate(context.Background(), "  infra  ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "infra", tag.Name)

	// The trimmed form is the canonical identity.
	same, created, err := svc.GetOrCreate(context.Background(), "infra")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, same.ID)
}

func TestGetOrCreate_RejectsBlankName(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), newMemCache())

	for _, raw := range []string{"", "   ", "\t"} {
		_, _, err := svc.GetOrCreate(context.Background(), raw)

		var tagErr *model.TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, model.ErrCodeTagValidation, tagErr.Code)
	}
}

func TestGetOrCreate_NewNameInvalidatesListCache(t *testing.T) {
	repo := newFakeTagRepo()
	repo.listNames = []string{"old"}
	c := newMemCache()
	svc := NewTagService(repo, c)

	// Warm the listing cache.
	_, err := svc.ListNames(context.Background())
	require.NoError(t, err)
	_, cached := c.data[tagNamesCacheKey]
	require.True(t, cached)

	_, created, err := svc.GetOrCreate(context.Background(), "fresh")
	require.NoError(t, err)
	require.True(t, created)

	_, cached = c.data[tagNamesCacheKey]
	assert.False(t, cached, "new tag must evict the cached name list")
}

func TestGetOrCreate_PropagatesStoreErrors(t *testing.T) {
	repo := newFakeTagRepo()
	repo.err = errors.New("connection reset")
	svc := NewTagService(repo, newMemCache())

	_, _, err := svc.GetOrCreate(context.Background(), "golang")
	require.Error(t, err)

	var tagErr *model.TagError
	assert.False(t, errors.As(err, &tagErr), "store failures are not validation errors")
}

// -------- list --------

func TestListNames_ServesFromCacheOnSecondCall(t *testing.T) {
	repo := newFakeTagRepo()
	repo.listNames = []string{"a", "b"}
	svc := NewTagService(repo, newMemCache())

	first, err := svc.ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	repo.listErr = errors.New("db down")
	second, err := svc.ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, second)
}

func TestListNames_EmptyRegistryReturnsEmptySlice(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), newMemCache())

	names, err := svc.ListNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestGetOrCreate_AssignsIdentity(t *testing.T) {
	svc := NewTagService(newFakeTagRepo(), newMemCache())

	tag, _, err := svc.GetOrCreate(context.Background(), "ops")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tag.ID)
	assert.False(t, tag.CreatedAt.IsZero())
}
