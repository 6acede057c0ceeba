package page

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	listFn    func(ctx context.Context, f Filter) ([]Page, int, error)
	getByID   func(ctx context.Context, id uuid.UUID) (*Page, error)
	getBySlug func(ctx context.Context, slug string) (*Page, error)
	createFn  func(ctx context.Context, req CreateRequest, slug string) (*Page, error)
	updateFn  func(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Page, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	reorderFn func(ctx context.Context, ids []uuid.UUID) error

	slugCalls int
}

func (m *mockRepository) List(ctx context.Context, f Filter) ([]Page, int, error) {
	return m.listFn(ctx, f)
}
func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	return m.getByID(ctx, id)
}
func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	m.slugCalls++
	return m.getBySlug(ctx, slug)
}
func (m *mockRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Page, error) {
	return m.createFn(ctx, req, slug)
}
func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Page, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return m.reorderFn(ctx, ids)
}

// memoryCache is an in-process stand-in for the redis cache.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

func strPtr(s string) *string { return &s }

func activePage() Page {
	return Page{
		ID:       uuid.New(),
		Title:    "Hakkımızda",
		Slug:     "hakkimizda",
		Content:  strPtr("İçerik"),
		IsActive: true,
	}
}

func setupRouter(repo Repository, c *memoryCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(repo, c)

	r := gin.New()
	r.GET("/pages/:slug", h.PublicGet)
	r.PATCH("/admin/pages/:id", h.Update)
	return r
}

func TestPublicGetCachesSecondRead(t *testing.T) {
	item := activePage()
	repo := &mockRepository{getBySlug: func(ctx context.Context, slug string) (*Page, error) {
		return &item, nil
	}}
	c := newMemoryCache()
	r := setupRouter(repo, c)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/pages/hakkimizda", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, repo.slugCalls, "second read must come from cache")
}

func TestPublicGetDoesNotCacheInactive(t *testing.T) {
	item := activePage()
	item.IsActive = false
	repo := &mockRepository{getBySlug: func(ctx context.Context, slug string) (*Page, error) {
		return &item, nil
	}}
	c := newMemoryCache()
	r := setupRouter(repo, c)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pages/hakkimizda", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, c.items)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	item := activePage()
	repo := &mockRepository{
		getBySlug: func(ctx context.Context, slug string) (*Page, error) {
			return &item, nil
		},
		updateFn: func(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Page, error) {
			updated := item
			updated.Title = *req.Title
			return &updated, nil
		},
	}
	c := newMemoryCache()
	r := setupRouter(repo, c)

	// Warm the cache.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/hakkimizda", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, c.items)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/pages/"+item.ID.String(),
		strings.NewReader(`{"title": "Yeni Başlık"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, c.items, "writes must drop cached public pages")
}
