package faq

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	listFn    func(ctx context.Context, f Filter) ([]FAQ, int, error)
	getByID   func(ctx context.Context, id int64) (*FAQ, error)
	getBySlug func(ctx context.Context, slug string) (*FAQ, error)
	createFn  func(ctx context.Context, req CreateRequest, slug string) (*FAQ, error)
	updateFn  func(ctx context.Context, id int64, req UpdateRequest) (*FAQ, error)
	deleteFn  func(ctx context.Context, id int64) error
	reorderFn func(ctx context.Context, ids []int64) error
}

func (m *mockRepository) List(ctx context.Context, f Filter) ([]FAQ, int, error) {
	return m.listFn(ctx, f)
}
func (m *mockRepository) GetByID(ctx context.Context, id int64) (*FAQ, error) {
	return m.getByID(ctx, id)
}
func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*FAQ, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockRepository) Create(ctx context.Context, req CreateRequest, slug string) (*FAQ, error) {
	return m.createFn(ctx, req, slug)
}
func (m *mockRepository) Update(ctx context.Context, id int64, req UpdateRequest) (*FAQ, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepository) Reorder(ctx context.Context, ids []int64) error {
	return m.reorderFn(ctx, ids)
}

func setupRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(repo)

	r := gin.New()
	r.GET("/faqs", h.PublicList)
	r.GET("/faqs/:idOrSlug", h.PublicGet)
	r.GET("/admin/faqs", h.AdminList)
	r.POST("/admin/faqs", h.Create)
	r.PATCH("/admin/faqs/:id", h.Update)
	r.DELETE("/admin/faqs/:id", h.Delete)
	r.POST("/admin/faqs/reorder", h.Reorder)
	return r
}

func activeFAQ() FAQ {
	return FAQ{ID: 1, Question: "Teslimat süresi nedir?", Slug: "teslimat-suresi-nedir", Answer: "30 gün.", DisplayOrder: 1, IsActive: true}
}

func TestPublicListForcesActiveFilter(t *testing.T) {
	var seen Filter
	repo := &mockRepository{listFn: func(ctx context.Context, f Filter) ([]FAQ, int, error) {
		seen = f
		return []FAQ{activeFAQ()}, 1, nil
	}}
	r := setupRouter(repo)

	// The caller tries to see inactive rows; the handler must override.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/faqs?is_active=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen.IsActive)
	assert.True(t, *seen.IsActive)
	assert.Equal(t, "1", w.Header().Get("x-total-count"))

	var items []PublicItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "teslimat-suresi-nedir", items[0].Slug)
}

func TestPublicListRejectsOversizedLimit(t *testing.T) {
	repo := &mockRepository{listFn: func(ctx context.Context, f Filter) ([]FAQ, int, error) {
		t.Fatal("repository must not be called")
		return nil, 0, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/faqs?limit=1000", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestPublicGetHidesInactive(t *testing.T) {
	inactive := activeFAQ()
	inactive.IsActive = false

	repo := &mockRepository{getByID: func(ctx context.Context, id int64) (*FAQ, error) {
		return &inactive, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/faqs/1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestPublicGetBySlug(t *testing.T) {
	item := activeFAQ()
	repo := &mockRepository{getBySlug: func(ctx context.Context, slug string) (*FAQ, error) {
		assert.Equal(t, "teslimat-suresi-nedir", slug)
		return &item, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/faqs/teslimat-suresi-nedir", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminListPassesVisibilityFilterThrough(t *testing.T) {
	var seen Filter
	repo := &mockRepository{listFn: func(ctx context.Context, f Filter) ([]FAQ, int, error) {
		seen = f
		return nil, 0, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/faqs?is_active=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen.IsActive)
	assert.False(t, *seen.IsActive)
}

func TestCreateDerivesSlugFromQuestion(t *testing.T) {
	repo := &mockRepository{createFn: func(ctx context.Context, req CreateRequest, slug string) (*FAQ, error) {
		assert.Equal(t, "mezar-tasi-fiyatlari", slug)
		f := activeFAQ()
		f.Slug = slug
		return &f, nil
	}}
	r := setupRouter(repo)

	body, _ := json.Marshal(CreateRequest{Question: "Mezar Taşı Fiyatları", Answer: "Değişir."})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/faqs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateValidationFailure(t *testing.T) {
	repo := &mockRepository{createFn: func(ctx context.Context, req CreateRequest, slug string) (*FAQ, error) {
		t.Fatal("repository must not be called")
		return nil, nil
	}}
	r := setupRouter(repo)

	body, _ := json.Marshal(CreateRequest{Question: "", Answer: ""})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/faqs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestUpdateDuplicateSlugConflict(t *testing.T) {
	repo := &mockRepository{updateFn: func(ctx context.Context, id int64, req UpdateRequest) (*FAQ, error) {
		return nil, ErrDuplicateSlug
	}}
	r := setupRouter(repo)

	slug := "taken"
	body, _ := json.Marshal(UpdateRequest{Slug: &slug})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/faqs/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate_slug")
}

func TestDeleteNotFound(t *testing.T) {
	repo := &mockRepository{deleteFn: func(ctx context.Context, id int64) error {
		return ErrNotFound
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/faqs/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReorder(t *testing.T) {
	var seen []int64
	repo := &mockRepository{reorderFn: func(ctx context.Context, ids []int64) error {
		seen = ids
		return nil
	}}
	r := setupRouter(repo)

	body, _ := json.Marshal(ReorderRequest{IDs: []int64{3, 1, 2}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/faqs/reorder", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{3, 1, 2}, seen)
}

func TestReorderEmptyIDsRejected(t *testing.T) {
	repo := &mockRepository{reorderFn: func(ctx context.Context, ids []int64) error {
		t.Fatal("repository must not be called")
		return nil
	}}
	r := setupRouter(repo)

	body := []byte(`{"ids": []}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/faqs/reorder", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
