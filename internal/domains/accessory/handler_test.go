package accessory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"monument-backend/internal/config"
	"monument-backend/internal/shared/media"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	listFn    func(ctx context.Context, f Filter) ([]Accessory, int, error)
	getByID   func(ctx context.Context, id int64) (*Accessory, error)
	getBySlug func(ctx context.Context, slug string) (*Accessory, error)
	createFn  func(ctx context.Context, req CreateRequest, slug string) (*Accessory, error)
	updateFn  func(ctx context.Context, id int64, req UpdateRequest) (*Accessory, error)
	deleteFn  func(ctx context.Context, id int64) error
	reorderFn func(ctx context.Context, ids []int64) error
	setImage  func(ctx context.Context, id int64, assetID *uuid.UUID) (*Accessory, error)
}

func (m *mockRepository) List(ctx context.Context, f Filter) ([]Accessory, int, error) {
	return m.listFn(ctx, f)
}
func (m *mockRepository) GetByID(ctx context.Context, id int64) (*Accessory, error) {
	return m.getByID(ctx, id)
}
func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*Accessory, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Accessory, error) {
	return m.createFn(ctx, req, slug)
}
func (m *mockRepository) Update(ctx context.Context, id int64, req UpdateRequest) (*Accessory, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepository) Reorder(ctx context.Context, ids []int64) error {
	return m.reorderFn(ctx, ids)
}
func (m *mockRepository) SetImage(ctx context.Context, id int64, assetID *uuid.UUID) (*Accessory, error) {
	return m.setImage(ctx, id, assetID)
}

func testResolver() *media.Resolver {
	return media.NewResolver(config.MediaConfig{APIBaseURL: "http://api.test"})
}

func setupRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(repo, testResolver())

	r := gin.New()
	r.GET("/accessories", h.PublicList)
	r.GET("/accessories/:idOrSlug", h.PublicGet)
	r.GET("/admin/accessories", h.AdminList)
	r.PATCH("/admin/accessories/:id/image", h.SetImage)
	return r
}

func strPtr(s string) *string { return &s }

func TestPublicListForcesActiveAndKeepsCategory(t *testing.T) {
	var seen Filter
	repo := &mockRepository{listFn: func(ctx context.Context, f Filter) ([]Accessory, int, error) {
		seen = f
		return nil, 0, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accessories?category=vazo&is_active=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vazo", seen.Category)
	require.NotNil(t, seen.IsActive)
	assert.True(t, *seen.IsActive, "public list must pin is_active regardless of the query")
}

func TestPublicListResolvesImages(t *testing.T) {
	withAsset := Accessory{
		ID: 1, Name: "Vazo", Slug: "vazo", Category: "vazo", IsActive: true,
		ImageURL:    strPtr("http://legacy/vazo.jpg"),
		AssetBucket: strPtr("monument"),
		AssetPath:   strPtr("accessories/vazo.jpg"),
	}
	legacyOnly := Accessory{
		ID: 2, Name: "Fener", Slug: "fener", Category: "fener", IsActive: true,
		ImageURL: strPtr("http://legacy/fener.jpg"),
	}

	repo := &mockRepository{listFn: func(ctx context.Context, f Filter) ([]Accessory, int, error) {
		return []Accessory{withAsset, legacyOnly}, 2, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accessories", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var items []PublicItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Image)
	assert.Equal(t, "http://api.test/storage/monument/accessories/vazo.jpg", *items[0].Image)
	require.NotNil(t, items[1].Image)
	assert.Equal(t, "http://legacy/fener.jpg", *items[1].Image)
}

func TestPublicListRejectsBadBoolean(t *testing.T) {
	repo := &mockRepository{listFn: func(ctx context.Context, f Filter) ([]Accessory, int, error) {
		t.Fatal("repository must not be called")
		return nil, 0, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	// Public list blanks is_active, so exercise the admin surface.
	req := httptest.NewRequest(http.MethodGet, "/admin/accessories?is_active=maybe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestPublicGetNumericParamLooksUpByID(t *testing.T) {
	item := Accessory{ID: 7, Name: "Vazo", Slug: "vazo", Category: "vazo", IsActive: true}
	repo := &mockRepository{getByID: func(ctx context.Context, id int64) (*Accessory, error) {
		assert.Equal(t, int64(7), id)
		return &item, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accessories/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetImageDetachesWithNull(t *testing.T) {
	item := Accessory{ID: 1, Name: "Vazo", Slug: "vazo", Category: "vazo", IsActive: true}
	var seen *uuid.UUID = &uuid.UUID{} // sentinel, must become nil
	repo := &mockRepository{setImage: func(ctx context.Context, id int64, assetID *uuid.UUID) (*Accessory, error) {
		seen = assetID
		return &item, nil
	}}
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/accessories/1/image",
		bytes.NewReader([]byte(`{"storage_asset_id": null}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, seen)
}

func TestSetImageUnknownAsset(t *testing.T) {
	repo := &mockRepository{setImage: func(ctx context.Context, id int64, assetID *uuid.UUID) (*Accessory, error) {
		return nil, ErrAssetNotFound
	}}
	r := setupRouter(repo)

	assetID := uuid.New()
	body, _ := json.Marshal(SetImageRequest{StorageAssetID: &assetID})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/accessories/1/image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "asset_not_found")
}
