package setting

import (
	"errors"
	"time"

	"monument-backend/internal/shared/response"
	"monument-backend/pkg/cache"
	"monument-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	publicMapKey = "settings:public"
	cacheTTL     = 5 * time.Minute
)

type Handler struct {
	repo  Repository
	cache cache.Cache
}

func NewHandler(repo Repository, c cache.Cache) *Handler {
	return &Handler{repo: repo, cache: c}
}

// PublicMap serves GET /settings as a flat key/value object holding
// only entries flagged public. Cached; cache failures degrade to the
// database.
func (h *Handler) PublicMap(c *gin.Context) {
	var cached map[string]string
	if hit, err := h.cache.Get(c.Request.Context(), publicMapKey, &cached); err != nil {
		logger.Warn("settings cache read failed", map[string]interface{}{"error": err.Error()})
	} else if hit {
		response.OK(c, cached)
		return
	}

	out, err := h.repo.PublicMap(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), publicMapKey, out, cacheTTL); err != nil {
		logger.Warn("settings cache write failed", map[string]interface{}{"error": err.Error()})
	}
	response.OK(c, out)
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]AdminItem, 0, len(items))
	for i := range items {
		out = append(out, toAdmin(&items[i]))
	}
	response.List(c, len(out), out)
}

func (h *Handler) AdminGet(c *gin.Context) {
	key := c.Param("key")
	if err := validateKey(key); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.repo.Get(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, toAdmin(item))
}

// Upsert serves PUT /admin/settings/:key. Creating and overwriting are
// the same operation.
func (h *Handler) Upsert(c *gin.Context) {
	key := c.Param("key")
	if err := validateKey(key); err != nil {
		response.ValidationError(c, err)
		return
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.repo.Upsert(c.Request.Context(), key, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidate(c)
	response.OK(c, toAdmin(item))
}

func (h *Handler) Delete(c *gin.Context) {
	key := c.Param("key")
	if err := validateKey(key); err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), key); err != nil {
		h.fail(c, err)
		return
	}
	h.invalidate(c)
	response.NoContent(c)
}

func (h *Handler) invalidate(c *gin.Context) {
	if err := h.cache.Delete(c.Request.Context(), publicMapKey); err != nil {
		logger.Warn("settings cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c)
		return
	}
	logger.Error("setting handler error", err)
	response.Internal(c)
}
