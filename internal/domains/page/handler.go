package page

import (
	"errors"
	"time"

	"monument-backend/internal/shared/response"
	"monument-backend/internal/shared/utils"
	"monument-backend/pkg/cache"
	"monument-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cacheKeyPrefix = "page:public:"
	cachePattern   = cacheKeyPrefix + "*"
	cacheTTL       = 10 * time.Minute
)

type Handler struct {
	repo  Repository
	cache cache.Cache
}

func NewHandler(repo Repository, c cache.Cache) *Handler {
	return &Handler{repo: repo, cache: c}
}

func (h *Handler) PublicList(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}
	q.IsActive = "" // public callers cannot override visibility
	if err := q.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	f, err := q.toFilter()
	if err != nil {
		response.ValidationError(c, err)
		return
	}
	active := true
	f.IsActive = &active

	items, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]PublicItem, 0, len(items))
	for i := range items {
		out = append(out, toPublic(&items[i]))
	}
	response.List(c, total, out)
}

// PublicGet serves GET /pages/:slug, cached per slug. Cache failures
// degrade to the database.
func (h *Handler) PublicGet(c *gin.Context) {
	slug := c.Param("slug")
	key := cacheKeyPrefix + slug

	var cached PublicItem
	if hit, err := h.cache.Get(c.Request.Context(), key, &cached); err != nil {
		logger.Warn("page cache read failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	} else if hit {
		response.OK(c, cached)
		return
	}

	item, err := h.repo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !item.IsActive {
		response.NotFound(c)
		return
	}

	out := toPublic(item)
	if err := h.cache.Set(c.Request.Context(), key, out, cacheTTL); err != nil {
		logger.Warn("page cache write failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
	response.OK(c, out)
}

func (h *Handler) AdminList(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := q.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	f, err := q.toFilter()
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	items, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]AdminItem, 0, len(items))
	for i := range items {
		out = append(out, toAdmin(&items[i]))
	}
	response.List(c, total, out)
}

func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, toAdmin(item))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}

	item, err := h.repo.Create(c.Request.Context(), req, slug)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidate(c)
	response.Created(c, toAdmin(item))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidate(c)
	response.OK(c, toAdmin(item))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.invalidate(c)
	response.NoContent(c)
}

func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := h.repo.Reorder(c.Request.Context(), req.IDs); err != nil {
		h.fail(c, err)
		return
	}
	h.invalidate(c)
	response.OK(c, gin.H{"reordered": len(req.IDs)})
}

// invalidate drops every cached public page. Slug renames make
// per-slug invalidation unreliable, so the whole prefix goes.
func (h *Handler) invalidate(c *gin.Context) {
	if err := h.cache.DeletePattern(c.Request.Context(), cachePattern); err != nil {
		logger.Warn("page cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ValidationError(c, errors.New("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, ErrDuplicateSlug):
		response.Conflict(c, "duplicate_slug")
	default:
		logger.Error("page handler error", err)
		response.Internal(c)
	}
}
