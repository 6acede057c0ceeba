package announcement

import (
	"errors"
	"time"

	"monument-backend/internal/shared/response"
	"monument-backend/internal/shared/utils"
	"monument-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// PublicList forces active+published+unexpired; callers cannot loosen it.
func (h *Handler) PublicList(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}
	q.IsActive, q.IsPublished, q.IncludeExpired = "", "", ""
	if err := q.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	f, err := q.toFilter()
	if err != nil {
		response.ValidationError(c, err)
		return
	}
	active, published := true, true
	f.IsActive = &active
	f.IsPublished = &published
	f.OnlyUnexpired = true

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

func (h *Handler) PublicGet(c *gin.Context) {
	param := c.Param("idOrSlug")

	var item *Announcement
	var err error
	if id, perr := uuid.Parse(param); perr == nil {
		item, err = h.repo.GetByID(c.Request.Context(), id)
	} else {
		item, err = h.repo.GetBySlug(c.Request.Context(), param)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if !item.visible(time.Now()) {
		response.NotFound(c)
		return
	}
	response.OK(c, toPublic(item))
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
	response.OK(c, toAdmin(item))
}

func (h *Handler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *Handler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *Handler) setPublished(c *gin.Context, published bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.repo.SetPublished(c.Request.Context(), id, published)
	if err != nil {
		h.fail(c, err)
		return
	}
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
	response.OK(c, gin.H{"reordered": len(req.IDs)})
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
		logger.Error("announcement handler error", err)
		response.Internal(c)
	}
}
