package asset

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"monument-backend/internal/infrastructure/storage"
	"monument-backend/internal/shared/media"
	"monument-backend/internal/shared/response"
	"monument-backend/internal/shared/utils"
	"monument-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

type Handler struct {
	repo     Repository
	store    *storage.MinIOStorage
	resolver *media.Resolver
}

func NewHandler(repo Repository, store *storage.MinIOStorage, resolver *media.Resolver) *Handler {
	return &Handler{repo: repo, store: store, resolver: resolver}
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

	items, total, err := h.repo.List(c.Request.Context(), q.toFilter())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]AdminItem, 0, len(items))
	for i := range items {
		out = append(out, toAdmin(&items[i], h.resolver))
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
	response.OK(c, toAdmin(item, h.resolver))
}

// Upload serves POST /admin/storage/upload: a multipart form with a
// "file" field and optional "bucket" and "path" overrides. The object
// lands in storage and a tracked asset row comes back.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.ValidationError(c, errors.New("file field is required"))
		return
	}

	bucket := c.PostForm("bucket")
	if bucket == "" {
		bucket = h.store.DefaultBucket()
	}
	key := c.PostForm("path")
	if key == "" {
		key = objectKey(fh.Filename)
	} else if !pathPattern.MatchString(key) {
		response.ValidationError(c, errors.New("path is not a valid object key"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if err := h.store.Upload(c.Request.Context(), bucket, key, f, fh.Size, contentType); err != nil {
		h.fail(c, err)
		return
	}

	rec := Record{Bucket: bucket, Path: key, SizeBytes: fh.Size}
	if contentType != "" {
		rec.ContentType = &contentType
	}

	item, err := h.repo.Create(c.Request.Context(), rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, toAdmin(item, h.resolver))
}

// SignPut serves POST /admin/storage/sign: registers the asset row and
// hands back a presigned PUT URL the browser uploads to directly.
func (h *Handler) SignPut(c *gin.Context) {
	var req SignPutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = h.store.DefaultBucket()
	}

	uploadURL, err := h.store.PresignedPut(c.Request.Context(), bucket, req.Path, presignExpiry)
	if err != nil {
		h.fail(c, err)
		return
	}

	item, err := h.repo.Create(c.Request.Context(), Record{
		Bucket:      bucket,
		Path:        req.Path,
		ContentType: req.ContentType,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Created(c, SignPutResponse{
		Asset:     toAdmin(item, h.resolver),
		UploadURL: uploadURL,
	})
}

// SignMultipart serves POST /admin/storage/sign-multipart for large
// files. No asset row exists until the upload completes.
func (h *Handler) SignMultipart(c *gin.Context) {
	var req SignMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = h.store.DefaultBucket()
	}
	contentType := ""
	if req.ContentType != nil {
		contentType = *req.ContentType
	}

	uploadID, err := h.store.NewMultipartUpload(c.Request.Context(), bucket, req.Path, contentType)
	if err != nil {
		h.fail(c, err)
		return
	}

	urls, err := h.store.PresignedPartURLs(c.Request.Context(), bucket, req.Path, uploadID, req.Parts, presignExpiry)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, SignMultipartResponse{UploadID: uploadID, PartURLs: urls})
}

// CompleteMultipart serves POST /admin/storage/complete: stitches the
// uploaded parts together and registers the asset row.
func (h *Handler) CompleteMultipart(c *gin.Context) {
	var req CompleteMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = h.store.DefaultBucket()
	}

	if err := h.store.CompleteMultipartUpload(c.Request.Context(), bucket, req.Path, req.UploadID, req.ETags); err != nil {
		h.fail(c, err)
		return
	}

	item, err := h.repo.Create(c.Request.Context(), Record{
		Bucket:      bucket,
		Path:        req.Path,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, toAdmin(item, h.resolver))
}

// Delete removes the row first so a referenced asset fails fast, then
// best-effort removes the object.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.store.Delete(c.Request.Context(), item.Bucket, item.Path); err != nil {
		logger.Warn("asset object removal failed", map[string]interface{}{
			"bucket": item.Bucket, "path": item.Path, "error": err.Error(),
		})
	}
	response.NoContent(c)
}

// Serve streams GET /storage/:bucket/*path straight from object
// storage.
func (h *Handler) Serve(c *gin.Context) {
	bucket := c.Param("bucket")
	key := strings.TrimPrefix(c.Param("path"), "/")
	if bucket == "" || key == "" || strings.Contains(key, "..") {
		response.NotFound(c)
		return
	}

	obj, info, err := h.store.Get(c.Request.Context(), bucket, key)
	if err != nil {
		response.NotFound(c)
		return
	}
	defer obj.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size, contentType, obj, map[string]string{
		"Cache-Control": "public, max-age=3600",
	})
}

// objectKey builds a collision-safe key from the uploaded filename.
func objectKey(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return fmt.Sprintf("uploads/%s-%s%s", utils.GenerateSlug(base), uuid.New().String()[:8], ext)
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
	case errors.Is(err, ErrInUse):
		response.Conflict(c, "asset_in_use")
	default:
		logger.Error("asset handler error", err)
		response.Internal(c)
	}
}
