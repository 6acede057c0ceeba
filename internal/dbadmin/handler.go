package dbadmin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"monument-backend/internal/shared/response"
	"monument-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	admin *Admin
}

func NewHandler(admin *Admin) *Handler {
	return &Handler{admin: admin}
}

// Dump serves POST /admin/db/dump and streams the SQL back as a
// download.
func (h *Handler) Dump(c *gin.Context) {
	out, err := h.admin.Dump(c.Request.Context())
	if err != nil {
		logger.Error("database dump failed", err)
		response.Internal(c)
		return
	}

	filename := fmt.Sprintf("dump-%s.sql", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/sql", out)
}

// Restore serves POST /admin/db/restore with a multipart "file" field
// holding a plain or gzipped SQL dump.
func (h *Handler) Restore(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.ValidationError(c, errors.New("file field is required"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error("restore upload open failed", err)
		response.Internal(c)
		return
	}
	defer f.Close()

	if err := h.admin.Restore(c.Request.Context(), f); err != nil {
		logger.Error("database restore failed", err)
		response.Internal(c)
		return
	}
	response.OK(c, gin.H{"restored": fh.Filename})
}

func (h *Handler) Tables(c *gin.Context) {
	tables, err := h.admin.ListTables(c.Request.Context())
	if err != nil {
		logger.Error("table listing failed", err)
		response.Internal(c)
		return
	}
	response.OK(c, tables)
}
