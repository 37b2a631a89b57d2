package api

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
	"github.com/kurihiro0119/github-org-pages/internal/storage"
)

// Handler serves the generated page and the run archive
type Handler struct {
	indexPath string
	storage   storage.Storage
}

// NewHandler creates a new API handler.
// store may be nil, in which case the archive endpoints answer 404.
func NewHandler(indexPath string, store storage.Storage) *Handler {
	return &Handler{
		indexPath: indexPath,
		storage:   store,
	}
}

// GetIndex returns the generated index document
// GET /
func (h *Handler) GetIndex(c *gin.Context) {
	data, err := os.ReadFile(h.indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		respondError(c, apperrors.NewNotFoundError(h.indexPath))
		return
	}
	if err != nil {
		respondError(c, apperrors.NewIOError("failed to read "+h.indexPath, err))
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", data)
}

// GetRuns returns the archived runs of an organization
// GET /api/v1/orgs/:org/runs
func (h *Handler) GetRuns(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}
	org := c.Param("org")
	limit, err := parseIntQuery(c, "limit", 20)
	if err != nil {
		respondError(c, err)
		return
	}

	runs, err := h.storage.GetRuns(c.Request.Context(), org, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
	})
}

// GetRun returns a single archived run
// GET /api/v1/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	run, err := h.storage.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": run,
	})
}

// GetRunRepositories returns the repositories rendered by a run
// GET /api/v1/runs/:id/repos
func (h *Handler) GetRunRepositories(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	repos, err := h.storage.GetRunRepositories(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": repos,
	})
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"archive": h.storage != nil,
	})
}

func (h *Handler) requireStorage(c *gin.Context) bool {
	if h.storage == nil {
		respondError(c, apperrors.NewNotFoundError("archive"))
		return false
	}
	return true
}

// parseIntQuery reads a non-negative integer query parameter
func parseIntQuery(c *gin.Context, key string, defaultValue int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("invalid %s %q: must be a non-negative integer", key, v))
	}
	return i, nil
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeFetch:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
}
