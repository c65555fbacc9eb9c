package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/middleware"
	"github.com/jon4hz/funfacts/internal/api/models"
	"github.com/jon4hz/funfacts/internal/engine"
)

type Handler struct {
	engine *engine.Engine
}

func New(eng *engine.Engine) *Handler {
	return &Handler{
		engine: eng,
	}
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Fun Facts Generator API is running!"})
}

// Stats returns store statistics and the state of the maintenance jobs.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	ok(c, "", models.Stats{
		Stats: *stats,
		Cache: h.engine.CacheStats(),
		Jobs:  h.engine.Jobs(),
	})
}

func (h *Handler) avatar() models.AvatarFunc {
	return h.engine.Users.AvatarURL
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// fail writes the error envelope. notFoundStatus is used for ErrNotFound,
// mutations answer 400 and lookups 404.
func (h *Handler) fail(c *gin.Context, err error, notFoundStatus int) {
	status := statusFor(err, notFoundStatus)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "path", c.FullPath(), "request_id", middleware.GetRequestID(c), "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, models.Envelope{
		Success: false,
		Message: engine.Message(err),
	})
}

func statusFor(err error, notFoundStatus int) int {
	switch {
	case errors.Is(err, engine.ErrStore):
		return http.StatusInternalServerError
	case errors.Is(err, engine.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrNotFound):
		return notFoundStatus
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.Envelope{
		Success: false,
		Message: message,
	})
}

// bindJSON decodes the request body and answers 400 on malformed input.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		log.Debug("Invalid request body", "path", c.FullPath(), "error", err)
		badRequest(c, engine.Message(engine.RequestError(err)))
		return false
	}
	return true
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || raw == 0 {
		badRequest(c, "Invalid "+label)
		return 0, false
	}
	id, err := safecast.ToUint(raw)
	if err != nil {
		badRequest(c, "Invalid "+label)
		return 0, false
	}
	return id, true
}
