package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/models"
)

// ListJobs returns the state of all maintenance jobs.
func (h *Handler) ListJobs(c *gin.Context) {
	ok(c, "", h.engine.Jobs())
}

// GetJob returns the state of a single maintenance job.
func (h *Handler) GetJob(c *gin.Context) {
	info, err := h.engine.Job(c.Param("id"))
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	ok(c, "", info)
}

// RunJob triggers a maintenance job outside its schedule.
// The job runs in the background, poll GetJob for its outcome.
func (h *Handler) RunJob(c *gin.Context) {
	id := c.Param("id")
	if err := h.engine.RunJobNow(id); err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	info, err := h.engine.Job(id)
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusAccepted, models.Envelope{
		Success: true,
		Message: "Job triggered",
		Data:    info,
	})
}
