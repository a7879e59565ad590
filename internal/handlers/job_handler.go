package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgavril/condoflow-api/internal/jobs"
)

type JobHandler struct {
	worker *jobs.Worker
}

func NewJobHandler(worker *jobs.Worker) *JobHandler {
	return &JobHandler{worker: worker}
}

// Stats exposes the background worker's counters.
func (h *JobHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.worker.GetStats())
}
