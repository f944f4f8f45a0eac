package api

import (
	"net/http"

	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/usecase/queue"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	queue queue.Service
}

func NewJobHandler(queueSvc queue.Service) *JobHandler {
	return &JobHandler{queue: queueSvc}
}

// @Summary Get job
// @Description Poll the status of a queued write
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.JobResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	j, err := h.queue.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load job")
		return
	}
	c.JSON(http.StatusOK, resdto.FromJob(j))
}
