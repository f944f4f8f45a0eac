package api

import (
	"net/http"

	reqdto "gin-jobqueue/internal/handler/dto/request"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/usecase/queue"
	"gin-jobqueue/internal/worker"

	"github.com/gin-gonic/gin"
)

// WorkerStats is satisfied by *worker.Pool.
type WorkerStats interface {
	Stats() []worker.Stats
}

type QueueHandler struct {
	queue   queue.Service
	workers WorkerStats
}

func NewQueueHandler(queueSvc queue.Service, workers WorkerStats) *QueueHandler {
	return &QueueHandler{queue: queueSvc, workers: workers}
}

// @Summary Queue stats
// @Description Job counts per status (admin)
// @Tags queue
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queue.Stats
// @Failure 403 {object} httperr.Response
// @Router /queue/stats [get]
func (h *QueueHandler) Stats(c *gin.Context) {
	stats, err := h.queue.Stats(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, "Failed to load queue stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Clean up completed jobs
// @Description Delete completed jobs processed more than daysOld days ago (admin)
// @Tags queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CleanupRequest false "Retention in days, default 30"
// @Success 200 {object} resdto.CleanupResponse
// @Failure 400 {object} httperr.Response
// @Router /queue/cleanup [post]
func (h *QueueHandler) Cleanup(c *gin.Context) {
	var req reqdto.CleanupRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	deleted, err := h.queue.Cleanup(c.Request.Context(), req.Days())
	if err != nil {
		httperr.Abort(c, err, "Failed to clean up jobs")
		return
	}
	c.JSON(http.StatusOK, resdto.CleanupResponse{Message: "Cleanup completed", Deleted: deleted})
}

// @Summary Worker stats
// @Description Per-worker counters (admin)
// @Tags queue
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.WorkerStatsResponse
// @Router /queue/workers [get]
func (h *QueueHandler) Workers(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromWorkerStats(h.workers.Stats()))
}
