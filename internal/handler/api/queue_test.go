//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"gin-jobqueue/internal/handler/api"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/testutil/httptest"
	queuemock "gin-jobqueue/internal/testutil/mock/queue"
	"gin-jobqueue/internal/usecase/queue"
	"gin-jobqueue/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type stubWorkers []worker.Stats

func (s stubWorkers) Stats() []worker.Stats { return s }

type QueueHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockSvc  *queuemock.MockService
}

func (s *QueueHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSvc = queuemock.NewMockService(s.mockCtrl)
	h := api.NewQueueHandler(s.mockSvc, stubWorkers{
		{Name: "worker-1", State: worker.StateSleeping, Processed: 4, Errors: 1, SuccessRate: 75},
		{Name: "worker-2", State: worker.StateIdle},
	})

	s.router.GET("/queue/stats", h.Stats)
	s.router.POST("/queue/cleanup", h.Cleanup)
	s.router.GET("/queue/workers", h.Workers)
}

func (s *QueueHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQueueHandlerSuite(t *testing.T) {
	suite.Run(t, new(QueueHandlerTestSuite))
}

func (s *QueueHandlerTestSuite) TestStats() {
	s.mockSvc.EXPECT().Stats(gomock.Any()).Return(queue.Stats{Pending: 3, Processing: 1, Completed: 10, Failed: 2}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/queue/stats", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"pending":3,"processing":1,"completed":10,"failed":2}`, rec.Body.String())
}

func (s *QueueHandlerTestSuite) TestCleanup() {
	s.Run("正常系: ボディなしは30日", func() {
		s.mockSvc.EXPECT().Cleanup(gomock.Any(), 30).Return(int64(5), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/queue/cleanup", nil, "")

		var body resdto.CleanupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(5), body.Deleted)
	})

	s.Run("正常系: daysOld指定", func() {
		s.mockSvc.EXPECT().Cleanup(gomock.Any(), 0).Return(int64(12), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/queue/cleanup", map[string]any{"daysOld": 0}, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("異常系: 負の日数は400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/queue/cleanup", map[string]any{"daysOld": -1}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("異常系: ストアエラーは500", func() {
		s.mockSvc.EXPECT().Cleanup(gomock.Any(), 30).Return(int64(0), errs.Mark(errs.New("boom"), errs.ErrStore))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/queue/cleanup", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to clean up jobs")
	})
}

func (s *QueueHandlerTestSuite) TestWorkers() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/queue/workers", nil, "")

	var body []resdto.WorkerStatsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal("worker-1", body[0].Name)
	s.Equal("sleeping", body[0].State)
	s.InDelta(75.0, body[0].SuccessRate, 0.001)
	s.Zero(body[1].SuccessRate)
}
