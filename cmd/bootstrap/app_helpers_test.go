//go:build unit || e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gin-jobqueue/cmd/bootstrap"
	"gin-jobqueue/cmd/bootstrap/components"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/testutil/httptest"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type testApp struct {
	router *gin.Engine
	uow    shared.UnitOfWork
}

// startApp boots the full graph, worker pool included, against cfg.
func startApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var a testApp
	app := fx.New(
		fx.Provide(func() config.Config { return cfg }),
		bootstrap.ConfigPartsOption,
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.JWTModule,
		bootstrap.MetricsModule,
		components.UseCaseModule,
		components.HandlerModule,
		bootstrap.WorkerModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		fx.Populate(&a.router, &a.uow),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		assert.NoError(t, app.Stop(stopCtx))
	})
	return &a
}

func (a *testApp) promote(t *testing.T, email string) {
	t.Helper()
	e, err := user.NewEmail(email)
	require.NoError(t, err)
	require.NoError(t, a.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByEmail(ctx, e)
		if err != nil {
			return err
		}
		p := u.Props()
		p.Role = user.RoleAdmin
		if err := u.Update(p, time.Now()); err != nil {
			return err
		}
		return tx.Users().Update(ctx, u)
	}))
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	require.Eventually(t, func() bool {
		rec := httptest.PerformRequest(t, a.router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": email, "password": password}, "")
		if rec.Code != http.StatusOK {
			return false
		}
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		return true
	}, 5*time.Second, 50*time.Millisecond, "login for %s never succeeded", email)
	return body.Token
}

func (a *testApp) awaitJob(t *testing.T, token, jobID, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		rec := httptest.PerformRequest(t, a.router, http.MethodGet, "/api/jobs/"+jobID, nil, token)
		var body struct {
			Status string `json:"status"`
		}
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		return body.Status == want
	}, 5*time.Second, 50*time.Millisecond, "job %s never reached %s", jobID, want)
}

// runDeferredWriteFlow drives register, login, movie writes and the admin
// queue endpoints through the real router and worker pool.
func runDeferredWriteFlow(t *testing.T, a *testApp) {
	t.Helper()

	var accepted struct {
		Message string `json:"message"`
		JobID   string `json:"jobId"`
	}
	rec := httptest.PerformRequest(t, a.router, http.MethodPost, "/api/auth/register",
		map[string]string{"username": "alice", "email": "alice@example.com", "password": "secret1"}, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusAccepted, &accepted)
	require.NotEmpty(t, accepted.JobID)

	aliceToken := a.login(t, "alice@example.com", "secret1")
	a.awaitJob(t, aliceToken, accepted.JobID, "completed")

	rec = httptest.PerformRequest(t, a.router, http.MethodPost, "/api/auth/register",
		map[string]string{"username": "alice2", "email": "alice@example.com", "password": "secret1"}, "")
	httptest.AssertErrorResponse(t, rec, http.StatusConflict, "already exists")

	rec = httptest.PerformRequest(t, a.router, http.MethodGet, "/api/queue/stats", nil, aliceToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.PerformRequest(t, a.router, http.MethodPost, "/api/auth/register",
		map[string]string{"username": "root", "email": "root@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	a.login(t, "root@example.com", "secret1")
	a.promote(t, "root@example.com")
	adminToken := a.login(t, "root@example.com", "secret1")

	rec = httptest.PerformRequest(t, a.router, http.MethodPost, "/api/movies",
		map[string]any{"title": "Alien", "genre": []string{"sf"}, "releaseYear": 1979}, aliceToken,
		httptest.WithHeader("Idempotency-Key", "alien-1"))
	httptest.AssertSuccessResponse(t, rec, http.StatusAccepted, &accepted)
	movieJob := accepted.JobID

	rec = httptest.PerformRequest(t, a.router, http.MethodPost, "/api/movies",
		map[string]any{"title": "Alien", "genre": []string{"sf"}, "releaseYear": 1979}, aliceToken,
		httptest.WithHeader("Idempotency-Key", "alien-1"))
	httptest.AssertSuccessResponse(t, rec, http.StatusAccepted, &accepted)
	assert.Equal(t, movieJob, accepted.JobID)

	a.awaitJob(t, aliceToken, movieJob, "completed")

	var movies []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	rec = httptest.PerformRequest(t, a.router, http.MethodGet, "/api/movies?genre=sf&year=1979", nil, aliceToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &movies)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alien", movies[0].Title)

	rec = httptest.PerformRequest(t, a.router, http.MethodPatch, "/api/movies/"+movies[0].ID,
		map[string]any{"averageRating": 8.5}, aliceToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.PerformRequest(t, a.router, http.MethodPatch, "/api/movies/"+movies[0].ID,
		map[string]any{"averageRating": 8.5}, adminToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusAccepted, &accepted)
	a.awaitJob(t, adminToken, accepted.JobID, "completed")

	var stats struct {
		Pending   int64 `json:"pending"`
		Completed int64 `json:"completed"`
	}
	rec = httptest.PerformRequest(t, a.router, http.MethodGet, "/api/queue/stats", nil, adminToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &stats)
	assert.Equal(t, int64(4), stats.Completed)
	assert.Zero(t, stats.Pending)

	var workers []struct {
		Name      string `json:"name"`
		Processed int64  `json:"processed"`
	}
	rec = httptest.PerformRequest(t, a.router, http.MethodGet, "/api/queue/workers", nil, adminToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &workers)
	require.NotEmpty(t, workers)

	var adminStats struct {
		TotalUsers  int64 `json:"totalUsers"`
		TotalMovies int64 `json:"totalMovies"`
	}
	rec = httptest.PerformRequest(t, a.router, http.MethodGet, "/api/admin/stats", nil, adminToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &adminStats)
	assert.Equal(t, int64(2), adminStats.TotalUsers)
	assert.Equal(t, int64(1), adminStats.TotalMovies)

	rec = httptest.PerformRequest(t, a.router, http.MethodDelete, "/api/admin/movies/"+movies[0].ID, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.PerformRequest(t, a.router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
