package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gin-jobqueue/internal/handler/api"
	"gin-jobqueue/internal/handler/middleware"
	"gin-jobqueue/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth  *api.AuthHandler
	User  *api.UserHandler
	Movie *api.MovieHandler
	Job   *api.JobHandler
	Queue *api.QueueHandler
	Admin *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAdmin := authMiddleware.RequireAdmin()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.User.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.User.Update},
			})
		}

		movies := apiGroup.Group("/movies")
		movies.Use(authMiddleware.RequireAuth())
		{
			addRoutes(movies, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Movie.List},
				{Method: http.MethodPost, Path: "", Handler: h.Movie.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Movie.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Movie.Update, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		jobs := apiGroup.Group("/jobs")
		jobs.Use(authMiddleware.RequireAuth())
		{
			addRoutes(jobs, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Job.Get},
			})
		}

		queueGroup := apiGroup.Group("/queue")
		queueGroup.Use(authMiddleware.RequireAuth(), requireAdmin)
		{
			addRoutes(queueGroup, []route{
				{Method: http.MethodGet, Path: "/stats", Handler: h.Queue.Stats},
				{Method: http.MethodPost, Path: "/cleanup", Handler: h.Queue.Cleanup},
				{Method: http.MethodGet, Path: "/workers", Handler: h.Queue.Workers},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), requireAdmin)
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/stats", Handler: h.Admin.Stats},
				{Method: http.MethodGet, Path: "/users", Handler: h.Admin.ListUsers},
				{Method: http.MethodDelete, Path: "/users/:id", Handler: h.Admin.DeleteUser},
				{Method: http.MethodDelete, Path: "/movies/:id", Handler: h.Admin.DeleteMovie},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
