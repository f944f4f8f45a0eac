package api

import (
	"net/http"

	reqdto "gin-jobqueue/internal/handler/dto/request"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/usecase/commands"
	"gin-jobqueue/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	cmds commands.MovieCommands
	q    queries.MovieQueries
}

func NewMovieHandler(cmds commands.MovieCommands, q queries.MovieQueries) *MovieHandler {
	return &MovieHandler{cmds: cmds, q: q}
}

// @Summary List movies
// @Description List movies filtered by genre and release year
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param genre query string false "Genre"
// @Param year query int false "Release year"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {array} resdto.MovieResponse
// @Failure 400 {object} httperr.Response
// @Router /movies [get]
func (h *MovieHandler) List(c *gin.Context) {
	var q reqdto.ListMoviesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	views, err := h.q.List(c.Request.Context(), q.ToRequest())
	if err != nil {
		httperr.Abort(c, err, "Failed to list movies")
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovieViews(views))
}

// @Summary Get movie
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Success 200 {object} resdto.MovieResponse
// @Failure 404 {object} httperr.Response
// @Router /movies/{id} [get]
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load movie")
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovieView(view))
}

// @Summary Add movie
// @Description Queue a movie insert
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Deduplicates retried requests"
// @Param request body reqdto.CreateMovieRequest true "Movie"
// @Success 202 {object} resdto.AcceptedResponse
// @Failure 400 {object} httperr.Response
// @Router /movies [post]
func (h *MovieHandler) Create(c *gin.Context) {
	var req reqdto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	j, err := h.cmds.Create(c.Request.Context(), req.ToInput(idempotencyKey(c)))
	if err != nil {
		httperr.Abort(c, err, "Failed to queue movie")
		return
	}

	setJobID(c, j.ID())
	c.JSON(http.StatusAccepted, resdto.Accepted("Movie queued successfully", j))
}

// @Summary Update movie
// @Description Queue a partial movie update (admin)
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Param Idempotency-Key header string false "Deduplicates retried requests"
// @Param request body reqdto.UpdateMovieRequest true "Fields to change"
// @Success 202 {object} resdto.AcceptedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /movies/{id} [patch]
func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	j, err := h.cmds.Update(c.Request.Context(), id, req.ToInput(idempotencyKey(c)))
	if err != nil {
		httperr.Abort(c, err, "Failed to queue movie update")
		return
	}

	setJobID(c, j.ID())
	c.JSON(http.StatusAccepted, resdto.Accepted("Movie update queued successfully", j))
}
