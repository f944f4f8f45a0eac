package api

import (
	"net/http"

	reqdto "gin-jobqueue/internal/handler/dto/request"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/commands"
	"gin-jobqueue/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errEmptyPatch = errs.Mark(errs.New("no fields to update"), errs.ErrValidation)

type UserHandler struct {
	cmds commands.UserCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary Get user
// @Description Get a user profile; callers may read their own profile, admins any
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !a.CanActOn(id) {
		httperr.Abort(c, commands.ErrForbidden, "")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserView(view))
}

// @Summary Update user
// @Description Queue a partial profile update; role changes are admin only
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param Idempotency-Key header string false "Deduplicates retried requests"
// @Param request body reqdto.UpdateUserRequest true "Fields to change"
// @Success 202 {object} resdto.AcceptedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if req.IsEmpty() {
		httperr.Abort(c, errEmptyPatch, "")
		return
	}

	j, err := h.cmds.Update(c.Request.Context(), a, id, req.ToInput(idempotencyKey(c)))
	if err != nil {
		httperr.Abort(c, err, "Failed to queue user update")
		return
	}

	setJobID(c, j.ID())
	c.JSON(http.StatusAccepted, resdto.Accepted("User update queued successfully", j))
}
