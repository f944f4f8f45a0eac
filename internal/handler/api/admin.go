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

type AdminHandler struct {
	cmds   commands.AdminCommands
	q      queries.AdminQueries
	usersQ queries.UserQueries
}

func NewAdminHandler(cmds commands.AdminCommands, q queries.AdminQueries, usersQ queries.UserQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q, usersQ: usersQ}
}

// @Summary Admin stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AdminStatsResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.q.Stats(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, "Failed to fetch admin stats")
		return
	}
	c.JSON(http.StatusOK, resdto.FromAdminStats(stats))
}

// @Summary List users
// @Description Newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (1-100), default 20"
// @Success 200 {object} resdto.UserListResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q reqdto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	if q.Limit == 0 {
		q.Limit = reqdto.DefaultUserPageSize
	}

	page, err := h.usersQ.List(c.Request.Context(), queries.PageRequest{Page: q.Page, Limit: q.Limit})
	if err != nil {
		httperr.Abort(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserPage(page))
}

// @Summary Delete user
// @Description Admin accounts and the caller's own account cannot be deleted
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.DeleteUser(c.Request.Context(), a, id); err != nil {
		httperr.Abort(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete movie
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/movies/{id} [delete]
func (h *AdminHandler) DeleteMovie(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.DeleteMovie(c.Request.Context(), a, id); err != nil {
		httperr.Abort(c, err, "Failed to delete movie")
		return
	}
	c.Status(http.StatusNoContent)
}
