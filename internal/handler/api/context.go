package api

import (
	"net/http"
	"strings"

	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/handler/middleware"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

var errUnauthenticated = errs.Mark(errs.New("unauthenticated"), errs.ErrUnauthorized)

func idempotencyKey(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(idempotencyHeader))
}

// actor aborts with 401 when the auth middleware did not run.
func actor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return commands.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return commands.Actor{}, false
	}
	return commands.Actor{ID: userID, Role: role}, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func setJobID(c *gin.Context, id uuid.UUID) {
	c.Set(middleware.CtxJobIDKey, id.String())
}
