//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestJob(t *testing.T, jobType job.Type) *job.Job {
	t.Helper()
	j, err := job.New(job.NewParams{
		Type:    jobType,
		Payload: json.RawMessage(`{"passwordHash":"secret-hash"}`),
	}, testNow)
	require.NoError(t, err)
	return j
}

// fakeAuth stands in for AuthMiddleware.RequireAuth: any bearer token is
// accepted and maps to the given identity.
func fakeAuth(userID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}
