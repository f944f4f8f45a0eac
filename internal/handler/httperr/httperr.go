package httperr

import (
	"net/http"

	"gin-jobqueue/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort derives the status from the error taxonomy. Client errors expose the
// root cause text; server errors only ever show fallback.
func Abort(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	var msg string
	switch {
	case status == http.StatusNotFound:
		msg = "Not found"
	case status < http.StatusInternalServerError:
		msg = errs.Cause(err).Error()
	default:
		msg = fallback
	}
	AbortWithError(c, status, err, msg, nil)
}

func StatusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrUnauthorized:
		return http.StatusUnauthorized
	case errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrState, errs.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
