//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: errs.Mark(errs.New("bad"), errs.ErrValidation), want: http.StatusBadRequest},
		{name: "unauthorized", err: errs.Mark(errs.New("who"), errs.ErrUnauthorized), want: http.StatusUnauthorized},
		{name: "forbidden", err: errs.Mark(errs.New("no"), errs.ErrForbidden), want: http.StatusForbidden},
		{name: "not found", err: errs.Mark(errs.New("gone"), errs.ErrNotFound), want: http.StatusNotFound},
		{name: "state", err: errs.Mark(errs.New("busy"), errs.ErrState), want: http.StatusConflict},
		{name: "conflict", err: errs.Mark(errs.New("dup"), errs.ErrConflict), want: http.StatusConflict},
		{name: "store", err: errs.Mark(errs.New("down"), errs.ErrStore), want: http.StatusInternalServerError},
		{name: "ラップされても判定できる", err: errs.Wrap(errs.Mark(errs.New("gone"), errs.ErrNotFound), "load"), want: http.StatusNotFound},
		{name: "未分類は500", err: errs.New("plain"), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, httperr.StatusFor(tc.err))
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(t *testing.T, err error) (int, string) {
		t.Helper()
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		httperr.Abort(c, err, "fallback message")

		var body httperr.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body.Error.Message
	}

	t.Run("4xxは原因のメッセージ", func(t *testing.T) {
		code, msg := run(t, errs.Wrap(errs.Mark(errs.New("title is required"), errs.ErrValidation), "create movie"))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "title is required", msg)
	})

	t.Run("404は固定メッセージ", func(t *testing.T) {
		code, msg := run(t, errs.Mark(errs.New("job 123 not found"), errs.ErrNotFound))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Not found", msg)
	})

	t.Run("5xxはフォールバック", func(t *testing.T) {
		code, msg := run(t, errs.New("pq: connection reset"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "fallback message", msg)
	})
}
