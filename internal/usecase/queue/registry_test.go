//go:build unit

package queue_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/queue"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRegistry(t *testing.T) {
	r := queue.NewDefaultRegistry(clock.NewMockClock(time.Now()))
	assert.ElementsMatch(t, job.AllTypes(), r.Types())
	assert.NotPanics(t, r.MustValidate)
}

func TestRegistry_ClosedWorld(t *testing.T) {
	r := queue.NewRegistry()
	queue.Register(r, job.TypeUserInsert, func(context.Context, shared.Tx, queue.UserInsertPayload) error { return nil })

	assert.Panics(t, r.MustValidate)
	assert.Panics(t, func() {
		queue.Register(r, job.TypeUserInsert, func(context.Context, shared.Tx, queue.UserInsertPayload) error { return nil })
	})
	assert.Panics(t, func() {
		queue.Register(r, job.Type("bogus"), func(context.Context, shared.Tx, struct{}) error { return nil })
	})

	err := r.Validate(job.TypeMovieInsert, json.RawMessage(`{"title":"x"}`))
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestRegistry_Validate(t *testing.T) {
	r := queue.NewDefaultRegistry(clock.NewMockClock(time.Now()))

	cases := []struct {
		name    string
		typ     job.Type
		payload string
		ok      bool
	}{
		{name: "映画登録OK", typ: job.TypeMovieInsert, payload: `{"title":"Alien","releaseYear":1979}`, ok: true},
		{name: "公開年が範囲外", typ: job.TypeMovieInsert, payload: `{"title":"Alien","releaseYear":1700}`},
		{name: "ユーザー登録OK", typ: job.TypeUserInsert, payload: `{"username":"alice","email":"a@example.com","passwordHash":"h"}`, ok: true},
		{name: "メール形式NG", typ: job.TypeUserInsert, payload: `{"username":"alice","email":"nope","passwordHash":"h"}`},
		{name: "ロールNG", typ: job.TypeUserUpdate, payload: `{"id":"6f1c2a8e-8d7b-4a55-9a4a-3b0d4b0e7f11","role":"root"}`},
		{name: "型不一致", typ: job.TypeMovieInsert, payload: `{"title":42}`},
		{name: "映画更新OK", typ: job.TypeMovieUpdate, payload: `{"id":"6f1c2a8e-8d7b-4a55-9a4a-3b0d4b0e7f11","title":"Aliens","averageRating":8.5}`, ok: true},
		{name: "映画更新: 空白のタイトル", typ: job.TypeMovieUpdate, payload: `{"id":"6f1c2a8e-8d7b-4a55-9a4a-3b0d4b0e7f11","title":"   "}`},
		{name: "映画更新: 公開年が範囲外", typ: job.TypeMovieUpdate, payload: `{"id":"6f1c2a8e-8d7b-4a55-9a4a-3b0d4b0e7f11","releaseYear":9999}`},
		{name: "映画更新: 評価が範囲外", typ: job.TypeMovieUpdate, payload: `{"id":"6f1c2a8e-8d7b-4a55-9a4a-3b0d4b0e7f11","averageRating":42}`},
		{name: "映画更新: ID欠落", typ: job.TypeMovieUpdate, payload: `{"title":"Aliens"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Validate(tc.typ, json.RawMessage(tc.payload))
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
}
