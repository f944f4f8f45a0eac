//go:build unit

package cache_test

import (
	"testing"
	"time"

	"gin-jobqueue/internal/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCache(t *testing.T) {
	t.Run("格納したトークンを取得できる", func(t *testing.T) {
		c := cache.NewTokenCache(10, time.Minute)
		id := cache.Identity{UserID: uuid.New(), Role: "admin"}
		c.Put("token-a", id)

		got, ok := c.Get("token-a")
		require.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("サイズ上限を超えると古いものから追い出される", func(t *testing.T) {
		c := cache.NewTokenCache(2, time.Minute)
		c.Put("a", cache.Identity{Role: "user"})
		c.Put("b", cache.Identity{Role: "user"})
		c.Put("c", cache.Identity{Role: "user"})

		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("TTL経過後は取得できない", func(t *testing.T) {
		c := cache.NewTokenCache(10, 20*time.Millisecond)
		c.Put("a", cache.Identity{Role: "user"})

		assert.Eventually(t, func() bool {
			_, ok := c.Get("a")
			return !ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Invalidateで削除される", func(t *testing.T) {
		c := cache.NewTokenCache(10, time.Minute)
		c.Put("a", cache.Identity{Role: "user"})
		c.Invalidate("a")

		_, ok := c.Get("a")
		assert.False(t, ok)
	})
}
