package cache

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Identity is what a verified access token resolves to.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// TokenCache is a bounded LRU of verified tokens; entries expire after ttl
// even when they are hot.
type TokenCache struct {
	lru *expirable.LRU[string, Identity]
	ttl time.Duration
}

func NewTokenCache(size int, ttl time.Duration) *TokenCache {
	if size <= 0 {
		size = 1
	}
	return &TokenCache{lru: expirable.NewLRU[string, Identity](size, nil, ttl), ttl: ttl}
}

func (c *TokenCache) TTL() time.Duration {
	return c.ttl
}

func (c *TokenCache) Get(token string) (Identity, bool) {
	return c.lru.Get(token)
}

func (c *TokenCache) Put(token string, id Identity) {
	c.lru.Add(token, id)
}

func (c *TokenCache) Invalidate(token string) {
	c.lru.Remove(token)
}

func (c *TokenCache) Len() int {
	return c.lru.Len()
}
