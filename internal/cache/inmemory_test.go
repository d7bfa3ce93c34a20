package cache

import (
	"context"
	"testing"
	"time"

	"github.com/logiport/portal/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(&config.Configuration{Cache: config.CacheConfig{Enabled: true}})

	key := GenerateKey(PrefixPresignedURL, "documents", "doc_1")
	assert.Equal(t, "presigned_url:v1::documents:doc_1", key)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, "https://objects.test/doc_1", time.Minute)
	v, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "https://objects.test/doc_1", v)

	c.Set(ctx, GenerateKey(PrefixPresignedURL, "documents", "doc_2"), "u2", time.Minute)
	c.Set(ctx, "other", "x", time.Minute)
	c.DeleteByPrefix(ctx, PrefixPresignedURL)

	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
	_, ok = c.Get(ctx, "other")
	assert.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, "other")
	assert.False(t, ok)
}

func TestInMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(&config.Configuration{Cache: config.CacheConfig{Enabled: true}})

	c.Set(ctx, "k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(&config.Configuration{})

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
