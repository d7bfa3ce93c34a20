package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a process local key value store with per entry expiry
type Cache interface {
	// Get reports whether key was present and unexpired
	Get(ctx context.Context, key string) (interface{}, bool)
	// Set stores value for expiration. Zero keeps the entry until evicted.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

const (
	PrefixPresignedURL = "presigned_url:v1:"
)

// GenerateKey appends params to prefix, each preceded by a colon
func GenerateKey(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, param := range params {
		b.WriteString(":")
		b.WriteString(fmt.Sprintf("%v", param))
	}
	return b.String()
}
