package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// startCacheSpan returns nil when the context carries no sentry hub
func startCacheSpan(ctx context.Context, operation, key string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "cache.inmemory."+operation)
	span.Description = "cache.inmemory." + operation
	span.Op = "cache." + operation
	span.SetData("cache.key", key)
	return span
}

func finishCacheSpan(span *sentry.Span, hit bool) {
	if span == nil {
		return
	}
	span.SetData("cache.hit", hit)
	span.Status = sentry.SpanStatusOK
	span.Finish()
}
