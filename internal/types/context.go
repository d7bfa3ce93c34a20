package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxActor         ContextKey = "ctx_actor"
	CtxDBTransaction ContextKey = "ctx_db_transaction"
	CtxDBSnapshot    ContextKey = "ctx_db_snapshot"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetActor returns the authenticated actor stored by the auth middleware.
// Handlers read it once and pass it explicitly to the service layer.
func GetActor(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(CtxActor).(Actor)
	return actor, ok
}

// SetActor sets the authenticated actor in the context
func SetActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, CtxActor, actor)
}

// GetUserID returns the id of the authenticated actor or an empty string
func GetUserID(ctx context.Context) string {
	if actor, ok := GetActor(ctx); ok {
		return actor.ID
	}
	return ""
}

// IsSnapshot reports whether reads on ctx run inside a read snapshot
func IsSnapshot(ctx context.Context) bool {
	snapshot, ok := ctx.Value(CtxDBSnapshot).(bool)
	return ok && snapshot
}
