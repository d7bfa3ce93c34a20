package testutil

import (
	"context"

	"github.com/logiport/portal/internal/types"
)

// Test actors shared by service and handler tests
var (
	AdminActor = types.Actor{
		ID:       "user_admin",
		Username: "admin",
		Email:    "admin@example.com",
		IsStaff:  true,
	}
	ClientActor = types.Actor{
		ID:       "user_client",
		Username: "alice",
		Email:    "alice@example.com",
	}
	OtherClientActor = types.Actor{
		ID:       "user_other",
		Username: "bob",
		Email:    "bob@example.com",
	}
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// ContextWithActor returns a test context carrying actor
func ContextWithActor(actor types.Actor) context.Context {
	return types.SetActor(SetupContext(), actor)
}
