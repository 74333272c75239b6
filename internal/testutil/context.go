package testutil

import (
	"context"

	"github.com/engagehq/engage-api/internal/types"
	"github.com/google/uuid"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, "test-user")
	ctx = context.WithValue(ctx, types.CtxRequestID, uuid.NewString())
	return ctx
}
