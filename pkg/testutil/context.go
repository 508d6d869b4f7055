package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "reclaim/pkg/domain"
	"reclaim/pkg/requestcontext"
)

// AuthedContext returns a context carrying a fresh authenticated user ID,
// as the auth middleware would have populated it.
func AuthedContext(ctx context.Context) (context.Context, id.UserID) {
	userID := id.UserID(uuid.New())
	return requestcontext.WithUserID(ctx, userID), userID
}

// FrozenContext pins the request-scoped clock so timestamp assertions are
// deterministic.
func FrozenContext(ctx context.Context, at time.Time) context.Context {
	return requestcontext.WithTime(ctx, at)
}
