package ports

import (
	"context"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// UserCache is a best-effort read-aside cache for by-username lookups. A miss
// and a cache failure look the same to callers; the repository is always the
// source of truth.
type UserCache interface {
	Get(ctx context.Context, username string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, username string)
}
