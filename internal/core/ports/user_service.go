package ports

import (
	"context"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// UserService covers profile reads and role administration.
type UserService interface {
	// GetProfile returns the profile of username as seen from viewer
	// (nil viewer = anonymous).
	GetProfile(ctx context.Context, username string, viewer *domain.Viewer) (*domain.Profile, error)

	// GetOwnProfile returns the full profile for the given id. Callers gate
	// identity before invoking it.
	GetOwnProfile(ctx context.Context, id int) (*domain.Profile, error)

	// Search returns profiles matching the username pattern, filtered by
	// the viewer-dependent visibility rules.
	Search(ctx context.Context, pattern string, viewer *domain.Viewer) ([]domain.Profile, error)

	// ChangeRole assigns a new role to username. Admin-only; callers gate
	// the role before invoking it.
	ChangeRole(ctx context.Context, username string, role domain.Role) error
}
