package ports

import (
	"context"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// UserField enumerates the columns a uniqueness check may target. The storage
// layer builds its query from this closed set, never from caller strings.
type UserField string

const (
	UserFieldUsername UserField = "username"
	UserFieldEmail    UserField = "email"
)

// UserRepository defines user persistence. "Not found" surfaces as
// domain.ErrUserNotFound, duplicate inserts as domain.ErrUserExists; anything
// else is a raw storage error wrapped with context.
type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByField is the existence lookup behind the uniqueness checks,
	// generic over the checked field.
	ExistsByField(ctx context.Context, field UserField, value string) (bool, error)

	// Insert stores a new user and returns the assigned id.
	Insert(ctx context.Context, user *domain.User) (int, error)

	UpdateRole(ctx context.Context, id int, role domain.Role) error
	SearchByUsername(ctx context.Context, pattern string) ([]domain.User, error)
}
