package ports

import (
	"context"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// RegisterInput is a parsed registration request body. The plaintext password
// is transient: it must not outlive the hashing step.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegistrationService validates and creates accounts.
type RegistrationService interface {
	// Register returns the new user id on success. A non-nil issues value
	// means the request was rejected on its data, with no storage mutation;
	// a non-nil error is an operational failure (ErrPasswordHashing or
	// ErrDatabaseInsertion). The two are mutually exclusive.
	Register(ctx context.Context, input RegisterInput) (int, *domain.RegistrationIssues, error)
}

// LoginService resolves a login attempt to a signed token.
type LoginService interface {
	// Login accepts either a username or an email as the login string,
	// distinguished by shape. Denials are ErrUnknownLogin,
	// ErrInvalidPassword or ErrInvalidCredentials; failures are ErrDatabase
	// or ErrTokenCreation.
	Login(ctx context.Context, login, password string) (string, error)
}
