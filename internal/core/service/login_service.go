package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
	"github.com/punchline/punchline-api/internal/core/security"
)

// DefaultTokenTTL is the lifetime of a login token.
const DefaultTokenTTL = 120 * time.Second

// LoginService resolves login attempts. The denial outcomes are deliberately
// asymmetric: a wrong username says so (UnknownLogin / InvalidPassword), a
// wrong email never reveals whether the address is registered
// (InvalidCredentials for both cases, with matched timing).
type LoginService struct {
	repo     ports.UserRepository
	hasher   security.PasswordHasher
	tokens   *security.TokenService
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewLoginService(repo ports.UserRepository, hasher security.PasswordHasher, tokens *security.TokenService, tokenTTL time.Duration, logger zerolog.Logger) *LoginService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &LoginService{repo: repo, hasher: hasher, tokens: tokens, tokenTTL: tokenTTL, logger: logger}
}

// Login classifies the login string by shape, looks the user up accordingly,
// verifies the password and issues a token.
func (s *LoginService) Login(ctx context.Context, login, password string) (string, error) {
	loginIsEmail := domain.LooksLikeEmail(login)

	var user *domain.User
	var err error
	if loginIsEmail {
		user, err = s.repo.FindByEmail(ctx, login)
	} else {
		user, err = s.repo.FindByUsername(ctx, login)
	}

	switch {
	case err == nil:
		if !s.hasher.Verify(password, user.PasswordHash) {
			if loginIsEmail {
				return "", domain.ErrInvalidCredentials
			}
			return "", domain.ErrInvalidPassword
		}

		token, err := s.tokens.Issue(user.ID, user.Role, s.tokenTTL)
		if err != nil {
			s.logger.Error().Err(err).Int("id", user.ID).Msg("token issuance failed")
			return "", fmt.Errorf("%w: %w", domain.ErrTokenCreation, err)
		}
		return token, nil

	case errors.Is(err, domain.ErrUserNotFound):
		if loginIsEmail {
			// Burn the same CPU as a real verification so a missing email
			// is indistinguishable from a wrong password by timing.
			s.hasher.FakeVerify()
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrUnknownLogin

	default:
		s.logger.Error().Err(err).Msg("login lookup failed")
		return "", fmt.Errorf("%w: %w", domain.ErrDatabase, err)
	}
}
