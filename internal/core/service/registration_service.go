package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
	"github.com/punchline/punchline-api/internal/core/security"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 32
)

// RegistrationService implements account creation: validate, hash, insert.
type RegistrationService struct {
	repo   ports.UserRepository
	hasher security.PasswordHasher
	logger zerolog.Logger
}

func NewRegistrationService(repo ports.UserRepository, hasher security.PasswordHasher, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{repo: repo, hasher: hasher, logger: logger}
}

// Register runs the two-stage pipeline. Stage one rejects on any field issue
// without touching storage. Stage two hashes and inserts with role None.
//
// The uniqueness check and the insert do not share a transaction: two
// concurrent registrations of the same name can both validate clean. The
// unique constraint on the users table is the last line of defense, and its
// violation surfaces as ErrDatabaseInsertion like any other insert failure.
func (s *RegistrationService) Register(ctx context.Context, input ports.RegisterInput) (int, *domain.RegistrationIssues, error) {
	issues := s.findIssues(ctx, input)
	if !issues.Empty() {
		return 0, issues, nil
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("password hashing failed")
		return 0, nil, fmt.Errorf("%w: %w", domain.ErrPasswordHashing, err)
	}

	id, err := s.repo.Insert(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleNone,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("user insert failed")
		return 0, nil, fmt.Errorf("%w: %w", domain.ErrDatabaseInsertion, err)
	}

	s.logger.Info().Int("id", id).Str("username", input.Username).Msg("user registered")
	return id, nil, nil
}

// findIssues evaluates the three fields independently: none of them
// short-circuits the others, so the caller always gets the full report.
func (s *RegistrationService) findIssues(ctx context.Context, input ports.RegisterInput) *domain.RegistrationIssues {
	return &domain.RegistrationIssues{
		Username: s.usernameIssues(ctx, input.Username),
		Email:    s.emailIssues(ctx, input.Email),
		Password: domain.FindWeaknesses(input.Password),
	}
}

// usernameIssues checks shape before uniqueness: a username that fails the
// shape checks never reaches storage. Email-shaped usernames are rejected so
// a login string always classifies unambiguously.
func (s *RegistrationService) usernameIssues(ctx context.Context, username string) []domain.UsernameIssue {
	switch {
	case len(username) < usernameMinLen:
		return []domain.UsernameIssue{domain.UsernameTooShort}
	case len(username) > usernameMaxLen:
		return []domain.UsernameIssue{domain.UsernameTooLong}
	case domain.LooksLikeEmail(username):
		return []domain.UsernameIssue{domain.UsernameEmailLike}
	}

	taken, err := s.repo.ExistsByField(ctx, ports.UserFieldUsername, username)
	if err != nil {
		s.logger.Error().Err(err).Msg("username uniqueness check failed")
		return []domain.UsernameIssue{domain.UsernameCouldNotBeProcessed}
	}
	if taken {
		return []domain.UsernameIssue{domain.UsernameNotUnique}
	}
	return nil
}

// emailIssues only consults storage once the format test passes.
func (s *RegistrationService) emailIssues(ctx context.Context, email string) []domain.EmailIssue {
	if !domain.LooksLikeEmail(email) {
		return []domain.EmailIssue{domain.EmailMalformed}
	}

	taken, err := s.repo.ExistsByField(ctx, ports.UserFieldEmail, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("email uniqueness check failed")
		return []domain.EmailIssue{domain.EmailCouldNotBeProcessed}
	}
	if taken {
		return []domain.EmailIssue{domain.EmailNotUnique}
	}
	return nil
}
