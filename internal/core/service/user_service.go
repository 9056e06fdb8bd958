package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

// UserService serves profile reads and role administration on top of the
// repository, with a read-aside cache for the hot by-username path.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.UserCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.UserCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// GetProfile returns username's profile as seen from viewer.
func (s *UserService) GetProfile(ctx context.Context, username string, viewer *domain.Viewer) (*domain.Profile, error) {
	user, err := s.findByUsernameCached(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := user.ProfileFor(viewer)
	return &profile, nil
}

// GetOwnProfile returns the full profile for id. Identity is enforced at the
// gate, so the owner view applies unconditionally here.
func (s *UserService) GetOwnProfile(ctx context.Context, id int) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.ProfileFor(&domain.Viewer{ID: user.ID, Role: user.Role})
	return &profile, nil
}

// Search returns matching profiles, dropping users the viewer is not allowed
// to see.
func (s *UserService) Search(ctx context.Context, pattern string, viewer *domain.Viewer) ([]domain.Profile, error) {
	users, err := s.repo.SearchByUsername(ctx, pattern)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(users))
	for i := range users {
		if !users[i].IsSearchableBy(viewer) {
			continue
		}
		profiles = append(profiles, users[i].ProfileFor(viewer))
	}
	return profiles, nil
}

// ChangeRole assigns a new role and drops the stale cache entry.
func (s *UserService) ChangeRole(ctx context.Context, username string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateRole(ctx, user.ID, role); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, username)
	}

	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("role changed")
	return nil
}

func (s *UserService) findByUsernameCached(ctx context.Context, username string) (*domain.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, username); ok {
			return user, nil
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}
