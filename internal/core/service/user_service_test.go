package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// stubUserCache keeps cached users in a map and counts traffic.
type stubUserCache struct {
	users        map[string]*domain.User
	hits, misses int
	sets         int
	invalidates  int
}

func newStubUserCache() *stubUserCache {
	return &stubUserCache{users: make(map[string]*domain.User)}
}

func (c *stubUserCache) Get(_ context.Context, username string) (*domain.User, bool) {
	if user, ok := c.users[username]; ok {
		c.hits++
		clone := *user
		return &clone, true
	}
	c.misses++
	return nil, false
}

func (c *stubUserCache) Set(_ context.Context, user *domain.User) {
	c.sets++
	clone := *user
	c.users[user.Username] = &clone
}

func (c *stubUserCache) Invalidate(_ context.Context, username string) {
	c.invalidates++
	delete(c.users, username)
}

func TestUserService_GetProfileFillsCache(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(domain.User{Username: "anicet", Email: "anicet@gmail.com", Role: domain.RoleAuthor})
	cache := newStubUserCache()
	svc := NewUserService(repo, cache, zerolog.Nop())

	profile, err := svc.GetProfile(context.Background(), "anicet", nil)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Username != "anicet" || profile.Email != "" {
		t.Errorf("anonymous viewer got %+v", profile)
	}
	if cache.misses != 1 || cache.sets != 1 {
		t.Errorf("expected one miss and one fill, got misses=%d sets=%d", cache.misses, cache.sets)
	}

	// Second read is served from the cache even if the repository breaks.
	repo.findErr = errBoom
	if _, err := svc.GetProfile(context.Background(), "anicet", nil); err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("expected a cache hit, got %d", cache.hits)
	}
}

func TestUserService_GetProfileWithoutCache(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(domain.User{Username: "anicet", Role: domain.RoleAuthor})
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.GetProfile(context.Background(), "anicet", nil); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if _, err := svc.GetProfile(context.Background(), "missing", nil); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetOwnProfileIncludesEmail(t *testing.T) {
	repo := newStubUserRepo()
	id := repo.add(domain.User{Username: "anicet", Email: "anicet@gmail.com", Role: domain.RoleNone})
	svc := NewUserService(repo, nil, zerolog.Nop())

	profile, err := svc.GetOwnProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("get own profile: %v", err)
	}
	if profile.Email != "anicet@gmail.com" {
		t.Errorf("owner view should carry the email, got %+v", profile)
	}
}

func TestUserService_SearchFiltersByViewer(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(domain.User{Username: "author_a", Role: domain.RoleAuthor})
	hiddenID := repo.add(domain.User{Username: "author_b", Role: domain.RoleNone})
	svc := NewUserService(repo, nil, zerolog.Nop())

	// Anonymous viewers only see users holding a role.
	profiles, err := svc.Search(context.Background(), "author", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Username != "author_a" {
		t.Fatalf("anonymous search got %+v", profiles)
	}

	// The hidden user still finds themselves.
	profiles, err = svc.Search(context.Background(), "author", &domain.Viewer{ID: hiddenID, Role: domain.RoleNone})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("self search got %+v", profiles)
	}

	// No matches is an empty list, not an error.
	profiles, err = svc.Search(context.Background(), "zzz", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("expected empty slice, got %#v", profiles)
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	repo := newStubUserRepo()
	id := repo.add(domain.User{Username: "anicet", Role: domain.RoleNone})
	cache := newStubUserCache()
	svc := NewUserService(repo, cache, zerolog.Nop())

	// Warm the cache, then change the role.
	if _, err := svc.GetProfile(context.Background(), "anicet", nil); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if err := svc.ChangeRole(context.Background(), "anicet", domain.RoleAuthor); err != nil {
		t.Fatalf("change role: %v", err)
	}
	if cache.invalidates != 1 {
		t.Errorf("expected the cache entry to be dropped, got %d invalidations", cache.invalidates)
	}

	user, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.Role != domain.RoleAuthor {
		t.Errorf("role not persisted, got %s", user.Role)
	}
}

func TestUserService_ChangeRoleRejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(domain.User{Username: "anicet", Role: domain.RoleNone})
	svc := NewUserService(repo, nil, zerolog.Nop())

	if err := svc.ChangeRole(context.Background(), "anicet", domain.Role("Owner")); err == nil {
		t.Fatal("expected an error for an unknown role")
	}
	if err := svc.ChangeRole(context.Background(), "missing", domain.RoleAuthor); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
