package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// UserCache is a read-aside cache of user rows keyed by username.
// Key format: user:username:<username>
//
// The cached copy never contains the password hash (it is excluded from the
// JSON form), so login verification always goes to the repository. Entries
// expire after cacheTTL and are invalidated explicitly on role changes, the
// only mutation users have.
type UserCache struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewUserCache(client *redis.Client, logger zerolog.Logger) *UserCache {
	return &UserCache{client: client, logger: logger}
}

// Get returns the cached user, if any. Failures count as misses.
func (c *UserCache) Get(ctx context.Context, username string) (*domain.User, bool) {
	payload, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug().Err(err).Str("username", username).Msg("user cache get failed")
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		c.logger.Debug().Err(err).Str("username", username).Msg("user cache entry corrupt")
		return nil, false
	}
	return &user, true
}

// Set stores the user, best-effort.
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		c.logger.Debug().Err(err).Msg("user cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.key(user.Username), payload, cacheTTL).Err(); err != nil {
		c.logger.Debug().Err(err).Str("username", user.Username).Msg("user cache set failed")
	}
}

// Invalidate drops the entry for username.
func (c *UserCache) Invalidate(ctx context.Context, username string) {
	if err := c.client.Del(ctx, c.key(username)).Err(); err != nil {
		c.logger.Debug().Err(err).Str("username", username).Msg("user cache invalidate failed")
	}
}

func (c *UserCache) key(username string) string {
	return fmt.Sprintf("user:username:%s", username)
}
