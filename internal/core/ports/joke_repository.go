package ports

import (
	"context"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// JokeRepository defines joke persistence.
type JokeRepository interface {
	// Insert stores a joke with its lines and returns it with assigned ids
	// and timestamps.
	Insert(ctx context.Context, joke *domain.Joke) (*domain.Joke, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Joke, error)
}
