package ports

import (
	"context"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// JokeLineInput is one line of a submitted joke, in submission order.
type JokeLineInput struct {
	Speaker string
	Content string
}

// CreateJokeInput is a parsed joke creation request.
type CreateJokeInput struct {
	Title    string
	Lines    []JokeLineInput
	AuthorID int
}

// JokeService covers the joke content feature.
type JokeService interface {
	Create(ctx context.Context, input CreateJokeInput) (*domain.Joke, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Joke, error)
}
