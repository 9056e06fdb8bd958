package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

const defaultJokeListLimit = 20

var errEmptyJoke = errors.New("joke needs a title and at least one line")

// JokeService implements the joke content feature. Authorship is taken from
// the authenticated claims by the handler; the gate has already established
// the author holds a role.
type JokeService struct {
	repo   ports.JokeRepository
	logger zerolog.Logger
}

func NewJokeService(repo ports.JokeRepository, logger zerolog.Logger) *JokeService {
	return &JokeService{repo: repo, logger: logger}
}

func (s *JokeService) Create(ctx context.Context, input ports.CreateJokeInput) (*domain.Joke, error) {
	if input.Title == "" || len(input.Lines) == 0 {
		return nil, errEmptyJoke
	}

	joke := &domain.Joke{
		Title:    input.Title,
		AuthorID: input.AuthorID,
		Lines:    make([]domain.JokeLine, 0, len(input.Lines)),
	}
	for i, line := range input.Lines {
		joke.Lines = append(joke.Lines, domain.JokeLine{
			Index:   i,
			Speaker: line.Speaker,
			Content: line.Content,
		})
	}

	created, err := s.repo.Insert(ctx, joke)
	if err != nil {
		s.logger.Error().Err(err).Int("author_id", input.AuthorID).Msg("joke insert failed")
		return nil, err
	}

	s.logger.Info().Int("id", created.ID).Int("author_id", created.AuthorID).Msg("joke created")
	return created, nil
}

func (s *JokeService) ListRecent(ctx context.Context, limit int) ([]domain.Joke, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultJokeListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
