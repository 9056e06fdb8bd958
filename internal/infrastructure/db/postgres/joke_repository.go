package postgres

import (
	"context"
	"fmt"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// JokeRepository implements ports.JokeRepository on PostgreSQL.
type JokeRepository struct {
	db DB
}

func NewJokeRepository(db DB) *JokeRepository {
	return &JokeRepository{db: db}
}

// Insert stores the joke and its lines in one transaction.
func (r *JokeRepository) Insert(ctx context.Context, joke *domain.Joke) (*domain.Joke, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert joke: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := &domain.Joke{
		Title:    joke.Title,
		AuthorID: joke.AuthorID,
		Lines:    make([]domain.JokeLine, 0, len(joke.Lines)),
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO jokes (title, author_id, created_at, modified_at)
		VALUES ($1, $2, now(), now())
		RETURNING id, created_at, modified_at
	`, joke.Title, joke.AuthorID).Scan(&created.ID, &created.CreatedAt, &created.ModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("insert joke: %w", err)
	}

	for _, line := range joke.Lines {
		inserted := line
		err = tx.QueryRow(ctx, `
			INSERT INTO joke_lines (joke_id, index_within_joke, speaker, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, created.ID, line.Index, line.Speaker, line.Content).Scan(&inserted.ID)
		if err != nil {
			return nil, fmt.Errorf("insert joke line: %w", err)
		}
		created.Lines = append(created.Lines, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("insert joke: %w", err)
	}
	return created, nil
}

// ListRecent returns the newest jokes with their lines.
func (r *JokeRepository) ListRecent(ctx context.Context, limit int) ([]domain.Joke, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, author_id, created_at, modified_at
		FROM jokes
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list jokes: %w", err)
	}
	defer rows.Close()

	var jokes []domain.Joke
	for rows.Next() {
		var j domain.Joke
		if err := rows.Scan(&j.ID, &j.Title, &j.AuthorID, &j.CreatedAt, &j.ModifiedAt); err != nil {
			return nil, fmt.Errorf("list jokes: %w", err)
		}
		jokes = append(jokes, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jokes: %w", err)
	}

	for i := range jokes {
		lines, err := r.jokeLines(ctx, jokes[i].ID)
		if err != nil {
			return nil, err
		}
		jokes[i].Lines = lines
	}
	return jokes, nil
}

func (r *JokeRepository) jokeLines(ctx context.Context, jokeID int) ([]domain.JokeLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, index_within_joke, speaker, content
		FROM joke_lines
		WHERE joke_id = $1
		ORDER BY index_within_joke
	`, jokeID)
	if err != nil {
		return nil, fmt.Errorf("list joke lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.JokeLine
	for rows.Next() {
		var l domain.JokeLine
		if err := rows.Scan(&l.ID, &l.Index, &l.Speaker, &l.Content); err != nil {
			return nil, fmt.Errorf("list joke lines: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list joke lines: %w", err)
	}
	return lines, nil
}
