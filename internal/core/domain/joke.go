package domain

import "time"

// Joke is a short dialogue piece written by an author. Plain content, no
// access rules beyond authorship.
type Joke struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Lines      []JokeLine `json:"lines"`
	AuthorID   int        `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
}

// JokeLine is one utterance within a joke, ordered by Index.
type JokeLine struct {
	ID      int    `json:"id"`
	Index   int    `json:"index"`
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}
