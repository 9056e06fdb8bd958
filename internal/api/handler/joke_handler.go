package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/punchline/punchline-api/internal/api/middleware"
	"github.com/punchline/punchline-api/internal/core/ports"
)

// JokeHandler serves the joke content endpoints.
type JokeHandler struct {
	jokes ports.JokeService
}

func NewJokeHandler(jokes ports.JokeService) *JokeHandler {
	return &JokeHandler{jokes: jokes}
}

type jokeLinePayload struct {
	Speaker string `json:"speaker" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type createJokeRequest struct {
	Title string            `json:"title" validate:"required,max=200"`
	Lines []jokeLinePayload `json:"lines" validate:"required,min=1,dive"`
}

// Create handles POST /jokes. The router gates it to authenticated users
// holding a role; authorship comes from the claims.
func (h *JokeHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return middleware.RenderGateError(c, middleware.ErrNoAuthorizationHeader)
	}

	var req createJokeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input := ports.CreateJokeInput{
		Title:    req.Title,
		AuthorID: claims.ID,
		Lines:    make([]ports.JokeLineInput, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, ports.JokeLineInput{Speaker: line.Speaker, Content: line.Content})
	}

	joke, err := h.jokes.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "created_joke": joke})
}

// List handles GET /jokes?limit=n.
func (h *JokeHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = n
	}

	jokes, err := h.jokes.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"jokes": jokes})
}
