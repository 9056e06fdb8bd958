package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/punchline/punchline-api/internal/api/middleware"
	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

// UserHandler serves profile reads, search, and role administration.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
}

type changeRoleRequest struct {
	NewRole domain.Role `json:"new_role" validate:"required,oneof=Admin Author None"`
}

// GetProfile handles GET /users/:username. Optional auth: anonymous viewers
// get the public projection.
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.users.GetProfile(c.Request().Context(), c.Param("username"), middleware.ViewerFrom(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{})
		}
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetOwnProfile handles GET /users/id/:id. Identity-gated: only the account
// owner may read it.
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	if err := middleware.EnforceIdentity(c, id); err != nil {
		return middleware.RenderGateError(c, err)
	}

	profile, err := h.users.GetOwnProfile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{})
		}
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Search handles POST /users/search. Optional auth; results are filtered by
// the viewer-dependent visibility rules.
func (h *UserHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profiles, err := h.users.Search(c.Request().Context(), req.Query, middleware.ViewerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]domain.Profile{"results": profiles})
}

// ChangeRole handles POST /users/:username/role. Admin-gated by the router.
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.users.ChangeRole(c.Request().Context(), c.Param("username"), req.NewRole); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{})
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}
