package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/punchline/punchline-api/internal/api/metrics"
	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

// AuthHandler serves registration and login.
//
// Data issues always go back to the caller in full; operational failures are
// reported by a generic name only, the detail stays in the server log.
type AuthHandler struct {
	registration ports.RegistrationService
	login        ports.LoginService
}

func NewAuthHandler(registration ports.RegistrationService, login ports.LoginService) *AuthHandler {
	return &AuthHandler{registration: registration, login: login}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerResponse struct {
	Registered bool                       `json:"registered"`
	ID         int                        `json:"id,omitempty"`
	Issues     *domain.RegistrationIssues `json:"issues,omitempty"`
}

// Register creates a new account.
//
// 200 {"registered": true, "id": n} on success,
// 200 {"registered": false, "issues": {...}} on rejected data,
// 500 {"error": "PasswordHashing"|"DatabaseInsertion"} on failure.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	id, issues, err := h.registration.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": failureName(err)})
	}
	if issues != nil {
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusOK, registerResponse{Registered: false, Issues: issues})
	}

	metrics.RegistrationsTotal.WithLabelValues("registered").Inc()
	return c.JSON(http.StatusOK, registerResponse{Registered: true, ID: id})
}

// Login resolves credentials to a token.
//
// 200 {"token": "..."} on success,
// 401 {"reason": "UnknownLogin"|"InvalidPassword"|"InvalidCredentials"},
// 500 {"error": "Database"|"TokenCreation"} on failure.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, err := h.login.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		if reason, denied := denialReason(err); denied {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"reason": reason})
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": failureName(err)})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// denialReason maps a login denial to its wire name. The three reasons are
// the entire vocabulary: an unknown email is reported exactly like a wrong
// password for a known email.
func denialReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrUnknownLogin):
		return "UnknownLogin", true
	case errors.Is(err, domain.ErrInvalidPassword):
		return "InvalidPassword", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "InvalidCredentials", true
	}
	return "", false
}

// failureName maps an operational failure to its generic wire name.
func failureName(err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordHashing):
		return "PasswordHashing"
	case errors.Is(err, domain.ErrDatabaseInsertion):
		return "DatabaseInsertion"
	case errors.Is(err, domain.ErrTokenCreation):
		return "TokenCreation"
	case errors.Is(err, domain.ErrDatabase):
		return "Database"
	}
	return "Internal"
}
