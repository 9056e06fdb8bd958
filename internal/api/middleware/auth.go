// Package middleware implements the authorization gate: token extraction and
// verification, plus identity-match and role-match enforcement.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/punchline/punchline-api/internal/api/metrics"
	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/security"
)

// claimsKey is where authenticated claims live in the echo context.
const claimsKey = "auth_claims"

// Gate failures. Every one of them renders as 401 with the failure name, the
// same envelope for all so responses do not leak which check tripped beyond
// what the caller already knows.
var (
	ErrNoAuthorizationHeader = errors.New("NoAuthorizationHeader")
	ErrAuthorizationParsing  = errors.New("AuthorizationParsing")
	ErrInvalidToken          = errors.New("InvalidToken")
	ErrUserNotAllowed        = errors.New("UserNotAllowed")
	ErrRoleNotAllowed        = errors.New("RoleNotAllowed")
)

// Authenticate extracts and verifies the bearer token of the request. The
// Authorization header carries the raw token, no scheme prefix.
func Authenticate(c echo.Context, tokens *security.TokenService) (*security.Claims, error) {
	values := c.Request().Header.Values("Authorization")
	if len(values) == 0 {
		return nil, ErrNoAuthorizationHeader
	}

	raw := strings.TrimSpace(values[0])
	if raw == "" || len(values) > 1 {
		return nil, ErrAuthorizationParsing
	}

	claims, err := tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Auth is the mandatory-auth convention: no valid token, no access. On
// success the claims are injected into the context for handlers downstream.
func Auth(tokens *security.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := Authenticate(c, tokens)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return gateError(c, err)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth is the optional-auth convention: a missing header proceeds
// anonymously, but a header that is present and fails verification is still a
// hard failure.
func OptionalAuth(tokens *security.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := Authenticate(c, tokens)
			switch {
			case err == nil:
				metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
				c.Set(claimsKey, claims)
			case errors.Is(err, ErrNoAuthorizationHeader):
				metrics.TokenVerificationsTotal.WithLabelValues("anonymous").Inc()
			default:
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return gateError(c, err)
			}
			return next(c)
		}
	}
}

// RequireRole enforces an exact role match on the authenticated claims. Runs
// after Auth.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return gateError(c, ErrNoAuthorizationHeader)
			}
			if claims.Role != role {
				return gateError(c, ErrRoleNotAllowed)
			}
			return next(c)
		}
	}
}

// DisallowRole rejects authenticated users holding exactly the given role.
// Used to keep role-less accounts out of contributor endpoints.
func DisallowRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return gateError(c, ErrNoAuthorizationHeader)
			}
			if claims.Role == role {
				return gateError(c, ErrRoleNotAllowed)
			}
			return next(c)
		}
	}
}

// EnforceIdentity checks that the authenticated claims carry exactly the
// required user id. Admins bypass the id match. Handlers render a non-nil
// result with RenderGateError.
func EnforceIdentity(c echo.Context, requiredID int) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return ErrNoAuthorizationHeader
	}
	if claims.Role != domain.RoleAdmin && claims.ID != requiredID {
		return ErrUserNotAllowed
	}
	return nil
}

// RenderGateError writes the canonical 401 envelope for a gate failure.
func RenderGateError(c echo.Context, err error) error {
	return gateError(c, err)
}

// ClaimsFrom returns the claims injected by Auth or OptionalAuth, if any.
func ClaimsFrom(c echo.Context) (*security.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*security.Claims)
	return claims, ok
}

// ViewerFrom converts the context claims to a domain viewer; nil when the
// request is anonymous.
func ViewerFrom(c echo.Context) *domain.Viewer {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return nil
	}
	return &domain.Viewer{ID: claims.ID, Role: claims.Role}
}

func gateError(c echo.Context, err error) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
}
