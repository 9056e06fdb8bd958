package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/punchline/punchline-api/internal/core/domain"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, expired. Collapsing them keeps the caller (and an attacker) from
// learning which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload signed into a token. Expiration is always stamped
// server-side at issuance; a client-supplied exp never survives.
type Claims struct {
	ID   int         `json:"id"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed identity tokens. The secret is
// injected at construction so the service is testable with arbitrary keys;
// rotating it invalidates all outstanding tokens.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token for (id, role) expiring ttl from now.
func (s *TokenService) Issue(id int, role domain.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims. Any
// failure is ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
