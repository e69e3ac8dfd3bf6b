package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("security: invalid token")
	ErrNoSecret     = errors.New("security: signing secret not configured")
)

// Claims carried in the bearer token. The HTTP layer maps them onto the
// engine's Principal; the engine itself never sees raw tokens.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	Secret []byte
	TTL    time.Duration
}

// Issue signs a token for the given user. Used by tooling and tests; the
// production identity provider lives outside this service.
func (m TokenManager) Issue(userID string, roles []string) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrNoSecret
	}
	// Zero means the default lifetime; a negative TTL is honored as-is and
	// yields an already-expired token.
	ttl := m.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.Secret)
}

// Parse validates the token signature and expiry, returning its claims.
func (m TokenManager) Parse(raw string) (Claims, error) {
	if len(m.Secret) == 0 {
		return Claims{}, ErrNoSecret
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
