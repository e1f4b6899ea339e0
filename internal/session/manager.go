// Package session issues and verifies the signed credential that binds a
// request to a user. Tokens are self-contained: no server-side session state.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/venuslabs/venus-backend/internal/domain"
)

// CookieName is the HTTP-only cookie the credential travels in.
const CookieName = "auth_token"

// TokenTTL is the fixed validity window of a session credential.
const TokenTTL = 7 * 24 * time.Hour

type claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewManager(key []byte) *Manager {
	return &Manager{
		key: key,
		ttl: TokenTTL,
		now: time.Now,
	}
}

// Issue mints an HS256 token for userID, expiring ttl from now.
func (m *Manager) Issue(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject user ID.
// Every failure mode collapses into domain.ErrTokenInvalid.
func (m *Manager) Verify(raw string) (string, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	if c.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return c.Subject, nil
}
