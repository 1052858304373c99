package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity claims carried by a portal bearer token. The role
// and its mirrored capability flags are stamped at issue time from the
// profile document.
type Claims struct {
	UserID     string      `json:"sub"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Admin      bool        `json:"admin"`
	Board      bool        `json:"board"`
	Musician   bool        `json:"musician"`
	Subscriber bool        `json:"subscriber"`
	jwt.RegisteredClaims
}

// HasCapability checks the mirrored flags first and falls back to the role
// tag, so tokens minted before a flag existed still authorize correctly.
func (c *Claims) HasCapability(cap domain.Capability) bool {
	switch cap {
	case domain.CapabilityAdmin:
		if c.Admin {
			return true
		}
	case domain.CapabilityBoard:
		if c.Board {
			return true
		}
	case domain.CapabilityMusician:
		if c.Musician {
			return true
		}
	case domain.CapabilitySubscriber:
		if c.Subscriber {
			return true
		}
	}
	return c.Role.Has(cap)
}

// JWTManager verifies and issues portal bearer tokens.
type JWTManager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTManager creates a JWT manager. An empty secret yields a manager
// whose Configured method reports false; the gate maps that to a
// service-unavailable outcome rather than a caller error.
func NewJWTManager(secret string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Configured reports whether the manager holds a signing secret.
func (m *JWTManager) Configured() bool {
	return len(m.secret) > 0
}

// Generate issues a token for the given identity with capability flags
// mirroring the role.
func (m *JWTManager) Generate(userID, email string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		Admin:      role.Has(domain.CapabilityAdmin),
		Board:      role.Has(domain.CapabilityBoard),
		Musician:   role.Has(domain.CapabilityMusician),
		Subscriber: role.Has(domain.CapabilitySubscriber),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "portal-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates a bearer token and returns its claims.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
