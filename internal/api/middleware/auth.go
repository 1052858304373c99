package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beamcollective/portal-api/internal/api/response"
	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/repository/redis"
	"github.com/beamcollective/portal-api/internal/security"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
)

// AuthMiddleware is the bearer-token gate. The checks run in a fixed order:
// token presence, verifier availability, token validity, then capability.
type AuthMiddleware struct {
	jwtManager *security.JWTManager
	bypass     bool
}

// NewAuthMiddleware creates a new auth middleware. bypass selects the
// development policy, which relaxes the gate on read-only content routes.
func NewAuthMiddleware(jwtManager *security.JWTManager, bypass bool) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, bypass: bypass}
}

// Authenticate validates the bearer token and stores its claims in the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.verify(r)
		if err != nil {
			writeGateError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateOptional validates a bearer token when one is present. Under
// the development bypass policy a missing token passes through anonymously;
// a malformed or invalid token is still rejected.
func (m *AuthMiddleware) AuthenticateOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.bypass && r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.verify(r)
		if err != nil {
			writeGateError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require gates the request on a capability of the authenticated identity.
func (m *AuthMiddleware) Require(cap domain.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				response.Unauthorized(w, domain.ReasonMissingToken, "missing bearer token")
				return
			}
			if !claims.HasCapability(cap) {
				response.Forbidden(w, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) verify(r *http.Request) (*security.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, domain.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, domain.ErrMissingToken
	}

	if !m.jwtManager.Configured() {
		return nil, domain.ErrServiceDown
	}

	claims, err := m.jwtManager.Verify(parts[1])
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func writeGateError(w http.ResponseWriter, err error) {
	if derr, ok := err.(*domain.Error); ok && derr.Reason == domain.ReasonServiceDown {
		response.ServiceUnavailable(w, derr.Message)
		return
	}
	if derr, ok := err.(*domain.Error); ok {
		response.Unauthorized(w, derr.Reason, derr.Message)
		return
	}
	response.Unauthorized(w, domain.ReasonInvalidToken, "invalid token")
}

// GetClaims gets the verified claims from context
func GetClaims(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*security.Claims)
	return claims, ok
}

// GetUserID gets the user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit applies rate limiting keyed on the authenticated user, falling back
// to the remote address for anonymous requests.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := GetUserID(r.Context())
		if !ok {
			key = r.RemoteAddr
		}

		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), key)
		if err != nil {
			// If the rate limiter fails, allow the request
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
