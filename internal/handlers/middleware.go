package handlers

import (
	"context"
	"net/http"
	"strings"

	"bytebabies/internal/security"
	"bytebabies/internal/service"
	"bytebabies/internal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	facade  *service.Facade
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance. limiter may be nil.
func NewMiddleware(facade *service.Facade, limiter *security.RateLimiter) *Middleware {
	return &Middleware{facade: facade, limiter: limiter}
}

// RequireAuth resolves the bearer token into a session stored on the request context.
// Tokens whose account has no role are refused.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		sess, err := m.facade.ResolveToken(r.Context(), token)
		if err != nil {
			respondWithFacadeError(w, "Failed to resolve token", err)
			return
		}
		if sess.Role == session.RoleNone {
			writeError(w, http.StatusForbidden, ErrNoRole)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return requireRole(session.RoleAdmin, next)
}

// RequireParent must run after RequireAuth
func (m *Middleware) RequireParent(next http.Handler) http.Handler {
	return requireRole(session.RoleParent, next)
}

func requireRole(role session.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSessionFromContext(r.Context()).Role != role {
			writeError(w, http.StatusForbidden, ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit refuses clients that exceed the limiter's budget
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.GetClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, ErrTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext returns the request's session (zero value when absent)
func GetSessionFromContext(ctx context.Context) session.Session {
	sess, _ := ctx.Value(SessionContextKey).(session.Session)
	return sess
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
