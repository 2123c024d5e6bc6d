package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"erp_backend/internal/api"
)

// Gin context keys set by AuthRequired.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// Verifier validates a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// It checks signature and expiry only; account status is not consulted.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get the bearer token
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			api.Abort(c, http.StatusUnauthorized, "Access token required")
			return
		}

		// 2. Server misconfiguration (JWT_SECRET not set)
		if verifier == nil {
			api.Abort(c, http.StatusInternalServerError, "JWT secret not configured")
			return
		}

		// 3. Verify signature and expiry
		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			api.Abort(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		// 4. Attach identity for downstream handlers
		id := Identity{UserID: claims.UserID(), Email: claims.Email}
		c.Set(ContextUserID, id.UserID)
		c.Set(ContextEmail, id.Email)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))

		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
