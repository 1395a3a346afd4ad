package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/security"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
	UserRoleKey  contextKey = "userRole"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *security.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *security.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the JWT token and rejects anonymous requests
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		ctx, err := m.withClaims(r.Context(), authHeader)
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional attaches the caller's identity when a valid token is present and
// lets anonymous requests through. A malformed or expired token is still
// rejected so clients notice.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := m.withClaims(r.Context(), authHeader)
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) withClaims(ctx context.Context, authHeader string) (context.Context, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errInvalidHeader
	}

	claims, err := m.jwtManager.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, errInvalidToken
	}

	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	return ctx, nil
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errInvalidHeader authError = "invalid authorization header format"
	errInvalidToken  authError = "invalid or expired token"
)

// RequireAdmin rejects callers without the admin role. Use after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			response.Unauthorized(w, "unauthorized")
			return
		}
		if !actor.IsAdmin() {
			response.Forbidden(w, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID gets the user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetActor returns the authenticated caller
func GetActor(ctx context.Context) (domain.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := ctx.Value(UserRoleKey).(string)
	return domain.Actor{UserID: userID, Role: role}, true
}

// WithActor returns ctx carrying actor, as Authenticate would set it
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, actor.UserID)
	return context.WithValue(ctx, UserRoleKey, actor.Role)
}
