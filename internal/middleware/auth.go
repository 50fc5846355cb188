package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
)

// TokenCookie is the cookie the REST surface sets on login.
const TokenCookie = "token"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key for storing the authenticated user ID.
const UserIDKey contextKey = "user_id"

// IdentityResolver maps a bearer credential to a user ID.
type IdentityResolver interface {
	ResolveIdentity(token string) (string, error)
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// TokenFromHeaders returns the bearer token from the Authorization header,
// falling back to the token cookie. Returns empty string if neither is set.
func TokenFromHeaders(h http.Header) string {
	if authHeader := h.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	r := http.Request{Header: h}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// NewTokenCookie builds the httpOnly cookie that carries token for ttl.
func NewTokenCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearTokenCookie expires the token cookie.
func ClearTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// RequireAuth returns a Connect interceptor that resolves the caller's
// identity and rejects the call when none can be established. Procedures
// listed in public skip the check.
func RequireAuth(resolver IdentityResolver, logger *slog.Logger, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return next(ctx, req)
			}

			userID, err := resolver.ResolveIdentity(TokenFromHeaders(req.Header()))
			if err != nil {
				logger.Warn("RPC rejected", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			// Call the next handler with enriched context
			return next(WithUserID(ctx, userID), req)
		}
	}
}

// HTTPAuth is the net/http counterpart of RequireAuth for the REST surface.
func HTTPAuth(resolver IdentityResolver, onFail func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolver.ResolveIdentity(TokenFromHeaders(r.Header))
			if err != nil {
				onFail(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
