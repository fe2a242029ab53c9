package middleware

import (
	"context"
	"net/http"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/auth"
)

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID string
	Role   auth.Role
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}

// Authenticate validates a bearer token when one is present and puts
// the principal on the context. Requests without a token pass through
// anonymously; RequireAuth is what rejects them.
func Authenticate(jwt *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwt.Validate(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "about:blank",
					"Invalid Token", err, env)
				return
			}

			role, ok := auth.ParseRole(claims.Role)
			if !ok {
				problem.Write(w, r, http.StatusUnauthorized, "about:blank",
					"Invalid Token", auth.ErrInvalidToken, env)
				return
			}

			principal := Principal{UserID: claims.Subject, Role: role}
			ctx := WithPrincipal(WithRateLimitTier(r.Context(), TierAuthed), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFrom(r.Context()); !ok {
				problem.Write(w, r, http.StatusUnauthorized, "about:blank",
					"Authentication Required", auth.ErrMissingToken, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles rejects authenticated callers whose role is not in the
// allowed set. Anonymous callers get 401 rather than 403.
func RequireRoles(env string, roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				problem.Write(w, r, http.StatusUnauthorized, "about:blank",
					"Authentication Required", auth.ErrMissingToken, env)
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			problem.Write(w, r, http.StatusForbidden, "about:blank",
				"Forbidden", nil, env,
				problem.WithDetail("this action is not permitted for your role"))
		})
	}
}
