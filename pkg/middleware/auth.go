package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/response"
)

// PrincipalResolver turns verified claims into the current caller, typically
// by loading the user the token names. An error rejects the request with 401.
type PrincipalResolver func(ctx context.Context, claims *auth.Claims) (auth.Principal, error)

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the resolved caller in the request context. The request-scoped
// logger gains a user_id attribute.
func Authenticate(resolve PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w, "Not authenticated")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w, "Could not validate credentials")
				return
			}

			p, err := resolve(r.Context(), claims)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("token subject rejected", "sub", claims.Subject, "error", err)
				response.Unauthorized(w, "Could not validate credentials")
				return
			}

			ctx := auth.WithPrincipal(r.Context(), p)
			ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("user_id", p.UserID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
