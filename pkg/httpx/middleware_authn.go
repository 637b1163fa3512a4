package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/hypolab/workspace/pkg/slogx"
)

// Authn verifies the bearer identity token and stores the caller's Identity
// in the request context. It establishes identity only; authorization is the
// handler's job.
func Authn(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("identity token rejected", slog.Any("err", err))
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = WithIdentity(ctx, Identity{
				Subject:       claims.Subject,
				Email:         strings.ToLower(strings.TrimSpace(claims.Email)),
				Name:          claims.Name,
				EmailVerified: claims.EmailVerified,
			})
			ctx = slogx.With(ctx, slog.String("user_id", claims.Subject))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750 style challenge.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
