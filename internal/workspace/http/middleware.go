package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/slogx"
	"github.com/hypolab/workspace/pkg/wsclient"
)

type ctxKey int

const actorKey ctxKey = iota

func withActor(ctx context.Context, a service.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func actorFromContext(ctx context.Context) (service.Actor, bool) {
	a, ok := ctx.Value(actorKey).(service.Actor)
	return a, ok
}

// syncUser refreshes the local user row from the verified identity. It must
// run after httpx.Authn.
func syncUser(users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := httpx.IdentityFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, wsclient.ErrorCodeUnauthorized, "authentication required")
				return
			}
			if _, err := users.Sync(r.Context(), id.Subject, id.Email, id.Name); err != nil {
				writeServiceError(w, r, "failed to sync user", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// gate is a permission a route demands on top of membership.
type gate struct {
	perm rbac.Permission
	res  rbac.Resource
}

// requireMember resolves the caller's role in the {workspaceID} path
// segment from the store and, when g is set, checks it against the engine.
// The resolved Actor is what handlers pass to the service.
func requireMember(workspaces *service.WorkspaceService, engine *rbac.Engine, g *gate) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, ok := httpx.IdentityFromContext(ctx)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, wsclient.ErrorCodeUnauthorized, "authentication required")
				return
			}

			workspaceID := r.PathValue("workspaceID")
			actor, err := workspaces.ResolveActor(ctx, workspaceID, id.Subject)
			if err != nil {
				writeServiceError(w, r, "failed to resolve workspace role", err)
				return
			}

			ctx = slogx.With(ctx,
				slog.String("workspace_id", workspaceID),
				slog.String("role", actor.Role.String()),
			)

			if g != nil && !engine.HasPermission(actor.Role, g.perm, g.res) {
				slogx.FromContext(ctx).Warn("permission denied",
					slog.String("permission", g.perm.String()),
					slog.String("resource", g.res.String()),
				)
				httpx.WriteError(w, http.StatusForbidden, wsclient.ErrorCodeForbidden,
					g.perm.String()+" on "+g.res.String()+" is required")
				return
			}

			next.ServeHTTP(w, r.WithContext(withActor(ctx, actor)))
		})
	}
}

// mustActor is for handlers mounted behind requireMember.
func mustActor(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	a, ok := actorFromContext(r.Context())
	if !ok {
		slogx.FromContext(r.Context()).Error("handler mounted without requireMember")
		httpx.WriteError(w, http.StatusInternalServerError, wsclient.ErrorCodeServerError, "internal error")
	}
	return a, ok
}
