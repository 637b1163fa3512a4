package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/slogx"

	_ "github.com/hypolab/workspace/api/workspace" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limits applied per route group.
type Limits struct {
	// Preview guards the public token lookup, keyed by client IP.
	Preview httpx.Limit `envPrefix:"PREVIEW_"`

	// Accept guards token redemption, keyed by user.
	Accept httpx.Limit `envPrefix:"ACCEPT_"`

	// API is shared by every other authenticated route, keyed by user.
	API httpx.Limit `envPrefix:"API_"`
}

func DefaultLimits() Limits {
	return Limits{
		Preview: httpx.PublicLimit,
		Accept:  httpx.StrictLimit,
		API:     httpx.APILimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	engine       *rbac.Engine
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	Limits            Limits
	InvitationService *service.InvitationService
	WorkspaceService  *service.WorkspaceService
	UserService       *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	engine *rbac.Engine,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		engine:       engine,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route. Services must be set first.
func (r *Router) ApplyRoutes() {
	// One limiter for all authenticated API routes, so a caller's budget is
	// shared across them.
	apiLimit := httpx.RateLimit(r.Limits.API, httpx.UserOrIP)
	authed := func(h http.Handler, mws ...httpx.Middleware) http.Handler {
		chain := append([]httpx.Middleware{
			httpx.Authn(r.verifier),
			apiLimit,
			syncUser(r.UserService),
		}, mws...)
		return httpx.Chain(h, chain...)
	}

	r.registerWorkspaces(authed)
	r.registerInvitations(authed)
	r.registerSystem(authed)

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Workspace Service API
//	@version		0.1.0
//	@description	Workspaces, role based permissions and the invitation lifecycle.
//	@description
//	@description	Callers authenticate with an identity token from the identity provider. The service never trusts a role sent by the caller; it reads the caller's role in the workspace from its own store on every request.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Identity token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

type authedFunc func(h http.Handler, mws ...httpx.Middleware) http.Handler

func (r *Router) member(perm rbac.Permission, res rbac.Resource) httpx.Middleware {
	return requireMember(r.WorkspaceService, r.engine, &gate{perm: perm, res: res})
}

func (r *Router) registerWorkspaces(authed authedFunc) {
	h := &WorkspacesHandler{Workspaces: r.WorkspaceService}

	r.Mux.Handle("POST /v1/workspaces", authed(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/workspaces", authed(http.HandlerFunc(h.HandleList)))

	r.Mux.Handle("GET /v1/workspaces/{workspaceID}",
		authed(http.HandlerFunc(h.HandleGet), r.member(rbac.PermRead, rbac.ResourceWorkspace)))

	// Any member may see their own view.
	r.Mux.Handle("GET /v1/workspaces/{workspaceID}/permissions",
		authed(http.HandlerFunc(h.HandlePermissions), requireMember(r.WorkspaceService, r.engine, nil)))

	r.Mux.Handle("GET /v1/workspaces/{workspaceID}/members",
		authed(http.HandlerFunc(h.HandleListMembers), r.member(rbac.PermRead, rbac.ResourceTeam)))
	r.Mux.Handle("PATCH /v1/workspaces/{workspaceID}/members/{userID}",
		authed(http.HandlerFunc(h.HandleChangeRole), r.member(rbac.PermManageTeam, rbac.ResourceUser)))
	r.Mux.Handle("DELETE /v1/workspaces/{workspaceID}/members/{userID}",
		authed(http.HandlerFunc(h.HandleRemoveMember), r.member(rbac.PermManageTeam, rbac.ResourceUser)))
}

func (r *Router) registerInvitations(authed authedFunc) {
	h := &InvitationsHandler{Invitations: r.InvitationService}
	manage := r.member(rbac.PermManageTeam, rbac.ResourceInvitation)

	r.Mux.Handle("POST /v1/workspaces/{workspaceID}/invitations", authed(http.HandlerFunc(h.HandleCreate), manage))
	r.Mux.Handle("GET /v1/workspaces/{workspaceID}/invitations", authed(http.HandlerFunc(h.HandleList), manage))
	r.Mux.Handle("POST /v1/workspaces/{workspaceID}/invitations/{invitationID}/revoke", authed(http.HandlerFunc(h.HandleRevoke), manage))
	r.Mux.Handle("POST /v1/workspaces/{workspaceID}/invitations/{invitationID}/resend", authed(http.HandlerFunc(h.HandleResend), manage))

	// GET /preview - public, limited by IP against token guessing
	r.Mux.Handle("GET /v1/invitations/preview",
		httpx.Chain(http.HandlerFunc(h.HandlePreview),
			httpx.RateLimit(r.Limits.Preview, httpx.ClientIP),
		),
	)

	// POST /accept - identity only, no membership yet; strict limit per user
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.Authn(r.verifier),
			httpx.RateLimit(r.Limits.Accept, httpx.UserOrIP),
			syncUser(r.UserService),
		),
	)
}

func (r *Router) registerSystem(authed authedFunc) {
	r.Mux.Handle("GET /v1/permissions", authed(PermissionTableHandler(r.engine)))

	// Health checks are not rate limited; orchestrators poll them.
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
