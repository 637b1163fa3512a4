package wsclient

import (
	"time"

	"github.com/hypolab/workspace/pkg/rbac"
)

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set on
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database" example:"ok"`
}

// ============================================================================
// Permissions
// ============================================================================

// PermissionTableResponse is the whole role table, for clients that mirror
// the checks locally.
type PermissionTableResponse struct {
	Roles []rbac.PermissionsView `json:"roles"`
}

// PermissionsResponse is what the caller's own role allows in one workspace.
type PermissionsResponse struct {
	WorkspaceID string `json:"workspace_id"`
	rbac.PermissionsView
}

// ============================================================================
// Workspaces and members
// ============================================================================

type CreateWorkspaceRequest struct {
	Name string `json:"name" example:"Growth experiments"`
}

// WorkspaceResponse is a workspace as seen by the caller. Role is the
// caller's role in it.
type WorkspaceResponse struct {
	ID        string    `json:"id" example:"01J8Z3K6Q2W7X9R4T5Y6U7I8O9"`
	Name      string    `json:"name" example:"Growth experiments"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Role      rbac.Role `json:"role" example:"admin"`
}

type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

type MemberResponse struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        rbac.Role `json:"role" example:"member"`
	JoinedAt    time.Time `json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" example:"viewer"`
}

// ============================================================================
// Invitations
// ============================================================================

type CreateInvitationRequest struct {
	Email   string `json:"email" example:"ana@example.com"`
	Role    string `json:"role" example:"member"`
	Message string `json:"message,omitempty" example:"Come help with the pricing test"`
}

// InvitationResponse never carries the token. The accept link is only
// returned to the admin who creates or resends the invitation.
type InvitationResponse struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Email       string     `json:"email"`
	Role        rbac.Role  `json:"role" example:"member"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status" example:"pending"`
	InvitedBy   string     `json:"invited_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy  string     `json:"accepted_by,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

type CreateInvitationResponse struct {
	Invitation   InvitationResponse `json:"invitation"`
	AcceptURL    string             `json:"accept_url"`
	NoticeQueued bool               `json:"notice_queued"`
}

type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

// InvitationPreviewResponse is the public summary shown to a token holder.
type InvitationPreviewResponse struct {
	Email         string    `json:"email"`
	Role          rbac.Role `json:"role" example:"member"`
	Message       string    `json:"message,omitempty"`
	WorkspaceID   string    `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	InviterName   string    `json:"inviter_name,omitempty"`
	Status        string    `json:"status" example:"pending"`
	Expired       bool      `json:"expired"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

type AcceptInvitationResponse struct {
	Invitation  InvitationResponse `json:"invitation"`
	WorkspaceID string             `json:"workspace_id"`
	Role        rbac.Role          `json:"role" example:"member"`
	RedirectURL string             `json:"redirect_url"`
}
