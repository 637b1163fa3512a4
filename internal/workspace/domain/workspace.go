package domain

import (
	"time"

	"github.com/hypolab/workspace/pkg/rbac"
)

// User mirrors the identity provider's account. ID is the provider subject.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Workspace struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

// Membership is the single role a user holds in a workspace.
type Membership struct {
	WorkspaceID string
	UserID      string
	Role        rbac.Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is a membership joined with the user's profile, for listings.
type Member struct {
	Membership
	Email       string
	DisplayName string
}

// WorkspaceWithRole is a workspace as seen by one of its members.
type WorkspaceWithRole struct {
	Workspace
	Role rbac.Role
}
