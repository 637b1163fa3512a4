package store

import (
	"context"
	"errors"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/pkg/rbac"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers (sqlite, postgres)
// implement it. Repositories hang off accessor methods so a Tx exposes the
// same surface bound to one transaction.
type Store interface {
	Users() Users
	Workspaces() Workspaces
	Memberships() Memberships
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to one transaction. Nested transactions are refused.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// UpsertUser inserts the user or refreshes email and display name.
	UpsertUser(ctx context.Context, u domain.User) error

	GetUser(ctx context.Context, id string) (domain.User, error)
}

type Workspaces interface {
	CreateWorkspace(ctx context.Context, w domain.Workspace) error
	GetWorkspace(ctx context.Context, id string) (domain.Workspace, error)

	// ListWorkspacesForUser returns the workspaces userID belongs to, oldest
	// membership first.
	ListWorkspacesForUser(ctx context.Context, userID string) ([]domain.WorkspaceWithRole, error)
}

type Memberships interface {
	// AddMember fails with ErrAlreadyExists when the user is already a member.
	AddMember(ctx context.Context, m domain.Membership) error

	GetMember(ctx context.Context, workspaceID, userID string) (domain.Membership, error)

	// GetMemberByEmail matches the member's current user email.
	GetMemberByEmail(ctx context.Context, workspaceID, email string) (domain.Member, error)

	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)

	UpdateMemberRole(ctx context.Context, workspaceID, userID string, role rbac.Role, now time.Time) error
	RemoveMember(ctx context.Context, workspaceID, userID string) error

	// LockMembersWithRole counts the members holding role and locks their
	// rows until the transaction ends, so two transactions cannot both act
	// on the same count.
	LockMembersWithRole(ctx context.Context, workspaceID string, role rbac.Role) (int, error)
}

// InvitationFilter selects a page of a workspace's invitations. An empty
// Status matches every status.
type InvitationFilter struct {
	WorkspaceID string
	Status      domain.InvitationStatus
	Limit       int
	Offset      int
}

// Invitations transitions are compare-and-set: each Mark* only applies to a
// row that is still pending and unexpired at now, and reports whether it did.
type Invitations interface {
	// CreateInvitation fails with ErrAlreadyExists when the workspace already
	// has a pending invitation for the email.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitation(ctx context.Context, workspaceID, id string) (domain.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error)

	ListInvitations(ctx context.Context, f InvitationFilter) ([]domain.Invitation, int, error)

	// ExpireStale flips pending rows of the workspace whose expiry has been
	// reached to expired. A non-empty email narrows it to that address.
	ExpireStale(ctx context.Context, workspaceID, email string, now time.Time) (int64, error)

	MarkRevoked(ctx context.Context, id string, now time.Time) (bool, error)
	MarkAccepted(ctx context.Context, id, userID string, now time.Time) (bool, error)
	ExtendExpiry(ctx context.Context, id string, expiresAt, now time.Time) (bool, error)
}
