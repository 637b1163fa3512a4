package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/idx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/slogx"
)

// MaxWorkspaceName caps workspace names, in characters.
const MaxWorkspaceName = 100

type WorkspaceService struct {
	Store  store.Store
	Engine *rbac.Engine
	Now    func() time.Time
}

// ResolveActor loads the role userID holds in the workspace. It is the only
// source of the role any gated operation sees.
func (s *WorkspaceService) ResolveActor(ctx context.Context, workspaceID, userID string) (Actor, error) {
	m, err := s.Store.Memberships().GetMember(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("request from non-member",
				slog.String("workspace_id", workspaceID),
				slog.String("user_id", userID),
			)
			return Actor{}, ErrNotMember
		}
		return Actor{}, err
	}
	return Actor{UserID: userID, Role: m.Role}, nil
}

// Create makes a workspace with userID as its first admin.
func (s *WorkspaceService) Create(ctx context.Context, userID, name string) (domain.WorkspaceWithRole, error) {
	log := slogx.FromContext(ctx).With(slog.String("user_id", userID))

	name = strings.TrimSpace(name)
	if validate.Var(name, "required,max="+strconv.Itoa(MaxWorkspaceName)) != nil {
		log.Warn("workspace rejected: invalid name")
		return domain.WorkspaceWithRole{}, ErrInvalidName
	}

	at := now(s.Now)
	ws := domain.Workspace{
		ID:        idx.NewAt(at).String(),
		Name:      name,
		CreatedBy: userID,
		CreatedAt: at,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUser(ctx, userID); err != nil {
			return mapNotFound(err, ErrUserUnknown)
		}
		if err := tx.Workspaces().CreateWorkspace(ctx, ws); err != nil {
			return err
		}
		return tx.Memberships().AddMember(ctx, domain.Membership{
			WorkspaceID: ws.ID,
			UserID:      userID,
			Role:        rbac.RoleAdmin,
			CreatedAt:   at,
			UpdatedAt:   at,
		})
	})
	if err != nil {
		logFailure(log, "workspace create failed", err)
		return domain.WorkspaceWithRole{}, err
	}

	log.Info("workspace created", slog.String("workspace_id", ws.ID))
	return domain.WorkspaceWithRole{Workspace: ws, Role: rbac.RoleAdmin}, nil
}

func (s *WorkspaceService) Get(ctx context.Context, actor Actor, workspaceID string) (domain.WorkspaceWithRole, error) {
	if err := authorize(ctx, s.Engine, actor, rbac.PermRead, rbac.ResourceWorkspace); err != nil {
		return domain.WorkspaceWithRole{}, err
	}
	ws, err := s.Store.Workspaces().GetWorkspace(ctx, workspaceID)
	if err != nil {
		return domain.WorkspaceWithRole{}, mapNotFound(err, ErrWorkspaceUnknown)
	}
	return domain.WorkspaceWithRole{Workspace: ws, Role: actor.Role}, nil
}

// ListForUser returns every workspace userID belongs to. No gate: it only
// ever shows the caller their own memberships.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID string) ([]domain.WorkspaceWithRole, error) {
	return s.Store.Workspaces().ListWorkspacesForUser(ctx, userID)
}

func (s *WorkspaceService) ListMembers(ctx context.Context, actor Actor, workspaceID string) ([]domain.Member, error) {
	if err := authorize(ctx, s.Engine, actor, rbac.PermRead, rbac.ResourceTeam); err != nil {
		return nil, err
	}
	return s.Store.Memberships().ListMembers(ctx, workspaceID)
}

// ChangeRole sets the role of a member. Demoting the last admin is refused.
func (s *WorkspaceService) ChangeRole(ctx context.Context, actor Actor, workspaceID, userID, role string) (domain.Membership, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("workspace_id", workspaceID),
		slog.String("member_id", userID),
	)

	if err := authorize(ctx, s.Engine, actor, rbac.PermManageTeam, rbac.ResourceUser); err != nil {
		return domain.Membership{}, err
	}
	next, ok := rbac.ParseRole(role)
	if !ok {
		return domain.Membership{}, ErrInvalidRole
	}

	at := now(s.Now)
	var out domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		admins, err := tx.Memberships().LockMembersWithRole(ctx, workspaceID, rbac.RoleAdmin)
		if err != nil {
			return err
		}
		m, err := tx.Memberships().GetMember(ctx, workspaceID, userID)
		if err != nil {
			return mapNotFound(err, ErrMemberUnknown)
		}
		if m.Role == next {
			out = m
			return nil
		}
		if m.Role == rbac.RoleAdmin && admins <= 1 {
			return ErrLastAdmin
		}
		if err := tx.Memberships().UpdateMemberRole(ctx, workspaceID, userID, next, at); err != nil {
			return mapNotFound(err, ErrMemberUnknown)
		}
		out, err = tx.Memberships().GetMember(ctx, workspaceID, userID)
		return err
	})
	if err != nil {
		logFailure(log, "member role change failed", err)
		return domain.Membership{}, err
	}

	log.Info("member role changed",
		slog.String("role", string(out.Role)),
		slog.String("changed_by", actor.UserID),
	)
	return out, nil
}

// RemoveMember drops a member from the workspace. Removing the last admin is
// refused.
func (s *WorkspaceService) RemoveMember(ctx context.Context, actor Actor, workspaceID, userID string) error {
	log := slogx.FromContext(ctx).With(
		slog.String("workspace_id", workspaceID),
		slog.String("member_id", userID),
	)

	if err := authorize(ctx, s.Engine, actor, rbac.PermManageTeam, rbac.ResourceUser); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		admins, err := tx.Memberships().LockMembersWithRole(ctx, workspaceID, rbac.RoleAdmin)
		if err != nil {
			return err
		}
		m, err := tx.Memberships().GetMember(ctx, workspaceID, userID)
		if err != nil {
			return mapNotFound(err, ErrMemberUnknown)
		}
		if m.Role == rbac.RoleAdmin && admins <= 1 {
			return ErrLastAdmin
		}
		return mapNotFound(tx.Memberships().RemoveMember(ctx, workspaceID, userID), ErrMemberUnknown)
	})
	if err != nil {
		logFailure(log, "member removal failed", err)
		return err
	}

	log.Info("member removed", slog.String("removed_by", actor.UserID))
	return nil
}

// Permissions is what the actor may do here, for driving client UI.
func (s *WorkspaceService) Permissions(actor Actor) rbac.PermissionsView {
	return s.Engine.View(actor.Role)
}
