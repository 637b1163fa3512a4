package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/notify"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/cryptox"
	"github.com/hypolab/workspace/pkg/idx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/slogx"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// InvitationService runs the invitation lifecycle. Every mutation is a
// single transaction and every transition is a compare-and-set on the
// pending status, so two concurrent transitions on one invitation cannot
// both win.
type InvitationService struct {
	Store  store.Store
	Engine *rbac.Engine

	// Notifier receives a notice after create and resend commit. Nil skips
	// notification.
	Notifier notify.Notifier

	// Attacher creates the membership on accept. Nil means StoreAttacher.
	Attacher MembershipAttacher

	// BaseURL is the public origin accept links and redirects point at.
	BaseURL string

	// Validity is how long an invitation stays redeemable after create or
	// resend. Zero means domain.DefaultInvitationValidity.
	Validity time.Duration

	Now func() time.Time
}

type CreateInvitationInput struct {
	Email   string
	Role    string
	Message string
}

type CreateResult struct {
	Invitation   domain.Invitation
	AcceptURL    string
	NoticeQueued bool
}

type ResendResult = CreateResult

type InvitationPage struct {
	Items    []domain.Invitation
	Total    int
	Page     int
	PageSize int
}

type AcceptResult struct {
	Invitation  domain.Invitation
	Membership  domain.Membership
	RedirectURL string
}

// Create issues a pending invitation for email in the workspace.
// It performs the following steps:
// 1. Checks the actor holds manage_team on invitation
// 2. Validates email, role and message
// 3. Rejects emails that already belong to a member
// 4. Expires stale pending invitations for the same address
// 5. Inserts the invitation, relying on the one-pending index for duplicates
// 6. Enqueues the notice once the transaction has committed
func (s *InvitationService) Create(ctx context.Context, actor Actor, workspaceID string, in CreateInvitationInput) (CreateResult, error) {
	log := slogx.FromContext(ctx).With(slog.String("workspace_id", workspaceID))

	// 1. Gate
	if err := authorize(ctx, s.Engine, actor, rbac.PermManageTeam, rbac.ResourceInvitation); err != nil {
		return CreateResult{}, err
	}

	// 2. Validate input
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		log.Warn("invitation rejected: invalid email")
		return CreateResult{}, ErrInvalidEmail
	}
	role, ok := rbac.ParseRole(in.Role)
	if !ok {
		log.Warn("invitation rejected: invalid role", slog.String("role", in.Role))
		return CreateResult{}, ErrInvalidRole
	}
	message := strings.TrimSpace(in.Message)
	if utf8.RuneCountInString(message) > domain.MaxInvitationMessage {
		log.Warn("invitation rejected: message too long")
		return CreateResult{}, ErrMessageTooLong
	}

	token, err := cryptox.NewInviteToken()
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return CreateResult{}, err
	}

	at := now(s.Now)
	inv := domain.Invitation{
		ID:          idx.NewAt(at).String(),
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        role,
		Message:     message,
		Token:       token,
		Status:      domain.StatusPending,
		InvitedBy:   actor.UserID,
		CreatedAt:   at,
		ExpiresAt:   at.Add(s.validity()),
		UpdatedAt:   at,
	}

	// 3-5. Check membership, clear stale rows and insert atomically
	var notice notify.InvitationNotice
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Workspaces().GetWorkspace(ctx, workspaceID); err != nil {
			return mapNotFound(err, ErrWorkspaceUnknown)
		}

		_, err := tx.Memberships().GetMemberByEmail(ctx, workspaceID, email)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if _, err := tx.Invitations().ExpireStale(ctx, workspaceID, email, at); err != nil {
			return err
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrInvitationExists
			}
			return err
		}

		notice, err = s.notice(ctx, tx, inv, false)
		return err
	})
	if err != nil {
		logFailure(log, "invitation create failed", err, slog.String("email", email))
		return CreateResult{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("role", string(role)),
		slog.String("invited_by", actor.UserID),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	// 6. Notify outside the transaction
	return CreateResult{
		Invitation:   inv,
		AcceptURL:    notice.AcceptURL,
		NoticeQueued: s.send(ctx, notice),
	}, nil
}

// List returns one page of the workspace's invitations, newest first.
// Stale pending rows are expired before the page is read. An empty status
// matches every status; page and pageSize of zero take the defaults.
func (s *InvitationService) List(ctx context.Context, actor Actor, workspaceID, status string, page, pageSize int) (InvitationPage, error) {
	log := slogx.FromContext(ctx).With(slog.String("workspace_id", workspaceID))

	if err := authorize(ctx, s.Engine, actor, rbac.PermManageTeam, rbac.ResourceInvitation); err != nil {
		return InvitationPage{}, err
	}

	filter := domain.InvitationStatus(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return InvitationPage{}, ErrInvalidStatus
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 || pageSize < 1 || pageSize > MaxPageSize {
		return InvitationPage{}, ErrInvalidPage
	}

	at := now(s.Now)
	out := InvitationPage{Page: page, PageSize: pageSize}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Invitations().ExpireStale(ctx, workspaceID, "", at)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Debug("expired stale invitations", slog.Int64("count", n))
		}

		out.Items, out.Total, err = tx.Invitations().ListInvitations(ctx, store.InvitationFilter{
			WorkspaceID: workspaceID,
			Status:      filter,
			Limit:       pageSize,
			Offset:      (page - 1) * pageSize,
		})
		return err
	})
	if err != nil {
		logFailure(log, "invitation list failed", err)
		return InvitationPage{}, err
	}
	return out, nil
}

// Revoke moves a pending invitation to revoked. Anything already terminal,
// including an invitation that has just run out, is a conflict.
func (s *InvitationService) Revoke(ctx context.Context, actor Actor, workspaceID, id string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("workspace_id", workspaceID),
		slog.String("invitation_id", id),
	)

	if err := authorize(ctx, s.Engine, actor, rbac.PermManageTeam, rbac.ResourceInvitation); err != nil {
		return domain.Invitation{}, err
	}

	at := now(s.Now)
	var (
		out      domain.Invitation
		rejected error
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitation(ctx, workspaceID, id)
		if err != nil {
			return mapNotFound(err, ErrInvitationUnknown)
		}

		st, err := settle(ctx, tx, &inv, at)
		if err != nil {
			return err
		}
		switch st {
		case domain.StatusPending:
		case domain.StatusExpired:
			// Keep the materialized expiry.
			rejected = ErrAlreadyProcessed
			return nil
		default:
			return ErrAlreadyProcessed
		}

		ok, err := tx.Invitations().MarkRevoked(ctx, inv.ID, at)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}

		out, err = tx.Invitations().GetInvitation(ctx, workspaceID, id)
		return err
	})
	if err == nil {
		err = rejected
	}
	if err != nil {
		logFailure(log, "invitation revoke failed", err)
		return domain.Invitation{}, err
	}

	log.Info("invitation revoked", slog.String("revoked_by", actor.UserID))
	return out, nil
}

// Resend pushes the expiry of a pending invitation out by the validity
// period and sends the notice again. The token does not change, so links
// from earlier notices keep working.
func (s *InvitationService) Resend(ctx context.Context, actor Actor, workspaceID, id string) (ResendResult, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("workspace_id", workspaceID),
		slog.String("invitation_id", id),
	)

	if err := authorize(ctx, s.Engine, actor, rbac.PermManageTeam, rbac.ResourceInvitation); err != nil {
		return ResendResult{}, err
	}

	at := now(s.Now)
	var (
		out      domain.Invitation
		notice   notify.InvitationNotice
		rejected error
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitation(ctx, workspaceID, id)
		if err != nil {
			return mapNotFound(err, ErrInvitationUnknown)
		}

		st, err := settle(ctx, tx, &inv, at)
		if err != nil {
			return err
		}
		switch st {
		case domain.StatusPending:
		case domain.StatusExpired:
			rejected = ErrInvitationExpired
			return nil
		default:
			return ErrAlreadyProcessed
		}

		ok, err := tx.Invitations().ExtendExpiry(ctx, inv.ID, at.Add(s.validity()), at)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}

		if out, err = tx.Invitations().GetInvitation(ctx, workspaceID, id); err != nil {
			return err
		}
		notice, err = s.notice(ctx, tx, out, true)
		return err
	})
	if err == nil {
		err = rejected
	}
	if err != nil {
		logFailure(log, "invitation resend failed", err)
		return ResendResult{}, err
	}

	log.Info("invitation resent", slog.Time("expires_at", out.ExpiresAt))
	return ResendResult{
		Invitation:   out,
		AcceptURL:    notice.AcceptURL,
		NoticeQueued: s.send(ctx, notice),
	}, nil
}

// Preview is the unauthenticated view of an invitation for whoever holds
// its token. Reading it settles a lapsed expiry like any other read.
func (s *InvitationService) Preview(ctx context.Context, token string) (domain.InvitationPreview, error) {
	log := slogx.FromContext(ctx).With(slog.String("token_fp", cryptox.FingerprintToken(token)))

	if !cryptox.IsInviteToken(token) {
		log.Warn("invitation preview with malformed token")
		return domain.InvitationPreview{}, ErrInvitationUnknown
	}

	at := now(s.Now)
	var out domain.InvitationPreview
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitationByToken(ctx, token)
		if err != nil {
			return mapNotFound(err, ErrInvitationUnknown)
		}
		if _, err := settle(ctx, tx, &inv, at); err != nil {
			return err
		}

		ws, err := tx.Workspaces().GetWorkspace(ctx, inv.WorkspaceID)
		if err != nil {
			return mapNotFound(err, ErrInvitationUnknown)
		}
		inviter, err := s.inviterName(ctx, tx, inv)
		if err != nil {
			return err
		}

		out = domain.InvitationPreview{
			Email:         inv.Email,
			Role:          inv.Role,
			Message:       inv.Message,
			WorkspaceID:   ws.ID,
			WorkspaceName: ws.Name,
			InviterName:   inviter,
			Status:        inv.Status,
			Expired:       inv.Status == domain.StatusExpired,
			ExpiresAt:     inv.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		logFailure(log, "invitation preview failed", err)
		return domain.InvitationPreview{}, err
	}
	return out, nil
}

// Accept redeems token for userID. The user's current email must match the
// invitation's. Marking the invitation accepted and attaching the
// membership commit together or not at all.
func (s *InvitationService) Accept(ctx context.Context, token, userID string) (AcceptResult, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("token_fp", cryptox.FingerprintToken(token)),
		slog.String("user_id", userID),
	)

	if !cryptox.IsInviteToken(token) {
		log.Warn("invitation accept with malformed token")
		return AcceptResult{}, ErrInvitationUnknown
	}

	at := now(s.Now)
	var (
		out      AcceptResult
		rejected error
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Look up the invitation
		inv, err := tx.Invitations().GetInvitationByToken(ctx, token)
		if err != nil {
			return mapNotFound(err, ErrInvitationUnknown)
		}
		if !cryptox.EqualTokens(inv.Token, token) {
			return ErrInvitationUnknown
		}

		// 2. Settle expiry and require pending
		st, err := settle(ctx, tx, &inv, at)
		if err != nil {
			return err
		}
		switch st {
		case domain.StatusPending:
		case domain.StatusExpired:
			rejected = ErrInvitationExpired
			return nil
		default:
			return ErrAlreadyProcessed
		}

		// 3. The accepting identity must own the invited address
		user, err := tx.Users().GetUser(ctx, userID)
		if err != nil {
			return mapNotFound(err, ErrUserUnknown)
		}
		if normalizeEmail(user.Email) != inv.Email {
			return ErrEmailMismatch
		}

		// 4. Refuse if already a member
		_, err = tx.Memberships().GetMember(ctx, inv.WorkspaceID, userID)
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// 5. Transition and attach
		ok, err := tx.Invitations().MarkAccepted(ctx, inv.ID, userID, at)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}

		m := domain.Membership{
			WorkspaceID: inv.WorkspaceID,
			UserID:      userID,
			Role:        inv.Role,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := s.attacher().AttachMember(ctx, tx, m); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyMember
			}
			return err
		}

		out.Membership = m
		out.Invitation, err = tx.Invitations().GetInvitation(ctx, inv.WorkspaceID, inv.ID)
		return err
	})
	if err == nil {
		err = rejected
	}
	if err != nil {
		logFailure(log, "invitation accept failed", err)
		return AcceptResult{}, err
	}

	out.RedirectURL = joinURL(s.BaseURL, "workspaces", out.Invitation.WorkspaceID)

	log.Info("invitation accepted",
		slog.String("invitation_id", out.Invitation.ID),
		slog.String("workspace_id", out.Invitation.WorkspaceID),
		slog.String("role", string(out.Membership.Role)),
	)
	return out, nil
}

// AcceptURL is the link a notice carries for token.
func (s *InvitationService) AcceptURL(token string) string {
	return joinURL(s.BaseURL, "invitations", "accept") + "?" + url.Values{"token": {token}}.Encode()
}

func (s *InvitationService) validity() time.Duration {
	if s.Validity <= 0 {
		return domain.DefaultInvitationValidity
	}
	return s.Validity
}

func (s *InvitationService) attacher() MembershipAttacher {
	if s.Attacher == nil {
		return StoreAttacher{}
	}
	return s.Attacher
}

func (s *InvitationService) notice(ctx context.Context, tx store.Tx, inv domain.Invitation, resend bool) (notify.InvitationNotice, error) {
	ws, err := tx.Workspaces().GetWorkspace(ctx, inv.WorkspaceID)
	if err != nil {
		return notify.InvitationNotice{}, mapNotFound(err, ErrWorkspaceUnknown)
	}
	inviter, err := s.inviterName(ctx, tx, inv)
	if err != nil {
		return notify.InvitationNotice{}, err
	}
	return notify.InvitationNotice{
		InvitationID:  inv.ID,
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		Email:         inv.Email,
		Role:          string(inv.Role),
		Message:       inv.Message,
		InviterName:   inviter,
		AcceptURL:     s.AcceptURL(inv.Token),
		ExpiresAt:     inv.ExpiresAt,
		Resend:        resend,
	}, nil
}

func (s *InvitationService) inviterName(ctx context.Context, tx store.Tx, inv domain.Invitation) (string, error) {
	if inv.InvitedBy == "" {
		return "", nil
	}
	u, err := tx.Users().GetUser(ctx, inv.InvitedBy)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.DisplayName, nil
}

// send hands the notice over and reports whether it was accepted. A failed
// enqueue never undoes the committed invitation.
func (s *InvitationService) send(ctx context.Context, n notify.InvitationNotice) bool {
	if s.Notifier == nil {
		return false
	}
	if err := s.Notifier.NotifyInvitation(ctx, n); err != nil {
		slogx.FromContext(ctx).Error("failed to enqueue invitation notice",
			slog.String("invitation_id", n.InvitationID),
			slog.Any("error", err),
		)
		return false
	}
	return true
}

// settle writes a lapsed expiry through to the row and returns the
// effective status.
func settle(ctx context.Context, tx store.Tx, inv *domain.Invitation, at time.Time) (domain.InvitationStatus, error) {
	st := domain.EffectiveStatus(*inv, at)
	if st == domain.StatusExpired && inv.Status == domain.StatusPending {
		if _, err := tx.Invitations().ExpireStale(ctx, inv.WorkspaceID, inv.Email, at); err != nil {
			return st, err
		}
		inv.Status = domain.StatusExpired
		inv.UpdatedAt = at
	}
	return st, nil
}

func joinURL(base string, elem ...string) string {
	u, err := url.JoinPath(base, elem...)
	if err != nil {
		return strings.TrimRight(base, "/") + "/" + strings.Join(elem, "/")
	}
	return u
}
