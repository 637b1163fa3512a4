package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/rbac"
)

type invitationsRepo struct {
	c conn
}

const invitationColumns = `id, workspace_id, email, role, message, token, status, invited_by,
	created_at, expires_at, accepted_at, accepted_by, revoked_at, updated_at`

func scanInvitation(s rowScanner) (domain.Invitation, error) {
	var (
		inv                   domain.Invitation
		role, status          string
		invitedBy, acceptedBy sql.NullString
		created, expires      int64
		updated               int64
		acceptedAt, revoked   sql.NullInt64
	)
	err := s.Scan(
		&inv.ID, &inv.WorkspaceID, &inv.Email, &role, &inv.Message, &inv.Token, &status, &invitedBy,
		&created, &expires, &acceptedAt, &acceptedBy, &revoked, &updated,
	)
	if err != nil {
		return domain.Invitation{}, err
	}

	inv.Role = rbac.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.InvitedBy = fromNullString(invitedBy)
	inv.AcceptedBy = fromNullString(acceptedBy)
	inv.CreatedAt = fromMillis(created)
	inv.ExpiresAt = fromMillis(expires)
	inv.AcceptedAt = fromNullMillis(acceptedAt)
	inv.RevokedAt = fromNullMillis(revoked)
	inv.UpdatedAt = fromMillis(updated)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.WorkspaceID, inv.Email, string(inv.Role), inv.Message, inv.Token,
		string(inv.Status), nullString(inv.InvitedBy),
		millis(inv.CreatedAt), millis(inv.ExpiresAt), nullMillis(inv.AcceptedAt),
		nullString(inv.AcceptedBy), nullMillis(inv.RevokedAt), millis(inv.UpdatedAt),
	)
	return err
}

func (r *invitationsRepo) GetInvitation(ctx context.Context, workspaceID, id string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.c.queryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations WHERE workspace_id = ? AND id = ?`,
		workspaceID, id,
	))
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.c.queryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations WHERE token = ?`,
		token,
	))
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, f store.InvitationFilter) ([]domain.Invitation, int, error) {
	where := `workspace_id = ?`
	args := []any{f.WorkspaceID}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, string(f.Status))
	}

	var total int
	if err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM invitations WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.c.query(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		append(args, f.Limit, f.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func (r *invitationsRepo) ExpireStale(ctx context.Context, workspaceID, email string, now time.Time) (int64, error) {
	query := `
		UPDATE invitations SET status = 'expired', updated_at = ?
		WHERE workspace_id = ? AND status = 'pending' AND expires_at <= ?`
	args := []any{millis(now), workspaceID, millis(now)}
	if email != "" {
		query += ` AND email = ?`
		args = append(args, email)
	}

	res, err := r.c.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invitationsRepo) MarkRevoked(ctx context.Context, id string, now time.Time) (bool, error) {
	return r.transition(ctx, `
		UPDATE invitations SET status = 'revoked', revoked_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending' AND expires_at > ?`,
		millis(now), millis(now), id, millis(now),
	)
}

func (r *invitationsRepo) MarkAccepted(ctx context.Context, id, userID string, now time.Time) (bool, error) {
	return r.transition(ctx, `
		UPDATE invitations SET status = 'accepted', accepted_at = ?, accepted_by = ?, updated_at = ?
		WHERE id = ? AND status = 'pending' AND expires_at > ?`,
		millis(now), userID, millis(now), id, millis(now),
	)
}

func (r *invitationsRepo) ExtendExpiry(ctx context.Context, id string, expiresAt, now time.Time) (bool, error) {
	return r.transition(ctx, `
		UPDATE invitations SET expires_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending' AND expires_at > ?`,
		millis(expiresAt), millis(now), id, millis(now),
	)
}

func (r *invitationsRepo) transition(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.c.exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
