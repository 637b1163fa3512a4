package sqlstore

import (
	"context"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/rbac"
)

type membershipsRepo struct {
	c conn
}

const memberColumns = `m.workspace_id, m.user_id, m.role, m.created_at, m.updated_at, u.email, u.display_name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(s rowScanner) (domain.Member, error) {
	var (
		m                domain.Member
		role             string
		created, updated int64
	)
	if err := s.Scan(&m.WorkspaceID, &m.UserID, &role, &created, &updated, &m.Email, &m.DisplayName); err != nil {
		return domain.Member{}, err
	}
	m.Role = rbac.Role(role)
	m.CreatedAt = fromMillis(created)
	m.UpdatedAt = fromMillis(updated)
	return m, nil
}

func (r *membershipsRepo) AddMember(ctx context.Context, m domain.Membership) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO memberships (workspace_id, user_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.WorkspaceID, m.UserID, string(m.Role), millis(m.CreatedAt), millis(m.UpdatedAt),
	)
	return err
}

func (r *membershipsRepo) GetMember(ctx context.Context, workspaceID, userID string) (domain.Membership, error) {
	m, err := scanMember(r.c.queryRow(ctx, `
		SELECT `+memberColumns+`
		FROM memberships m JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = ? AND m.user_id = ?`,
		workspaceID, userID,
	))
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m.Membership, nil
}

func (r *membershipsRepo) GetMemberByEmail(ctx context.Context, workspaceID, email string) (domain.Member, error) {
	m, err := scanMember(r.c.queryRow(ctx, `
		SELECT `+memberColumns+`
		FROM memberships m JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = ? AND u.email = ?
		LIMIT 1`,
		workspaceID, email,
	))
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	rows, err := r.c.query(ctx, `
		SELECT `+memberColumns+`
		FROM memberships m JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = ?
		ORDER BY m.created_at, m.user_id`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) UpdateMemberRole(ctx context.Context, workspaceID, userID string, role rbac.Role, now time.Time) error {
	res, err := r.c.exec(ctx, `
		UPDATE memberships SET role = ?, updated_at = ?
		WHERE workspace_id = ? AND user_id = ?`,
		string(role), millis(now), workspaceID, userID,
	)
	return requireOneRow(res, err)
}

func (r *membershipsRepo) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	res, err := r.c.exec(ctx, `
		DELETE FROM memberships WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID,
	)
	return requireOneRow(res, err)
}

// Aggregates cannot take row locks, so the rows are counted here.
func (r *membershipsRepo) LockMembersWithRole(ctx context.Context, workspaceID string, role rbac.Role) (int, error) {
	q := `SELECT user_id FROM memberships WHERE workspace_id = ? AND role = ?`
	if r.c.d.RowLocks {
		q += ` FOR UPDATE`
	}
	rows, err := r.c.query(ctx, q, workspaceID, string(role))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

func requireOneRow(res interface{ RowsAffected() (int64, error) }, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
