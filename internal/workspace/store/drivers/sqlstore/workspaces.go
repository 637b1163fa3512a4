package sqlstore

import (
	"context"
	"database/sql"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/pkg/rbac"
)

type workspacesRepo struct {
	c conn
}

func (r *workspacesRepo) CreateWorkspace(ctx context.Context, w domain.Workspace) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO workspaces (id, name, created_by, created_at)
		VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, nullString(w.CreatedBy), millis(w.CreatedAt),
	)
	return err
}

func (r *workspacesRepo) GetWorkspace(ctx context.Context, id string) (domain.Workspace, error) {
	var (
		w         domain.Workspace
		createdBy sql.NullString
		created   int64
	)
	err := r.c.queryRow(ctx, `
		SELECT id, name, created_by, created_at
		FROM workspaces WHERE id = ?`, id,
	).Scan(&w.ID, &w.Name, &createdBy, &created)
	if err != nil {
		return domain.Workspace{}, mapNotFound(err)
	}
	w.CreatedBy = fromNullString(createdBy)
	w.CreatedAt = fromMillis(created)
	return w, nil
}

func (r *workspacesRepo) ListWorkspacesForUser(ctx context.Context, userID string) ([]domain.WorkspaceWithRole, error) {
	rows, err := r.c.query(ctx, `
		SELECT w.id, w.name, w.created_by, w.created_at, m.role
		FROM memberships m
		JOIN workspaces w ON w.id = m.workspace_id
		WHERE m.user_id = ?
		ORDER BY m.created_at, w.id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WorkspaceWithRole{}
	for rows.Next() {
		var (
			w         domain.WorkspaceWithRole
			createdBy sql.NullString
			created   int64
			role      string
		)
		if err := rows.Scan(&w.ID, &w.Name, &createdBy, &created, &role); err != nil {
			return nil, err
		}
		w.CreatedBy = fromNullString(createdBy)
		w.CreatedAt = fromMillis(created)
		w.Role = rbac.Role(role)
		out = append(out, w)
	}
	return out, rows.Err()
}
