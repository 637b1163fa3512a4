package sqlstore

import (
	"context"

	"github.com/hypolab/workspace/internal/workspace/domain"
)

type usersRepo struct {
	c conn
}

func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO users (id, email, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at`,
		u.ID, u.Email, u.DisplayName, millis(u.CreatedAt), millis(u.UpdatedAt),
	)
	return err
}

func (r *usersRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	var (
		u                domain.User
		created, updated int64
	)
	err := r.c.queryRow(ctx, `
		SELECT id, email, display_name, created_at, updated_at
		FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &created, &updated)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}
