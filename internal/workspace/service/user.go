package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/slogx"
)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

// Sync mirrors a verified identity into the users table. The row is only
// written when something changed.
func (s *UserService) Sync(ctx context.Context, subject, email, name string) (domain.User, error) {
	log := slogx.FromContext(ctx).With(slog.String("user_id", subject))

	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if subject == "" || !validEmail(email) {
		log.Warn("identity rejected: missing subject or invalid email")
		return domain.User{}, Errorf(CodeUnauthorized, "identity lacks a subject or a valid email")
	}

	at := now(s.Now)
	existing, err := s.Store.Users().GetUser(ctx, subject)
	switch {
	case err == nil:
		if existing.Email == email && existing.DisplayName == name {
			return existing, nil
		}
	case errors.Is(err, store.ErrNotFound):
		existing = domain.User{ID: subject, CreatedAt: at}
	default:
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	u := domain.User{
		ID:          subject,
		Email:       email,
		DisplayName: name,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   at,
	}
	if err := s.Store.Users().UpsertUser(ctx, u); err != nil {
		log.Error("failed to upsert user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Debug("user synced", slog.String("email", email))
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUser(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err, ErrUserUnknown)
	}
	return u, nil
}
