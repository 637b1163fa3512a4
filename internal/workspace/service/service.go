package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/slogx"
)

// Actor is the caller of a gated operation. Role must come from the store,
// never from the request.
type Actor struct {
	UserID string
	Role   rbac.Role
}

// MembershipAttacher creates the membership an accepted invitation grants.
// It runs inside the accepting transaction.
type MembershipAttacher interface {
	AttachMember(ctx context.Context, tx store.Tx, m domain.Membership) error
}

// StoreAttacher writes the membership row directly.
type StoreAttacher struct{}

func (StoreAttacher) AttachMember(ctx context.Context, tx store.Tx, m domain.Membership) error {
	return tx.Memberships().AddMember(ctx, m)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// authorize asks the engine and logs denials. A nil engine denies.
func authorize(ctx context.Context, engine *rbac.Engine, actor Actor, perm rbac.Permission, res rbac.Resource) error {
	if engine.HasPermission(actor.Role, perm, res) {
		return nil
	}
	slogx.FromContext(ctx).Warn("permission denied",
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)),
		slog.String("permission", string(perm)),
		slog.String("resource", string(res)),
	)
	return Errorf(CodeForbidden, "%s on %s is required", perm, res)
}

// now is the service clock: UTC, millisecond precision, the resolution the
// stores keep.
func now(clock func() time.Time) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Millisecond)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email,max=254") == nil
}

// mapNotFound turns store.ErrNotFound into the given service error and
// passes anything else through.
func mapNotFound(err error, notFound error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return err
}

// logFailure logs a rejected operation at Warn and anything unexpected,
// usually a store failure, at Error.
func logFailure(log *slog.Logger, msg string, err error, attrs ...any) {
	if CodeOf(err) != "" {
		log.Warn(msg, append(attrs, slog.String("reason", err.Error()))...)
		return
	}
	log.Error(msg, append(attrs, slog.Any("error", err))...)
}
