package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/notify"
	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/internal/workspace/store/drivers/sqlite"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://app.example.com"

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.InvitationNotice
	err     error
}

func (n *recordingNotifier) NotifyInvitation(_ context.Context, in notify.InvitationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, in)
	return nil
}

func (n *recordingNotifier) all() []notify.InvitationNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.InvitationNotice(nil), n.notices...)
}

type failingAttacher struct{}

func (failingAttacher) AttachMember(context.Context, store.Tx, domain.Membership) error {
	return errors.New("attach failed")
}

type fixture struct {
	ctx   context.Context
	store store.Store
	clock *fakeClock
	notes *recordingNotifier

	invitations *service.InvitationService
	workspaces  *service.WorkspaceService
	users       *service.UserService

	wsID  string
	admin service.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	clock := &fakeClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	engine := rbac.NewEngine(rbac.DefaultTable())
	notes := &recordingNotifier{}

	f := &fixture{
		ctx:   context.Background(),
		store: s,
		clock: clock,
		notes: notes,
		invitations: &service.InvitationService{
			Store:    s,
			Engine:   engine,
			Notifier: notes,
			BaseURL:  baseURL,
			Now:      clock.Now,
		},
		workspaces: &service.WorkspaceService{Store: s, Engine: engine, Now: clock.Now},
		users:      &service.UserService{Store: s, Now: clock.Now},
	}

	f.user(t, "u-admin", "admin@example.com", "Ada Admin")
	ws, err := f.workspaces.Create(f.ctx, "u-admin", "Lab")
	require.NoError(t, err)
	f.wsID = ws.ID
	f.admin = service.Actor{UserID: "u-admin", Role: rbac.RoleAdmin}
	return f
}

func (f *fixture) user(t *testing.T, id, email, name string) {
	t.Helper()
	_, err := f.users.Sync(f.ctx, id, email, name)
	require.NoError(t, err)
}

// member creates a user and adds them to the fixture workspace with role.
func (f *fixture) member(t *testing.T, id, email string, role rbac.Role) service.Actor {
	t.Helper()
	f.user(t, id, email, id)
	at := f.clock.Now()
	require.NoError(t, f.store.Memberships().AddMember(f.ctx, domain.Membership{
		WorkspaceID: f.wsID,
		UserID:      id,
		Role:        role,
		CreatedAt:   at,
		UpdatedAt:   at,
	}))
	return service.Actor{UserID: id, Role: role}
}

func (f *fixture) invite(t *testing.T, email string, role rbac.Role) domain.Invitation {
	t.Helper()
	res, err := f.invitations.Create(f.ctx, f.admin, f.wsID, service.CreateInvitationInput{
		Email: email,
		Role:  string(role),
	})
	require.NoError(t, err)
	return res.Invitation
}

func (f *fixture) stored(t *testing.T, id string) domain.Invitation {
	t.Helper()
	inv, err := f.store.Invitations().GetInvitation(f.ctx, f.wsID, id)
	require.NoError(t, err)
	return inv
}
