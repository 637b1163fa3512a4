// Package notify hands invitation notices to whatever delivers them. The
// service never sends mail itself; it enqueues a job and moves on.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/hypolab/workspace/pkg/slogx"
)

// InvitationNotice is everything a mail worker needs to render an
// invitation email.
type InvitationNotice struct {
	InvitationID  string    `json:"invitation_id"`
	WorkspaceID   string    `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Message       string    `json:"message,omitempty"`
	InviterName   string    `json:"inviter_name,omitempty"`
	AcceptURL     string    `json:"accept_url"`
	ExpiresAt     time.Time `json:"expires_at"`
	Resend        bool      `json:"resend"`
}

type Notifier interface {
	NotifyInvitation(ctx context.Context, n InvitationNotice) error
}

// LogNotifier only logs. It stands in when no queue is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyInvitation(ctx context.Context, n InvitationNotice) error {
	slogx.FromContext(ctx).Info("invitation notice",
		slog.String("invitation_id", n.InvitationID),
		slog.String("workspace_id", n.WorkspaceID),
		slog.String("email", n.Email),
		slog.Bool("resend", n.Resend),
	)
	return nil
}
