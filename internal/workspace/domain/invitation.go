package domain

import (
	"time"

	"github.com/hypolab/workspace/pkg/rbac"
)

type InvitationStatus string

const (
	StatusPending  InvitationStatus = "pending"
	StatusAccepted InvitationStatus = "accepted"
	StatusExpired  InvitationStatus = "expired"
	StatusRevoked  InvitationStatus = "revoked"
)

// Valid reports whether s is one of the four lifecycle states.
func (s InvitationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusExpired, StatusRevoked:
		return true
	}
	return false
}

// Terminal states never change again.
func (s InvitationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusExpired || s == StatusRevoked
}

// DefaultInvitationValidity is how long a fresh or resent invitation stays
// redeemable.
const DefaultInvitationValidity = 7 * 24 * time.Hour

// MaxInvitationMessage caps the optional note from the inviter, in characters.
const MaxInvitationMessage = 500

type Invitation struct {
	ID          string
	WorkspaceID string
	Email       string
	Role        rbac.Role
	Message     string
	Token       string
	Status      InvitationStatus
	InvitedBy   string // empty once the inviter's account is gone
	CreatedAt   time.Time
	ExpiresAt   time.Time
	AcceptedAt  *time.Time
	AcceptedBy  string
	RevokedAt   *time.Time
	UpdatedAt   time.Time
}

// EffectiveStatus is the status as of now. A pending invitation whose expiry
// has been reached reads as expired even before the row is updated.
func EffectiveStatus(inv Invitation, now time.Time) InvitationStatus {
	if inv.Status == StatusPending && !now.Before(inv.ExpiresAt) {
		return StatusExpired
	}
	return inv.Status
}

// IsRedeemable reports whether the invitation can still be accepted.
func (inv Invitation) IsRedeemable(now time.Time) bool {
	return EffectiveStatus(inv, now) == StatusPending
}

// InvitationPreview is the public face of an invitation, shown to whoever
// holds the token before they sign in. It never carries the token.
type InvitationPreview struct {
	Email         string
	Role          rbac.Role
	Message       string
	WorkspaceID   string
	WorkspaceName string
	InviterName   string
	Status        InvitationStatus
	Expired       bool
	ExpiresAt     time.Time
}
