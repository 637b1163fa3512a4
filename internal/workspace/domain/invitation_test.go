package domain_test

import (
	"testing"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/stretchr/testify/require"
)

func TestEffectiveStatus(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := created.Add(domain.DefaultInvitationValidity)

	inv := domain.Invitation{Status: domain.StatusPending, CreatedAt: created, ExpiresAt: expires}

	tests := []struct {
		name   string
		status domain.InvitationStatus
		now    time.Time
		want   domain.InvitationStatus
	}{
		{"pending before expiry", domain.StatusPending, expires.Add(-time.Millisecond), domain.StatusPending},
		{"pending at expiry", domain.StatusPending, expires, domain.StatusExpired},
		{"pending after expiry", domain.StatusPending, expires.Add(time.Hour), domain.StatusExpired},
		{"accepted stays accepted", domain.StatusAccepted, expires.Add(time.Hour), domain.StatusAccepted},
		{"revoked stays revoked", domain.StatusRevoked, created, domain.StatusRevoked},
		{"expired stays expired", domain.StatusExpired, created, domain.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := inv
			inv.Status = tt.status
			require.Equal(t, tt.want, domain.EffectiveStatus(inv, tt.now))
		})
	}

	require.True(t, inv.IsRedeemable(created))
	require.False(t, inv.IsRedeemable(expires))
}

func TestInvitationStatusPredicates(t *testing.T) {
	require.False(t, domain.StatusPending.Terminal())
	for _, s := range []domain.InvitationStatus{domain.StatusAccepted, domain.StatusExpired, domain.StatusRevoked} {
		require.True(t, s.Terminal(), s)
		require.True(t, s.Valid(), s)
	}
	require.False(t, domain.InvitationStatus("archived").Valid())
}
