package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClasses(t *testing.T) {
	require.ErrorIs(t, ErrInvitationExists, ErrConflict)
	require.ErrorIs(t, ErrUserExists, ErrConflict)
	require.NotErrorIs(t, ErrInvitationExists, ErrUserExists, "specific errors stay distinct")
	require.NotErrorIs(t, ErrInvitationExpired, ErrConflict)
	require.ErrorIs(t, ErrInvitationExpired, ErrGone)

	wrapped := fmt.Errorf("create: %w", ErrInvitationExists)
	require.ErrorIs(t, wrapped, ErrConflict)
	require.ErrorIs(t, wrapped, ErrInvitationExists)
	require.Equal(t, CodeConflict, CodeOf(wrapped))

	require.Equal(t, Code(""), CodeOf(errors.New("disk on fire")))
	require.Equal(t, "conflict", ErrConflict.Error())

	adhoc := Errorf(CodeForbidden, "missing %s", "manage_team")
	require.ErrorIs(t, adhoc, ErrForbidden)
	require.Equal(t, "missing manage_team", adhoc.Error())
}
