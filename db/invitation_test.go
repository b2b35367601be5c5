package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoflow/invites"
	"memoflow/permissions"
)

func TestNewInvitation(t *testing.T) {
	inv := NewInvitation("team-1", " Alice@Example.COM ", permissions.RoleAdmin, "user-1")

	_, err := uuid.Parse(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "team-1", inv.TeamID)
	assert.Equal(t, "alice@example.com", inv.Email, "email is normalized on creation")
	assert.Equal(t, "admin", inv.Role)
	assert.Equal(t, "user-1", inv.InvitedBy)
	assert.Len(t, inv.Token, 64)
	assert.Equal(t, invites.StatusPending, inv.Status)

	ttl := time.Until(inv.ExpiresAt)
	assert.InDelta(t, invites.DefaultTTL, ttl, float64(time.Minute), "expires roughly seven days out")
}
