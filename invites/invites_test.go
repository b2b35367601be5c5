package invites

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoflow/models"
)

func pendingInvite(expiresAt time.Time) *models.TeamInvitation {
	return &models.TeamInvitation{
		ID:        "inv-1",
		TeamID:    "team-1",
		Email:     "alice@example.com",
		Role:      "member",
		InvitedBy: "user-1",
		Token:     NewToken(),
		Status:    StatusPending,
		ExpiresAt: expiresAt,
	}
}

func TestNewToken(t *testing.T) {
	tok := NewToken()
	require.Len(t, tok, 64, "32 random bytes hex encoded")
	for _, r := range tok {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'), "token must be lowercase hex, got %q", r)
	}
	assert.NotEqual(t, tok, NewToken(), "tokens must not repeat")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("Alice@Example.COM"))
	assert.Equal(t, "alice@example.com", NormalizeEmail("  alice@example.com \n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestCheckAccept(t *testing.T) {
	now := time.Now()

	t.Run("pending and fresh", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		assert.NoError(t, CheckAccept(inv, false, now))
	})

	t.Run("already accepted", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		inv.Status = StatusAccepted
		assert.ErrorIs(t, CheckAccept(inv, false, now), ErrAlreadyProcessed)
	})

	t.Run("cancelled", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		inv.Status = StatusCancelled
		assert.ErrorIs(t, CheckAccept(inv, false, now), ErrAlreadyProcessed)
	})

	t.Run("expired", func(t *testing.T) {
		inv := pendingInvite(now.Add(-time.Minute))
		assert.ErrorIs(t, CheckAccept(inv, false, now), ErrExpired)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		inv := pendingInvite(now)
		assert.ErrorIs(t, CheckAccept(inv, false, now), ErrExpired)
	})

	t.Run("already a member", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		assert.ErrorIs(t, CheckAccept(inv, true, now), ErrAlreadyMember)
	})

	t.Run("status wins over expiry", func(t *testing.T) {
		inv := pendingInvite(now.Add(-time.Hour))
		inv.Status = StatusDeclined
		assert.ErrorIs(t, CheckAccept(inv, true, now), ErrAlreadyProcessed)
	})

	t.Run("expiry wins over membership", func(t *testing.T) {
		inv := pendingInvite(now.Add(-time.Hour))
		assert.ErrorIs(t, CheckAccept(inv, true, now), ErrExpired)
	})
}

func TestCheckDecline(t *testing.T) {
	now := time.Now()

	t.Run("pending", func(t *testing.T) {
		assert.NoError(t, CheckDecline(pendingInvite(now.Add(time.Hour))))
	})

	t.Run("expired pending still declinable", func(t *testing.T) {
		assert.NoError(t, CheckDecline(pendingInvite(now.Add(-time.Hour))))
	})

	t.Run("already processed", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		inv.Status = StatusAccepted
		assert.ErrorIs(t, CheckDecline(inv), ErrAlreadyProcessed)
	})
}

func TestCheckCancel(t *testing.T) {
	now := time.Now()

	t.Run("inviter cancels pending", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		assert.NoError(t, CheckCancel(inv, "user-1"))
	})

	t.Run("someone else cancels", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		assert.ErrorIs(t, CheckCancel(inv, "user-2"), ErrNotInviter)
	})

	t.Run("inviter cancels a processed invite", func(t *testing.T) {
		inv := pendingInvite(now.Add(time.Hour))
		inv.Status = StatusAccepted
		assert.ErrorIs(t, CheckCancel(inv, "user-1"), ErrAlreadyProcessed)
	})
}
