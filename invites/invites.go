// Package invites holds the team-invitation state machine rules. Everything
// here is pure; the db layer applies the resulting transitions inside a
// transaction.
package invites

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"memoflow/models"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// DefaultTTL is how long a fresh invitation stays acceptable.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrAlreadyProcessed = errors.New("invitation already processed")
	ErrExpired          = errors.New("invitation expired")
	ErrAlreadyMember    = errors.New("user is already a team member")
	ErrNotInviter       = errors.New("only the inviter may cancel an invitation")
)

// NewToken returns a 256-bit random token, hex encoded. The token is the
// sole lookup key for unauthenticated invitee actions.
func NewToken() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// NormalizeEmail is the single normalization policy for invitation emails:
// trimmed and lower-cased. Both the duplicate-pending check and the inbox
// lookup go through it so equal-looking addresses compare equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckAccept validates the accept preconditions in order: pending status,
// not expired, invitee not already a member. Existence (nil invitation) is
// the caller's NotFound case.
func CheckAccept(inv *models.TeamInvitation, alreadyMember bool, now time.Time) error {
	if inv.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	if !inv.ExpiresAt.After(now) {
		return ErrExpired
	}
	if alreadyMember {
		return ErrAlreadyMember
	}
	return nil
}

// CheckDecline validates the decline preconditions. Expiry is deliberately
// not checked: declining an expired invite has no side effect beyond
// marking it handled.
func CheckDecline(inv *models.TeamInvitation) error {
	if inv.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	return nil
}

// CheckCancel validates that userID is the original inviter and the
// invitation is still pending.
func CheckCancel(inv *models.TeamInvitation, userID string) error {
	if inv.InvitedBy != userID {
		return ErrNotInviter
	}
	if inv.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	return nil
}
