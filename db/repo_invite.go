package db

import (
	"context"
	"time"

	"memoflow/invites"
	"memoflow/models"
	"memoflow/permissions"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Invitations

// CreateInvitation inserts a pending invitation. The duplicate-pending
// check runs inside the transaction and the partial unique index backs it
// up against a concurrent insert.
func (r *Repo) CreateInvitation(ctx context.Context, inv *models.TeamInvitation) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.TeamInvitation{}).
			Where("team_id = ? AND email = ? AND status = ?", inv.TeamID, inv.Email, invites.StatusPending).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateInvite
		}
		return tx.Create(inv).Error
	})
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateInvite
	}
	return err
}

func (r *Repo) FindInvitationByToken(ctx context.Context, token string) (*models.TeamInvitation, error) {
	var inv models.TeamInvitation
	err := r.DB.WithContext(ctx).
		Preload("Team").Preload("Inviter").
		Where("token = ?", token).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repo) FindInvitationByID(ctx context.Context, id string) (*models.TeamInvitation, error) {
	var inv models.TeamInvitation
	if err := r.DB.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// AcceptInvitation flips pending->accepted and inserts the membership as
// one atomic unit. The invitation row is locked first so a concurrent
// accept on the same token serializes: the loser re-reads a non-pending
// status and fails with ErrAlreadyProcessed.
func (r *Repo) AcceptInvitation(ctx context.Context, token, userID string) (*models.TeamInvitation, error) {
	var inv models.TeamInvitation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&inv).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", inv.TeamID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if err := invites.CheckAccept(&inv, n > 0, time.Now().UTC()); err != nil {
			return err
		}
		if err := tx.Model(&inv).Update("status", invites.StatusAccepted).Error; err != nil {
			return err
		}
		m := &models.TeamMember{
			ID:       uuid.NewString(),
			TeamID:   inv.TeamID,
			UserID:   userID,
			Role:     inv.Role,
			JoinedAt: time.Now().UTC(),
		}
		if err := tx.Create(m).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyTeamMember
			}
			return err
		}
		inv.Status = invites.StatusAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeclineInvitation flips pending->declined. Expired-but-pending invites
// may still be declined.
func (r *Repo) DeclineInvitation(ctx context.Context, token string) (*models.TeamInvitation, error) {
	var inv models.TeamInvitation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&inv).Error; err != nil {
			return err
		}
		if err := invites.CheckDecline(&inv); err != nil {
			return err
		}
		inv.Status = invites.StatusDeclined
		return tx.Model(&inv).Update("status", inv.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CancelInvitation is inviter-only and pending-only.
func (r *Repo) CancelInvitation(ctx context.Context, invitationID, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.TeamInvitation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, "id = ?", invitationID).Error; err != nil {
			return err
		}
		if err := invites.CheckCancel(&inv, userID); err != nil {
			return err
		}
		return tx.Model(&inv).Update("status", invites.StatusCancelled).Error
	})
}

// CleanupExpiredInvitations bulk-transitions overdue pending invitations to
// expired. Idempotent: the second run matches nothing.
func (r *Repo) CleanupExpiredInvitations(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.TeamInvitation{}).
		Where("status = ? AND expires_at < ?", invites.StatusPending, time.Now().UTC()).
		Update("status", invites.StatusExpired)
	return res.RowsAffected, res.Error
}

func (r *Repo) ListTeamInvitations(ctx context.Context, teamID string) ([]models.TeamInvitation, error) {
	var out []models.TeamInvitation
	err := r.DB.WithContext(ctx).
		Preload("Inviter").
		Where("team_id = ?", teamID).
		Order("created_at").
		Find(&out).Error
	return out, err
}

func (r *Repo) ListInvitationsByEmail(ctx context.Context, email string) ([]models.TeamInvitation, error) {
	var out []models.TeamInvitation
	err := r.DB.WithContext(ctx).
		Preload("Team").Preload("Inviter").
		Where("email = ?", invites.NormalizeEmail(email)).
		Order("created_at").
		Find(&out).Error
	return out, err
}

// NewInvitation builds a pending invitation with a fresh token and the
// default expiry. Permission checks happen in the controller.
func NewInvitation(teamID, email string, role permissions.Role, invitedBy string) *models.TeamInvitation {
	now := time.Now().UTC()
	return &models.TeamInvitation{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Email:     invites.NormalizeEmail(email),
		Role:      string(role),
		InvitedBy: invitedBy,
		Token:     invites.NewToken(),
		Status:    invites.StatusPending,
		ExpiresAt: now.Add(invites.DefaultTTL),
	}
}
