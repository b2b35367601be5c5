package db

import (
	"context"
	"time"

	"memoflow/models"
	"memoflow/permissions"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Teams

// CreateTeam writes the team and its owner membership in one transaction.
func (r *Repo) CreateTeam(ctx context.Context, t *models.Team, ownerID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Team{}).Where("name = ?", t.Name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrTeamNameTaken
		}
		if err := tx.Create(t).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrTeamNameTaken
			}
			return err
		}
		m := &models.TeamMember{
			ID:       uuid.NewString(),
			TeamID:   t.ID,
			UserID:   ownerID,
			Role:     string(permissions.RoleOwner),
			JoinedAt: time.Now().UTC(),
		}
		return tx.Create(m).Error
	})
}

func (r *Repo) FindTeamByID(ctx context.Context, id string) (*models.Team, error) {
	var t models.Team
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) UpdateTeam(ctx context.Context, id string, fields map[string]interface{}) error {
	if name, ok := fields["name"].(string); ok && name != "" {
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.Team{}).
			Where("name = ? AND id <> ?", name, id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrTeamNameTaken
		}
	}
	return r.DB.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", id).Updates(fields).Error
}

// DeleteTeam removes the team and every dependent row. GORM does not carry
// the cascade here, so the transaction deletes children explicitly.
func (r *Repo) DeleteTeam(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Memo{}).Where("team_id = ?", id).
			Update("team_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{ID: id}).Error
	})
}

// ListUserTeams returns the teams the user belongs to with the caller's role.
type UserTeam struct {
	Team models.Team `json:"team"`
	Role string      `json:"role"`
}

func (r *Repo) ListUserTeams(ctx context.Context, userID string) ([]UserTeam, error) {
	var rows []struct {
		models.Team
		Role string
	}
	err := r.DB.WithContext(ctx).Model(&models.Team{}).
		Select("teams.*, team_members.role").
		Joins("JOIN team_members ON team_members.team_id = teams.id AND team_members.user_id = ?", userID).
		Order("teams.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]UserTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, UserTeam{Team: row.Team, Role: row.Role})
	}
	return out, nil
}

// Members

func (r *Repo) FindMembership(ctx context.Context, teamID, userID string) (*models.TeamMember, error) {
	var m models.TeamMember
	err := r.DB.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) FindMemberByID(ctx context.Context, memberID string) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", memberID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	var ms []models.TeamMember
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at").
		Find(&ms).Error
	return ms, err
}

func (r *Repo) CountTeamMemos(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Memo{}).
		Where("team_id = ?", teamID).Count(&n).Error
	return n, err
}

// ChangeMemberRole demotes/promotes under a row lock so the owner-count
// invariant holds against concurrent role changes on the same team.
func (r *Repo) ChangeMemberRole(ctx context.Context, teamID, memberID string, newRole permissions.Role) (*models.TeamMember, error) {
	var m models.TeamMember
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, "id = ? AND team_id = ?", memberID, teamID).Error; err != nil {
			return err
		}
		if m.Role == string(permissions.RoleOwner) && newRole != permissions.RoleOwner {
			var owners int64
			if err := tx.Model(&models.TeamMember{}).
				Where("team_id = ? AND role = ? AND id <> ?", teamID, permissions.RoleOwner, memberID).
				Count(&owners).Error; err != nil {
				return err
			}
			if owners == 0 {
				return ErrLastOwner
			}
		}
		m.Role = string(newRole)
		return tx.Model(&m).Update("role", m.Role).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// RemoveMember deletes a membership under the same owner-count guard.
func (r *Repo) RemoveMember(ctx context.Context, teamID, memberID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.TeamMember
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, "id = ? AND team_id = ?", memberID, teamID).Error; err != nil {
			return err
		}
		if m.Role == string(permissions.RoleOwner) {
			var owners int64
			if err := tx.Model(&models.TeamMember{}).
				Where("team_id = ? AND role = ? AND id <> ?", teamID, permissions.RoleOwner, memberID).
				Count(&owners).Error; err != nil {
				return err
			}
			if owners == 0 {
				return ErrLastOwner
			}
		}
		return tx.Delete(&m).Error
	})
}
