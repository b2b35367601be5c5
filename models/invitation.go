package models

import "time"

const InvitationTable = "team_invitations"

type TeamInvitation struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID    string    `gorm:"type:uuid;index;not null" json:"teamId"`
	Email     string    `gorm:"index;size:255;not null" json:"email"`
	Role      string    `gorm:"size:20;not null;default:'member'" json:"role"`
	InvitedBy string    `gorm:"type:uuid;not null" json:"invitedBy"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Team    *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Inviter *User `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
}

func (TeamInvitation) TableName() string { return InvitationTable }
