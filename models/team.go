package models

import "time"

type Team struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Team) TableName() string { return "teams" }

type TeamMember struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID   string    `gorm:"type:uuid;not null;index:idx_members_team_user,unique" json:"teamId"`
	UserID   string    `gorm:"type:uuid;not null;index:idx_members_team_user,unique" json:"userId"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joinedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TeamMember) TableName() string { return "team_members" }
