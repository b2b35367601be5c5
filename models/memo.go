package models

import "time"

type Memo struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string  `gorm:"size:500;not null" json:"title"`
	Content  string  `gorm:"type:text;not null" json:"content"`
	UserID   string  `gorm:"type:uuid;index;not null" json:"userId"`
	TeamID   *string `gorm:"type:uuid;index" json:"teamId,omitempty"`
	IsPublic bool    `gorm:"not null;default:false" json:"isPublic"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tags []Tag `gorm:"many2many:memo_tags;" json:"tags,omitempty"`
}

func (Memo) TableName() string { return "memos" }
