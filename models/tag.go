package models

import "time"

type Tag struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null;index:idx_tags_user_name,unique" json:"name"`
	Color  string `gorm:"size:20;not null;default:'#3b82f6'" json:"color"`
	UserID string `gorm:"type:uuid;not null;index:idx_tags_user_name,unique" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tag) TableName() string { return "tags" }

// MemoTag is the memo<->tag join row. GORM manages it through the
// many2many relation on Memo; it is declared so Migrate can index it.
type MemoTag struct {
	MemoID    string    `gorm:"type:uuid;primaryKey" json:"memoId"`
	TagID     string    `gorm:"type:uuid;primaryKey" json:"tagId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (MemoTag) TableName() string { return "memo_tags" }
