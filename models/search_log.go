package models

import "time"

type SearchLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"userId"`
	Query       string    `gorm:"size:500;not null;index" json:"query"`
	SearchType  string    `gorm:"size:30;not null" json:"searchType"` // basic/advanced/semantic
	ResultCount int       `gorm:"not null;default:0" json:"resultCount"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (SearchLog) TableName() string { return "search_logs" }
