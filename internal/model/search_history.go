package model

import (
	"time"

	"github.com/google/uuid"
)

// SearchHistory counts repeated keyword searches of a user
type SearchHistory struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_search_user_keyword" json:"-"`
	User          User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	SearchKeyword string    `gorm:"type:text;not null;uniqueIndex:idx_search_user_keyword" json:"search_keyword"`
	SearchCount   int64     `gorm:"not null;default:1;check:search_count >= 1" json:"search_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// KeywordCount is one row of top keyword listing
type KeywordCount struct {
	SearchKeyword string `json:"search_keyword"`
	SearchCount   int64  `json:"search_count"`
}

// TableName pins table name used by keyword upsert
func (SearchHistory) TableName() string { return "search_histories" }
