package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds of a review
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a job, one per (job, user)
type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID      uint      `gorm:"not null;uniqueIndex:idx_review_job_user" json:"job_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_job_user" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Rating     int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	ReviewedAt time.Time `gorm:"type:timestamp;not null" json:"reviewed_at"`
}

// ReviewSummary aggregates reviews of a job
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
}
