package model

import (
	"time"

	"github.com/google/uuid"
)

// MembershipKind is the kind of toggleable list a user owns
type MembershipKind string

// Membership list kinds
const (
	KindBookmark MembershipKind = "bookmark"
	KindFavorite MembershipKind = "favorite"
)

// Metric returns counter metric that mirrors the size of this kind of list
func (k MembershipKind) Metric() string {
	if k == KindFavorite {
		return MetricFavorites
	}
	return MetricBookmarks
}

// Valid reports whether k is a known kind
func (k MembershipKind) Valid() bool {
	return k == KindBookmark || k == KindFavorite
}

// MembershipList is per user, per kind ordered list of tagged jobs
type MembershipList struct {
	ID      uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_kind" json:"user_id"`
	User    User              `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Kind    MembershipKind    `gorm:"type:text;not null;uniqueIndex:idx_membership_user_kind" json:"kind"`
	Entries []MembershipEntry `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"entries"`
}

// MembershipEntry is one job reference inside a MembershipList
type MembershipEntry struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ListID  uint      `gorm:"not null;uniqueIndex:idx_membership_entry" json:"-"`
	JobID   uint      `gorm:"not null;uniqueIndex:idx_membership_entry" json:"job_id"`
	Job     Job       `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	AddedAt time.Time `gorm:"type:timestamp;not null" json:"added_at"`
}

// Contains return index of first entry referencing jobID, or -1
func (l *MembershipList) Contains(jobID uint) int {
	for i, e := range l.Entries {
		if e.JobID == jobID {
			return i
		}
	}
	return -1
}

// MembershipItem is a list entry joined with its job projection
type MembershipItem struct {
	AddedAt time.Time  `json:"added_at"`
	Job     JobSummary `json:"job"`
}
