package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// FindMembershipList returns user list of given kind with entries in insertion order.
// A user without list gets an empty list with ID 0.
func FindMembershipList(db *gorm.DB, userID uuid.UUID, kind m.MembershipKind) (m.MembershipList, error) {
	var list m.MembershipList
	err := db.Preload("Entries", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Where("user_id = ? AND kind = ?", userID, kind).Limit(1).Find(&list).Error
	if err != nil {
		return m.MembershipList{}, utilities.Internal("Failed to read list", errors.Wrap(err, "find membership list"))
	}
	if list.ID == 0 {
		return m.MembershipList{UserID: userID, Kind: kind, Entries: []m.MembershipEntry{}}, nil
	}
	return list, nil
}

// ToggleMembership removes first entry of jobID from the user list, or appends one when absent.
// It returns true when an entry was added. tx should be a transaction, the list row stays
// locked until it ends so toggles on the same list run one after another.
func ToggleMembership(tx *gorm.DB, userID uuid.UUID, kind m.MembershipKind, jobID uint) (bool, error) {
	if !kind.Valid() {
		return false, utilities.Validation("Unknown list kind")
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoNothing: true,
	}).Create(&m.MembershipList{UserID: userID, Kind: kind}).Error
	if err != nil {
		return false, utilities.ClassifyDBError(errors.Wrap(err, "create membership list"), "User not found")
	}

	var list m.MembershipList
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND kind = ?", userID, kind).
		First(&list).Error
	if err != nil {
		return false, utilities.ClassifyDBError(errors.Wrap(err, "lock membership list"), "List not found")
	}

	if err := tx.Where("list_id = ?", list.ID).Order("id ASC").Find(&list.Entries).Error; err != nil {
		return false, utilities.Internal("Failed to read list", errors.Wrap(err, "load membership entries"))
	}

	if i := list.Contains(jobID); i >= 0 {
		if err := tx.Delete(&m.MembershipEntry{}, list.Entries[i].ID).Error; err != nil {
			return false, utilities.Internal("Failed to update list", errors.Wrap(err, "remove membership entry"))
		}
		return false, nil
	}

	entry := m.MembershipEntry{ListID: list.ID, JobID: jobID, AddedAt: time.Now()}
	if err := tx.Create(&entry).Error; err != nil {
		return false, utilities.ClassifyDBError(errors.Wrap(err, "append membership entry"), "Job not found")
	}
	return true, nil
}
