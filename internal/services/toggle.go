package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// Toggle outcome states
const (
	StateAdded   = "added"
	StateRemoved = "removed"
)

// ToggleResult is outcome of one bookmark or favorite toggle
type ToggleResult struct {
	Added bool   `json:"added"`
	State string `json:"state"`
}

// ToggleService keeps membership lists and their counters in step
type ToggleService struct {
	DB *database.DBinstanceStruct
}

// NewToggleService creates ToggleService
func NewToggleService(db *database.DBinstanceStruct) *ToggleService {
	return &ToggleService{DB: db}
}

// ToggleBookmark adds job to user bookmarks, or removes it when present
func (s *ToggleService) ToggleBookmark(ctx context.Context, userID uuid.UUID, jobID uint) (ToggleResult, error) {
	return s.Toggle(ctx, userID, model.KindBookmark, jobID)
}

// ToggleFavorite adds job to user favorites, or removes it when present
func (s *ToggleService) ToggleFavorite(ctx context.Context, userID uuid.UUID, jobID uint) (ToggleResult, error) {
	return s.Toggle(ctx, userID, model.KindFavorite, jobID)
}

// Toggle flips membership of job in user list of kind and moves the matching
// counter by one in the same transaction.
func (s *ToggleService) Toggle(ctx context.Context, userID uuid.UUID, kind model.MembershipKind, jobID uint) (ToggleResult, error) {
	if userID == uuid.Nil {
		return ToggleResult{}, utilities.AuthRequired("Authentication required")
	}
	if jobID == 0 {
		return ToggleResult{}, utilities.Validation("Job id is required")
	}

	var added bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		added, err = database.ToggleMembership(tx, userID, kind, jobID)
		if err != nil {
			return err
		}
		delta := int64(-1)
		if added {
			delta = 1
		}
		return database.IncrementCounter(tx, jobID, kind.Metric(), delta)
	})
	if err != nil {
		return ToggleResult{}, utilities.ClassifyDBError(err, "Failed to toggle "+string(kind))
	}

	if added {
		return ToggleResult{Added: true, State: StateAdded}, nil
	}
	return ToggleResult{Added: false, State: StateRemoved}, nil
}

// ListMemberships returns one page of user list of kind, each entry joined with its job
func (s *ToggleService) ListMemberships(ctx context.Context, userID uuid.UUID, kind model.MembershipKind, page, pageSize int, order string) (model.Page[model.MembershipItem], error) {
	if userID == uuid.Nil {
		return model.Page[model.MembershipItem]{}, utilities.AuthRequired("Authentication required")
	}
	if !kind.Valid() {
		return model.Page[model.MembershipItem]{}, utilities.Validation("Unknown list kind")
	}
	page, pageSize = NormalizePage(page, pageSize, DefaultPageSize)

	q := s.DB.WithContext(ctx).Model(&model.MembershipEntry{}).
		Joins("JOIN membership_lists ON membership_lists.id = membership_entries.list_id").
		Where("membership_lists.user_id = ? AND membership_lists.kind = ?", userID, kind).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return model.Page[model.MembershipItem]{}, utilities.Internal("Failed to list "+string(kind), errors.Wrap(err, "count memberships"))
	}

	var entries []model.MembershipEntry
	err := q.Preload("Job.Company").
		Order(clause.OrderByColumn{Column: clause.Column{Table: "membership_entries", Name: "id"}, Desc: descending(order)}).
		Offset(offset(page, pageSize)).Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return model.Page[model.MembershipItem]{}, utilities.Internal("Failed to list "+string(kind), errors.Wrap(err, "list memberships"))
	}

	items := make([]model.MembershipItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.MembershipItem{AddedAt: e.AddedAt, Job: e.Job.Summary()})
	}
	return model.Page[model.MembershipItem]{
		Items:      items,
		Pagination: model.NewPagination(page, pageSize, total),
	}, nil
}
