package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

const msgAlreadyReviewed = "Review already exists for this job"

// ReviewService manages one review per user per job
type ReviewService struct {
	DB *database.DBinstanceStruct
}

// NewReviewService creates ReviewService
func NewReviewService(db *database.DBinstanceStruct) *ReviewService {
	return &ReviewService{DB: db}
}

func validRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return utilities.Validation("Rating must be between 1 and 5")
	}
	return nil
}

// Create stores review of job by user
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, jobID uint, rating int, comment string) (model.Review, error) {
	if userID == uuid.Nil {
		return model.Review{}, utilities.AuthRequired("Authentication required")
	}
	if jobID == 0 {
		return model.Review{}, utilities.Validation("Job id is required")
	}
	if err := validRating(rating); err != nil {
		return model.Review{}, err
	}
	db := s.DB.WithContext(ctx)

	var jobCount int64
	if err := db.Model(&model.Job{}).Where("id = ?", jobID).Count(&jobCount).Error; err != nil {
		return model.Review{}, utilities.Internal("Failed to create review", errors.Wrap(err, "find job"))
	}
	if jobCount == 0 {
		return model.Review{}, utilities.NotFound("Job not found")
	}

	var existing int64
	if err := db.Model(&model.Review{}).Where("job_id = ? AND user_id = ?", jobID, userID).Count(&existing).Error; err != nil {
		return model.Review{}, utilities.Internal("Failed to create review", errors.Wrap(err, "check review"))
	}
	if existing > 0 {
		return model.Review{}, utilities.Conflict(msgAlreadyReviewed)
	}

	review := model.Review{
		JobID:      jobID,
		UserID:     userID,
		Rating:     rating,
		Comment:    utilities.Sanitize(comment),
		ReviewedAt: time.Now(),
	}
	if err := db.Create(&review).Error; err != nil {
		return model.Review{}, utilities.ClassifyDBError(errors.Wrap(err, "create review"), msgAlreadyReviewed)
	}
	return review, nil
}

// Update changes rating and/or comment of review owned by user, nil fields are left alone
func (s *ReviewService) Update(ctx context.Context, reviewID uint, userID uuid.UUID, rating *int, comment *string) (model.Review, error) {
	if userID == uuid.Nil {
		return model.Review{}, utilities.AuthRequired("Authentication required")
	}
	if rating == nil && comment == nil {
		return model.Review{}, utilities.Validation("Nothing to update")
	}
	updates := map[string]interface{}{"reviewed_at": time.Now()}
	if rating != nil {
		if err := validRating(*rating); err != nil {
			return model.Review{}, err
		}
		updates["rating"] = *rating
	}
	if comment != nil {
		updates["comment"] = utilities.Sanitize(*comment)
	}

	var review model.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
			return utilities.ClassifyDBError(errors.Wrap(err, "find review"), "Review not found")
		}
		if err := tx.Model(&review).Updates(updates).Error; err != nil {
			return utilities.Internal("Failed to update review", errors.Wrap(err, "update review"))
		}
		return nil
	})
	if err != nil {
		return model.Review{}, utilities.ClassifyDBError(err, "Failed to update review")
	}
	return review, nil
}

// ListForJob returns one page of job reviews, newest first, with average over all of them
func (s *ReviewService) ListForJob(ctx context.Context, jobID uint, page, pageSize int) (model.ReviewSummary, model.Pagination, error) {
	page, pageSize = NormalizePage(page, pageSize, DefaultPageSize)
	db := s.DB.WithContext(ctx)

	var jobCount int64
	if err := db.Model(&model.Job{}).Where("id = ?", jobID).Count(&jobCount).Error; err != nil {
		return model.ReviewSummary{}, model.Pagination{}, utilities.Internal("Failed to list reviews", errors.Wrap(err, "find job"))
	}
	if jobCount == 0 {
		return model.ReviewSummary{}, model.Pagination{}, utilities.NotFound("Job not found")
	}

	var agg struct {
		Count   int64
		Average float64
	}
	err := db.Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("job_id = ?", jobID).
		Scan(&agg).Error
	if err != nil {
		return model.ReviewSummary{}, model.Pagination{}, utilities.Internal("Failed to list reviews", errors.Wrap(err, "aggregate reviews"))
	}

	reviews := []model.Review{}
	err = db.Where("job_id = ?", jobID).
		Order("reviewed_at DESC").Order("id DESC").
		Offset(offset(page, pageSize)).Limit(pageSize).
		Find(&reviews).Error
	if err != nil {
		return model.ReviewSummary{}, model.Pagination{}, utilities.Internal("Failed to list reviews", errors.Wrap(err, "list reviews"))
	}

	return model.ReviewSummary{
		Reviews:       reviews,
		AverageRating: agg.Average,
		ReviewCount:   agg.Count,
	}, model.NewPagination(page, pageSize, agg.Count), nil
}
