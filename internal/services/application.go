package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

const msgAlreadyApplied = "Already applied to this job"

var applicationSortColumns = map[string]string{
	"":           "created_at",
	"created_at": "created_at",
	"appliedAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
}

// ApplicationService runs the application state machine
type ApplicationService struct {
	DB *database.DBinstanceStruct
}

// NewApplicationService creates ApplicationService
func NewApplicationService(db *database.DBinstanceStruct) *ApplicationService {
	return &ApplicationService{DB: db}
}

// Apply creates application of user to job in applying state and counts it on the job
func (s *ApplicationService) Apply(ctx context.Context, userID uuid.UUID, jobID uint) (model.Application, error) {
	if userID == uuid.Nil {
		return model.Application{}, utilities.AuthRequired("Authentication required")
	}
	if jobID == 0 {
		return model.Application{}, utilities.Validation("Job id is required")
	}
	db := s.DB.WithContext(ctx)

	var job model.Job
	if err := db.Preload("Company").First(&job, jobID).Error; err != nil {
		return model.Application{}, utilities.ClassifyDBError(errors.Wrap(err, "find job"), "Job not found")
	}

	var existing int64
	if err := db.Model(&model.Application{}).Where("job_id = ? AND user_id = ?", jobID, userID).Count(&existing).Error; err != nil {
		return model.Application{}, utilities.Internal("Failed to apply", errors.Wrap(err, "check application"))
	}
	if existing > 0 {
		return model.Application{}, utilities.Conflict(msgAlreadyApplied)
	}

	app := model.Application{JobID: jobID, UserID: userID, Status: model.ApplicationApplying}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return utilities.ClassifyDBError(errors.Wrap(err, "create application"), msgAlreadyApplied)
		}
		return database.IncrementCounter(tx, jobID, model.MetricApplications, 1)
	})
	if err != nil {
		return model.Application{}, utilities.ClassifyDBError(err, "Failed to apply")
	}
	app.Job = job
	return app, nil
}

// Cancel moves application owned by user from applying to cancelled and uncounts it
func (s *ApplicationService) Cancel(ctx context.Context, applicationID uint, userID uuid.UUID) (model.Application, error) {
	if userID == uuid.Nil {
		return model.Application{}, utilities.AuthRequired("Authentication required")
	}
	db := s.DB.WithContext(ctx)

	var app model.Application
	if err := db.Preload("Job.Company").Where("id = ? AND user_id = ?", applicationID, userID).First(&app).Error; err != nil {
		return model.Application{}, utilities.ClassifyDBError(errors.Wrap(err, "find application"), "Application not found")
	}
	if !app.Status.Cancellable() {
		return model.Application{}, utilities.Conflict("Only applications in applying state can be cancelled")
	}

	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", app.ID, model.ApplicationApplying).
			Updates(map[string]interface{}{"status": model.ApplicationCancelled, "updated_at": now})
		if res.Error != nil {
			return utilities.Internal("Failed to cancel application", errors.Wrap(res.Error, "cancel application"))
		}
		if res.RowsAffected == 0 {
			return utilities.Conflict("Only applications in applying state can be cancelled")
		}
		return database.IncrementCounter(tx, app.JobID, model.MetricApplications, -1)
	})
	if err != nil {
		return model.Application{}, utilities.ClassifyDBError(err, "Failed to cancel application")
	}

	app.Status = model.ApplicationCancelled
	app.UpdatedAt = now
	return app, nil
}

// List returns applications of user, newest first by sortField, optionally only those in status
func (s *ApplicationService) List(ctx context.Context, userID uuid.UUID, status string, sortField string) ([]model.ApplicationResponse, error) {
	if userID == uuid.Nil {
		return nil, utilities.AuthRequired("Authentication required")
	}
	col, ok := applicationSortColumns[sortField]
	if !ok {
		col = "created_at"
	}

	q := s.DB.WithContext(ctx).Preload("Job.Company").Where("user_id = ?", userID)
	if status != "" {
		st := model.ApplicationStatus(status)
		if !st.Valid() {
			return nil, utilities.Validation("Unknown application status")
		}
		q = q.Where("status = ?", st)
	}

	var apps []model.Application
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true}).
		Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, utilities.Internal("Failed to list applications", errors.Wrap(err, "list applications"))
	}

	out := make([]model.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, apps[i].ToResponse())
	}
	return out, nil
}

// UpdateStatus moves application to status when the state machine allows it.
// Leaving applying for cancelled uncounts the application like Cancel does.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID uint, status model.ApplicationStatus) (model.Application, error) {
	if !status.Valid() {
		return model.Application{}, utilities.Validation("Unknown application status")
	}

	var app model.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&app, applicationID).Error
		if err != nil {
			return utilities.ClassifyDBError(errors.Wrap(err, "find application"), "Application not found")
		}
		if !app.Status.CanTransitionTo(status) {
			return utilities.Conflict("Cannot change status from " + string(app.Status) + " to " + string(status))
		}
		if err := tx.Model(&app).Update("status", status).Error; err != nil {
			return utilities.Internal("Failed to update application", errors.Wrap(err, "update status"))
		}
		if status == model.ApplicationCancelled {
			return database.IncrementCounter(tx, app.JobID, model.MetricApplications, -1)
		}
		return nil
	})
	if err != nil {
		return model.Application{}, utilities.ClassifyDBError(err, "Failed to update application")
	}
	return app, nil
}
