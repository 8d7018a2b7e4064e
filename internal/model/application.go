package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is state of an application
type ApplicationStatus string

// Application states, ApplicationApplying is initial
const (
	ApplicationApplying  ApplicationStatus = "applying"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationCancelled ApplicationStatus = "cancelled"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationApplying:  {ApplicationReviewing, ApplicationAccepted, ApplicationRejected, ApplicationCancelled},
	ApplicationReviewing: {ApplicationAccepted, ApplicationRejected},
}

// Valid reports whether s is one of known application states
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplying, ApplicationReviewing, ApplicationAccepted, ApplicationRejected, ApplicationCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s ApplicationStatus) IsTerminal() bool {
	return len(applicationTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, n := range applicationTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether applicant can still cancel
func (s ApplicationStatus) Cancellable() bool {
	return s == ApplicationApplying
}

// Application represents a job application record, one per (job, user)
type Application struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint              `gorm:"not null;uniqueIndex:idx_application_job_user" json:"job_id"`
	Job       Job               `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_job_user;index" json:"user_id"`
	User      User              `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Status    ApplicationStatus `gorm:"type:text;not null;default:'applying'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ApplicationResponse is Application with its job projection
type ApplicationResponse struct {
	ID        uint              `json:"id"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Job       JobSummary        `json:"job"`
}

// ToResponse converts application into ApplicationResponse, Job.Company must be preloaded
func (a *Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Job:       a.Job.Summary(),
	}
}
