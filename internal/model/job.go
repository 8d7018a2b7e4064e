package model

import (
	"time"

	"github.com/lib/pq"
)

// EditableJobInfo is part of job that can be written by admin
type EditableJobInfo struct {
	Title          string         `gorm:"type:text;not null;uniqueIndex:idx_job_title_company" json:"title"`
	Link           string         `gorm:"type:text" json:"link"`
	Location       string         `gorm:"type:text" json:"location"`
	Experience     string         `gorm:"type:text;default:'Not specified'" json:"experience"`
	Education      string         `gorm:"type:text;default:'Not specified'" json:"education"`
	EmploymentType string         `gorm:"type:text" json:"employment_type"`
	Salary         *int           `json:"salary,omitempty"`
	JobTag         string         `gorm:"type:text;default:''" json:"job_tag"`
	StackTags      pq.StringArray `gorm:"type:text[]" json:"stack_tags"`
	Deadline       *time.Time     `gorm:"type:timestamp" json:"deadline,omitempty"`
}

// Job is gorm model of a job posting
type Job struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID uint    `gorm:"not null;index;uniqueIndex:idx_job_title_company" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:CASCADE" json:"company"`
	EditableJobInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`

	Statistics   *JobStatistics `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"statistics,omitempty"`
	Reviews      []Review       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	Applications []Application  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// JobSummary is read-only projection of a job joined into other listings
type JobSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	CompanyName string     `json:"company_name"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Summary projects job into JobSummary, Company must be preloaded
func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		CompanyName: j.Company.Name,
		Deadline:    j.Deadline,
	}
}
