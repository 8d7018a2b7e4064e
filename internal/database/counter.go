package database

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// IncrementCounter adds delta to metric of job counter record in a single upsert.
// Missing record is created with every other metric at zero. Value never drops below zero.
func IncrementCounter(tx *gorm.DB, jobID uint, metric string, delta int64) error {
	if !m.IsCounterMetric(metric) {
		return utilities.Validation("Unknown counter metric")
	}
	if jobID == 0 {
		return utilities.Validation("Job id is required")
	}

	stat := m.JobStatistics{JobID: jobID}
	stat.Set(metric, max(delta, 0))

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.Set{{
			Column: clause.Column{Name: metric},
			Value:  gorm.Expr("GREATEST(job_statistics."+metric+" + ?, 0)", delta),
		}},
	}).Create(&stat).Error
	if err != nil {
		return utilities.ClassifyDBError(errors.Wrap(err, "increment counter"), "Job not found")
	}
	return nil
}

// GetStatistics returns counter record of job, a zero record when none was written yet
func GetStatistics(db *gorm.DB, jobID uint) (m.JobStatistics, error) {
	var stat m.JobStatistics
	err := db.Where("job_id = ?", jobID).Limit(1).Find(&stat).Error
	if err != nil {
		return m.JobStatistics{}, utilities.Internal("Failed to read statistics", errors.Wrap(err, "get statistics"))
	}
	if stat.ID == 0 {
		return m.JobStatistics{JobID: jobID}, nil
	}
	return stat, nil
}
