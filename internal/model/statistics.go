package model

// Counter metric names, also the column names in job_statistics
const (
	MetricViews        = "views"
	MetricApplications = "applications"
	MetricBookmarks    = "bookmark_count"
	MetricFavorites    = "favorite_count"
)

// CounterMetrics lists every metric held by a JobStatistics record
var CounterMetrics = []string{MetricViews, MetricApplications, MetricBookmarks, MetricFavorites}

// JobStatistics is denormalized counter record of a job
type JobStatistics struct {
	ID            uint  `gorm:"primaryKey;autoIncrement" json:"-"`
	JobID         uint  `gorm:"not null;uniqueIndex" json:"job_id"`
	Views         int64 `gorm:"not null;default:0;check:views >= 0" json:"views"`
	Applications  int64 `gorm:"not null;default:0;check:applications >= 0" json:"applications"`
	BookmarkCount int64 `gorm:"not null;default:0;check:bookmark_count >= 0" json:"bookmark_count"`
	FavoriteCount int64 `gorm:"not null;default:0;check:favorite_count >= 0" json:"favorite_count"`
}

// TableName pins table name of the counter record
func (JobStatistics) TableName() string { return "job_statistics" }

// Set assigns v to counter of given metric, unknown metric is ignored
func (s *JobStatistics) Set(metric string, v int64) {
	switch metric {
	case MetricViews:
		s.Views = v
	case MetricApplications:
		s.Applications = v
	case MetricBookmarks:
		s.BookmarkCount = v
	case MetricFavorites:
		s.FavoriteCount = v
	}
}

// Value return counter value of given metric
func (s JobStatistics) Value(metric string) int64 {
	switch metric {
	case MetricViews:
		return s.Views
	case MetricApplications:
		return s.Applications
	case MetricBookmarks:
		return s.BookmarkCount
	case MetricFavorites:
		return s.FavoriteCount
	}
	return 0
}

// IsCounterMetric reports whether metric is a known counter column
func IsCounterMetric(metric string) bool {
	for _, m := range CounterMetrics {
		if m == metric {
			return true
		}
	}
	return false
}
