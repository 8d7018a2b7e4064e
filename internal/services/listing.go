package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// Listing limits
const (
	RelatedJobsLimit = 5
	TopKeywordsLimit = 3
)

var jobSortColumns = map[string]string{
	"created_at": "created_at",
	"deadline":   "deadline",
}

// JobFilter holds optional predicates of job listing, all given ones must hold
type JobFilter struct {
	Location    string
	Experience  string
	Salary      string
	StackTags   []string
	CompanyName string
	Title       string
	Keyword     string
}

// JobListItem is one row of job listing
type JobListItem struct {
	model.Job
	PostedAgo string `json:"posted_ago"`
}

// JobDetail is single job with jobs related to it
type JobDetail struct {
	Job         model.Job   `json:"job"`
	RelatedJobs []model.Job `json:"related_jobs"`
}

// ListingService answers job catalogue queries and keeps search history
type ListingService struct {
	DB       *database.DBinstanceStruct
	PageSize int
}

// NewListingService creates ListingService with default page size
func NewListingService(db *database.DBinstanceStruct, pageSize int) *ListingService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListingService{DB: db, PageSize: pageSize}
}

// ParseSalaryRange parses "min-max" where both bounds are integers and min <= max
func ParseSalaryRange(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, utilities.Validation("Salary range must look like min-max")
	}
	lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errLo != nil || errHi != nil {
		return 0, 0, utilities.Validation("Salary range bounds must be integers")
	}
	if lo > hi {
		return 0, 0, utilities.Validation("Salary range minimum exceeds maximum")
	}
	return lo, hi, nil
}

func ilike(column string) string {
	return column + ` ILIKE ? ESCAPE '\'`
}

// ListJobs returns one page of jobs matching f. With a keyword and an
// authenticated caller, the keyword is also recorded in search history.
func (s *ListingService) ListJobs(ctx context.Context, userID uuid.UUID, f JobFilter, sort, order string, page, pageSize int) (model.Page[JobListItem], error) {
	page, pageSize = NormalizePage(page, pageSize, s.PageSize)
	empty := model.Page[JobListItem]{Items: []JobListItem{}, Pagination: model.NewPagination(page, pageSize, 0)}

	db := s.DB.WithContext(ctx)
	q := db.Model(&model.Job{})

	if v := strings.TrimSpace(f.Location); v != "" {
		q = q.Where(ilike("jobs.location"), utilities.LikePattern(v))
	}
	if v := strings.TrimSpace(f.Experience); v != "" {
		q = q.Where(ilike("jobs.experience"), utilities.LikePattern(v))
	}
	if v := strings.TrimSpace(f.Title); v != "" {
		q = q.Where(ilike("jobs.title"), utilities.LikePattern(v))
	}
	if strings.TrimSpace(f.Salary) != "" {
		lo, hi, err := ParseSalaryRange(f.Salary)
		if err != nil {
			return model.Page[JobListItem]{}, err
		}
		q = q.Where("jobs.salary BETWEEN ? AND ?", lo, hi)
	}
	if len(f.StackTags) > 0 {
		q = q.Where("jobs.stack_tags && ?::text[]", pq.StringArray(f.StackTags))
	}
	if v := strings.TrimSpace(f.CompanyName); v != "" {
		var ids []uint
		err := db.Model(&model.Company{}).Where(ilike("name"), utilities.LikePattern(v)).Pluck("id", &ids).Error
		if err != nil {
			return model.Page[JobListItem]{}, utilities.Internal("Failed to list jobs", errors.Wrap(err, "resolve companies"))
		}
		if len(ids) == 0 {
			s.recordSearch(ctx, userID, f.Keyword)
			return empty, nil
		}
		q = q.Where("jobs.company_id IN ?", ids)
	}
	if v := strings.TrimSpace(f.Keyword); v != "" {
		p := utilities.LikePattern(v)
		q = q.Where(
			"("+ilike("jobs.title")+" OR "+ilike("jobs.job_tag")+
				` OR EXISTS (SELECT 1 FROM unnest(jobs.stack_tags) AS tag WHERE tag ILIKE ? ESCAPE '\'))`,
			p, p, p,
		)
	}
	q = q.Session(&gorm.Session{})

	s.recordSearch(ctx, userID, f.Keyword)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return model.Page[JobListItem]{}, utilities.Internal("Failed to list jobs", errors.Wrap(err, "count jobs"))
	}
	if total == 0 {
		return empty, nil
	}

	col, ok := jobSortColumns[sort]
	if !ok {
		col = "created_at"
	}
	desc := descending(order)

	var jobs []model.Job
	err := q.Preload("Company").Preload("Statistics").
		Order(clause.OrderByColumn{Column: clause.Column{Table: "jobs", Name: col}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "jobs", Name: "id"}, Desc: desc}).
		Offset(offset(page, pageSize)).Limit(pageSize).
		Find(&jobs).Error
	if err != nil {
		return model.Page[JobListItem]{}, utilities.Internal("Failed to list jobs", errors.Wrap(err, "list jobs"))
	}

	items := make([]JobListItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, JobListItem{Job: j, PostedAgo: humanize.Time(j.CreatedAt)})
	}
	return model.Page[JobListItem]{Items: items, Pagination: model.NewPagination(page, pageSize, total)}, nil
}

// recordSearch bumps search history of keyword, failure is logged only
func (s *ListingService) recordSearch(ctx context.Context, userID uuid.UUID, keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || userID == uuid.Nil {
		return
	}
	if err := s.RecordSearch(ctx, userID, keyword); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Str("keyword", keyword).Msg("Failed to record search history")
	}
}

// RecordSearch inserts keyword for user or increments its count when it was searched before
func (s *ListingService) RecordSearch(ctx context.Context, userID uuid.UUID, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return utilities.Validation("Keyword is required")
	}
	now := time.Now()
	h := model.SearchHistory{UserID: userID, SearchKeyword: keyword, SearchCount: 1, CreatedAt: now, UpdatedAt: now}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "search_keyword"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "search_count"}, Value: gorm.Expr("search_histories.search_count + 1")},
			{Column: clause.Column{Name: "updated_at"}, Value: now},
		},
	}).Create(&h).Error
	if err != nil {
		return utilities.ClassifyDBError(errors.Wrap(err, "record search"), "User not found")
	}
	return nil
}

// TopKeywords returns most searched keywords of user, ties broken by most recent first search
func (s *ListingService) TopKeywords(ctx context.Context, userID uuid.UUID, limit int) ([]model.KeywordCount, error) {
	if userID == uuid.Nil {
		return nil, utilities.AuthRequired("Authentication required")
	}
	if limit <= 0 {
		limit = TopKeywordsLimit
	}
	out := []model.KeywordCount{}
	err := s.DB.WithContext(ctx).Model(&model.SearchHistory{}).
		Select("search_keyword", "search_count").
		Where("user_id = ?", userID).
		Order("search_count DESC").Order("created_at DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, utilities.Internal("Failed to load keywords", errors.Wrap(err, "top keywords"))
	}
	return out, nil
}

// GetJob returns job with company and counters and bumps its view counter.
// Related jobs share the company or at least one stack tag.
func (s *ListingService) GetJob(ctx context.Context, id uint) (JobDetail, error) {
	if id == 0 {
		return JobDetail{}, utilities.Validation("Job id is required")
	}
	db := s.DB.WithContext(ctx)

	var job model.Job
	if err := db.Preload("Company").First(&job, id).Error; err != nil {
		return JobDetail{}, utilities.ClassifyDBError(errors.Wrap(err, "get job"), "Job not found")
	}

	if err := database.IncrementCounter(db, job.ID, model.MetricViews, 1); err != nil {
		return JobDetail{}, err
	}
	stat, err := database.GetStatistics(db, job.ID)
	if err != nil {
		return JobDetail{}, err
	}
	job.Statistics = &stat

	tags := job.StackTags
	if tags == nil {
		tags = pq.StringArray{}
	}
	related := []model.Job{}
	err = db.Preload("Company").
		Where("id <> ?", job.ID).
		Where("(company_id = ? OR stack_tags && ?::text[])", job.CompanyID, tags).
		Order("created_at DESC").
		Limit(RelatedJobsLimit).
		Find(&related).Error
	if err != nil {
		return JobDetail{}, utilities.Internal("Failed to load related jobs", errors.Wrap(err, "related jobs"))
	}

	return JobDetail{Job: job, RelatedJobs: related}, nil
}
