package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

const msgDuplicateJob = "Job with this title already exists for the company"

// JobInput is payload of job creation
type JobInput struct {
	Title          string
	CompanyID      uint
	CompanyName    string
	Link           string
	Location       string
	Experience     string
	Education      string
	EmploymentType string
	Salary         *int
	JobTag         string
	StackTags      interface{}
	Deadline       string
}

// CatalogService handles administrative writes of companies and jobs
type CatalogService struct {
	DB *database.DBinstanceStruct
}

// NewCatalogService creates CatalogService
func NewCatalogService(db *database.DBinstanceStruct) *CatalogService {
	return &CatalogService{DB: db}
}

// ParseDeadline accepts RFC3339 or YYYY-MM-DD, empty string means no deadline
func ParseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, utilities.Validation("Deadline must be RFC3339 or YYYY-MM-DD")
}

func companySlug(name string) string {
	s := slug.Make(name)
	if s == "" {
		// names without latin letters, e.g. hangul only, slug to nothing
		s = "company-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return s
}

// CreateCompany stores a new company, name must be unique
func (s *CatalogService) CreateCompany(ctx context.Context, info model.EditableCompanyInfo) (model.Company, error) {
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" {
		return model.Company{}, utilities.Validation("Company name is required")
	}
	info.BusinessDescription = utilities.Sanitize(info.BusinessDescription)
	if info.CEOName == "" {
		info.CEOName = "Unknown"
	}

	company := model.Company{Slug: companySlug(info.Name), EditableCompanyInfo: info}
	if err := s.DB.WithContext(ctx).Create(&company).Error; err != nil {
		return model.Company{}, utilities.ClassifyDBError(errors.Wrap(err, "create company"), "Company already exists")
	}
	return company, nil
}

// FindOrCreateCompany returns company named name, creating it with defaults when missing
func FindOrCreateCompany(tx *gorm.DB, name string, defaults model.EditableCompanyInfo) (model.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Company{}, utilities.Validation("Company name is required")
	}
	defaults.Name = name
	if defaults.CEOName == "" {
		defaults.CEOName = "Unknown"
	}

	var company model.Company
	err := tx.Where(model.Company{EditableCompanyInfo: model.EditableCompanyInfo{Name: name}}).
		Attrs(model.Company{Slug: companySlug(name), EditableCompanyInfo: defaults}).
		FirstOrCreate(&company).Error
	if err != nil {
		return model.Company{}, utilities.ClassifyDBError(errors.Wrap(err, "find or create company"), "Company already exists")
	}
	return company, nil
}

// GetCompany returns company by id
func (s *CatalogService) GetCompany(ctx context.Context, id uint) (model.Company, error) {
	var company model.Company
	if err := s.DB.WithContext(ctx).First(&company, id).Error; err != nil {
		return model.Company{}, utilities.ClassifyDBError(errors.Wrap(err, "get company"), "Company not found")
	}
	return company, nil
}

// ListCompanies returns one page of companies ordered by name, name filters by substring
func (s *CatalogService) ListCompanies(ctx context.Context, name string, page, pageSize int) (model.Page[model.Company], error) {
	page, pageSize = NormalizePage(page, pageSize, DefaultPageSize)
	q := s.DB.WithContext(ctx).Model(&model.Company{})
	if v := strings.TrimSpace(name); v != "" {
		q = q.Where(ilike("name"), utilities.LikePattern(v))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return model.Page[model.Company]{}, utilities.Internal("Failed to list companies", errors.Wrap(err, "count companies"))
	}
	companies := []model.Company{}
	if err := q.Order("name ASC").Offset(offset(page, pageSize)).Limit(pageSize).Find(&companies).Error; err != nil {
		return model.Page[model.Company]{}, utilities.Internal("Failed to list companies", errors.Wrap(err, "list companies"))
	}
	return model.Page[model.Company]{Items: companies, Pagination: model.NewPagination(page, pageSize, total)}, nil
}

// CreateJob stores a job, company is given by id or by name in which case it is created on demand
func (s *CatalogService) CreateJob(ctx context.Context, in JobInput) (model.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Job{}, utilities.Validation("Title is required")
	}
	if in.CompanyID == 0 && strings.TrimSpace(in.CompanyName) == "" {
		return model.Job{}, utilities.Validation("Company id or company name is required")
	}
	tags, err := utilities.NormalizeTags(in.StackTags)
	if err != nil {
		return model.Job{}, err
	}
	deadline, err := ParseDeadline(in.Deadline)
	if err != nil {
		return model.Job{}, err
	}

	job := model.Job{
		EditableJobInfo: model.EditableJobInfo{
			Title:          title,
			Link:           strings.TrimSpace(in.Link),
			Location:       strings.TrimSpace(in.Location),
			Experience:     strings.TrimSpace(in.Experience),
			Education:      strings.TrimSpace(in.Education),
			EmploymentType: strings.TrimSpace(in.EmploymentType),
			Salary:         in.Salary,
			JobTag:         strings.TrimSpace(in.JobTag),
			StackTags:      pq.StringArray(tags),
			Deadline:       deadline,
		},
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company model.Company
		if in.CompanyID != 0 {
			if err := tx.First(&company, in.CompanyID).Error; err != nil {
				return utilities.ClassifyDBError(errors.Wrap(err, "find company"), "Company not found")
			}
		} else {
			var err error
			if company, err = FindOrCreateCompany(tx, in.CompanyName, model.EditableCompanyInfo{}); err != nil {
				return err
			}
		}
		job.CompanyID = company.ID
		if err := tx.Omit("Company").Create(&job).Error; err != nil {
			return utilities.ClassifyDBError(errors.Wrap(err, "create job"), msgDuplicateJob)
		}
		job.Company = company
		return nil
	})
	if err != nil {
		return model.Job{}, utilities.ClassifyDBError(err, "Failed to create job")
	}
	return job, nil
}

// UpdateJob applies fields to job, keys are json names of editable job fields
func (s *CatalogService) UpdateJob(ctx context.Context, id uint, fields map[string]interface{}) (model.Job, error) {
	if len(fields) == 0 {
		return model.Job{}, utilities.Validation("Nothing to update")
	}
	updates := map[string]interface{}{}
	for k, v := range fields {
		col, val, err := jobColumn(k, v)
		if err != nil {
			return model.Job{}, err
		}
		updates[col] = val
	}

	var job model.Job
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, id).Error; err != nil {
			return errors.Wrap(err, "find job")
		}
		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return utilities.ClassifyDBError(errors.Wrap(err, "update job"), msgDuplicateJob)
		}
		return tx.Preload("Company").First(&job, id).Error
	})
	if err != nil {
		return model.Job{}, utilities.ClassifyDBError(err, "Job not found")
	}
	return job, nil
}

// jobColumn checks one update field and converts its JSON value to column value
func jobColumn(key string, v interface{}) (string, interface{}, error) {
	str := func() (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", utilities.Validation("Field " + key + " must be a string")
		}
		return strings.TrimSpace(s), nil
	}

	switch key {
	case "title":
		s, err := str()
		if err == nil && s == "" {
			err = utilities.Validation("Title must not be empty")
		}
		return key, s, err
	case "link", "location", "experience", "education", "employment_type", "job_tag":
		s, err := str()
		return key, s, err
	case "salary":
		switch n := v.(type) {
		case nil:
			return key, nil, nil
		case float64:
			if n != float64(int(n)) {
				return "", nil, utilities.Validation("Salary must be an integer")
			}
			return key, int(n), nil
		case int:
			return key, n, nil
		}
		return "", nil, utilities.Validation("Salary must be an integer")
	case "stack_tags":
		tags, err := utilities.NormalizeTags(v)
		return key, pq.StringArray(tags), err
	case "deadline":
		if v == nil {
			return key, nil, nil
		}
		s, err := str()
		if err != nil {
			return "", nil, err
		}
		d, err := ParseDeadline(s)
		return key, d, err
	}
	return "", nil, utilities.Validation("Field " + key + " cannot be updated")
}

// DeleteJob removes job, its counters, reviews, applications and list entries go with it
func (s *CatalogService) DeleteJob(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&model.Job{}, id)
	if res.Error != nil {
		return utilities.Internal("Failed to delete job", errors.Wrap(res.Error, "delete job"))
	}
	if res.RowsAffected == 0 {
		return utilities.NotFound("Job not found")
	}
	return nil
}
