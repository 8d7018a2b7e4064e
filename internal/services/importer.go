package services

import (
	"context"
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// CrawledJob is one record of crawler output
type CrawledJob struct {
	CompanyName         string      `json:"회사명"`
	Industry            string      `json:"업종"`
	Website             string      `json:"홈페이지"`
	Address             string      `json:"주소"`
	CEOName             string      `json:"대표자명"`
	BusinessDescription string      `json:"사업내용"`
	Title               string      `json:"제목"`
	Link                string      `json:"링크"`
	Location            string      `json:"지역"`
	Experience          string      `json:"경력"`
	Education           string      `json:"학력"`
	EmploymentType      string      `json:"고용형태"`
	JobTag              string      `json:"태그"`
	Sector              interface{} `json:"직무분야"`
	Deadline            string      `json:"마감일"`
	PostedAt            string      `json:"등록일"`
}

// ImportReport counts outcome of an import run
type ImportReport struct {
	Created int
	Skipped int
	Failed  int
}

var (
	postedPattern   = regexp.MustCompile(`등록일\s?\d{2}/\d{2}/\d{2}`)
	trailingOther   = regexp.MustCompile(`외\s*$`)
	hangulPattern   = regexp.MustCompile(`[ㄱ-ㅎㅏ-ㅣ가-힣]`)
	deadlinePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)
)

// CleanCrawledText removes crawler noise: posted date, trailing "외", trending badge and newlines
func CleanCrawledText(s string) string {
	s = postedPattern.ReplaceAllString(s, "")
	s = trailingOther.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "스크랩 급상승", "")
	s = strings.NewReplacer("\n", "", "\r", "").Replace(s)
	return strings.TrimSpace(s)
}

// ParseCrawledDeadline parses "~ MM/DD(요일)" in year of now.
// Empty value and "채용시" (until filled) mean no deadline.
func ParseCrawledDeadline(s string, now time.Time) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "채용시") {
		return nil
	}
	m := deadlinePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	t, err := time.ParseInLocation("2006-1/2", now.Format("2006")+"-"+m[1]+"/"+m[2], now.Location())
	if err != nil {
		return nil
	}
	return &t
}

// ParseCrawledPostedAt parses "등록일 YY/MM/DD", nil when malformed
func ParseCrawledPostedAt(s string) *time.Time {
	cleaned := strings.TrimSpace(hangulPattern.ReplaceAllString(s, ""))
	t, err := time.Parse("06/01/02", cleaned)
	if err != nil {
		return nil
	}
	return &t
}

// ImportService loads crawler output into the catalogue
type ImportService struct {
	DB *database.DBinstanceStruct
}

// NewImportService creates ImportService
func NewImportService(db *database.DBinstanceStruct) *ImportService {
	return &ImportService{DB: db}
}

// ImportJSON decodes array of CrawledJob from r and imports it
func (s *ImportService) ImportJSON(ctx context.Context, r io.Reader) (ImportReport, error) {
	var items []CrawledJob
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return ImportReport{}, utilities.Validation("Crawled data must be a JSON array: " + err.Error())
	}
	return s.Import(ctx, items), nil
}

// Import stores every item, existing (title, company) pairs are skipped and
// a failing item does not stop the rest.
func (s *ImportService) Import(ctx context.Context, items []CrawledJob) ImportReport {
	var report ImportReport
	now := time.Now()
	for i, item := range items {
		created, err := s.importOne(ctx, item, now)
		switch {
		case err != nil:
			report.Failed++
			log.Error().Err(err).Int("index", i).Str("title", item.Title).Msg("Failed to import job")
		case created:
			report.Created++
			log.Info().Str("title", item.Title).Str("company", item.CompanyName).Msg("Job imported")
		default:
			report.Skipped++
			log.Debug().Str("title", item.Title).Str("company", item.CompanyName).Msg("Job already exists")
		}
	}
	return report
}

func (s *ImportService) importOne(ctx context.Context, item CrawledJob, now time.Time) (bool, error) {
	title := CleanCrawledText(item.Title)
	if title == "" {
		return false, utilities.Validation("Title is required")
	}

	tags := []string{}
	switch v := item.Sector.(type) {
	case []interface{}:
		for _, t := range v {
			if str, ok := t.(string); ok {
				if c := CleanCrawledText(str); c != "" {
					tags = append(tags, c)
				}
			}
		}
	case string:
		tags = utilities.SplitTags(CleanCrawledText(v))
	}

	createdAt := now
	if p := ParseCrawledPostedAt(item.PostedAt); p != nil {
		createdAt = *p
	}

	created := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := FindOrCreateCompany(tx, item.CompanyName, model.EditableCompanyInfo{
			Industry:            CleanCrawledText(item.Industry),
			Website:             strings.TrimSpace(item.Website),
			Address:             CleanCrawledText(item.Address),
			CEOName:             strings.TrimSpace(item.CEOName),
			BusinessDescription: CleanCrawledText(item.BusinessDescription),
		})
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&model.Job{}).Where("title = ? AND company_id = ?", title, company.ID).Count(&existing).Error; err != nil {
			return errors.Wrap(err, "check job")
		}
		if existing > 0 {
			return nil
		}

		job := model.Job{
			CompanyID: company.ID,
			CreatedAt: createdAt,
			EditableJobInfo: model.EditableJobInfo{
				Title:          title,
				Link:           strings.TrimSpace(item.Link),
				Location:       CleanCrawledText(item.Location),
				Experience:     CleanCrawledText(item.Experience),
				Education:      CleanCrawledText(item.Education),
				EmploymentType: CleanCrawledText(item.EmploymentType),
				JobTag:         CleanCrawledText(item.JobTag),
				StackTags:      pq.StringArray(tags),
				Deadline:       ParseCrawledDeadline(item.Deadline, now),
			},
		}
		if err := tx.Omit("Company").Create(&job).Error; err != nil {
			return errors.Wrap(err, "create job")
		}
		created = true
		return nil
	})
	return created, err
}
