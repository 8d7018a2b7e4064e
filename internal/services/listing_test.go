package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

func ids(page model.Page[JobListItem]) []uint {
	out := []uint{}
	for _, it := range page.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestParseSalaryRange(t *testing.T) {
	lo, hi, err := ParseSalaryRange("3000-5000")
	require.NoError(t, err)
	assert.Equal(t, 3000, lo)
	assert.Equal(t, 5000, hi)

	lo, hi, err = ParseSalaryRange(" 100 - 200 ")
	require.NoError(t, err)
	assert.Equal(t, 100, lo)
	assert.Equal(t, 200, hi)

	for _, bad := range []string{"abc-5000", "3000-", "3000", "1-2-3", "5000-3000", "-"} {
		_, _, err := ParseSalaryRange(bad)
		assertKind(t, utilities.KindValidation, err)
	}
}

func TestListJobsConjunction(t *testing.T) {
	svc := NewListingService(testDB, 20)

	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Location: "Seoul", Experience: "3년"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID}, ids(page))
	assert.Equal(t, int64(1), page.Pagination.TotalItems)
	assert.Equal(t, 1, page.Pagination.TotalPages)

	page, err = svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Experience: "3년"}, "created_at", "asc", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID, database.TestJob2.ID}, ids(page))
}

func TestListJobsLocationCaseInsensitive(t *testing.T) {
	svc := NewListingService(testDB, 20)

	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Location: "seoul"}, "created_at", "asc", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID, database.TestJob3.ID}, ids(page))
}

func TestListJobsSalary(t *testing.T) {
	svc := NewListingService(testDB, 20)

	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Salary: "3000-5000"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Contains(t, ids(page), database.TestJob1.ID)
	assert.NotContains(t, ids(page), database.TestJob2.ID)
	assert.NotContains(t, ids(page), database.TestJob3.ID)

	_, err = svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Salary: "abc-5000"}, "", "", 1, 0)
	assertKind(t, utilities.KindValidation, err)
}

func TestListJobsStackTagsAnyOf(t *testing.T) {
	svc := NewListingService(testDB, 20)

	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{StackTags: []string{"react", "python"}}, "created_at", "asc", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob2.ID, database.TestJob3.ID}, ids(page))
}

func TestListJobsCompanyShortCircuit(t *testing.T) {
	svc := NewListingService(testDB, 20)

	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{CompanyName: "NoSuchCompany"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
	assert.Equal(t, 0, page.Pagination.TotalPages)

	page, err = svc.ListJobs(context.Background(), uuid.Nil, JobFilter{CompanyName: "techn", Location: "Busan"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob2.ID}, ids(page))
	assert.Equal(t, database.TestCompany1.Name, page.Items[0].Company.Name)
}

func TestListJobsKeyword(t *testing.T) {
	svc := NewListingService(testDB, 20)

	// matches stack tag element
	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Keyword: "postgre"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID}, ids(page))

	// matches job tag
	page, err = svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Keyword: "FRONTEND"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob2.ID}, ids(page))

	// matches title, combined with location
	page, err = svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Keyword: "Engineer", Location: "Seoul"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID}, ids(page))
}

func TestListJobsLiteralPattern(t *testing.T) {
	svc := NewListingService(testDB, 20)

	page, err := svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Location: "%"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = svc.ListJobs(context.Background(), uuid.Nil, JobFilter{Title: "_ackend"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListJobsPaginationAndSort(t *testing.T) {
	svc := NewListingService(testDB, 20)
	f := JobFilter{StackTags: []string{"go", "react", "sql"}}

	page, err := svc.ListJobs(context.Background(), uuid.Nil, f, "created_at", "desc", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob3.ID, database.TestJob2.ID}, ids(page))
	assert.Equal(t, model.Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 3, PageSize: 2}, page.Pagination)
	assert.NotEmpty(t, page.Items[0].PostedAgo)

	page, err = svc.ListJobs(context.Background(), uuid.Nil, f, "created_at", "desc", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID}, ids(page))

	// unknown sort field falls back to creation time
	page, err = svc.ListJobs(context.Background(), uuid.Nil, f, "salary; DROP TABLE jobs", "asc", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID, database.TestJob2.ID, database.TestJob3.ID}, ids(page))
	assert.Equal(t, 1, page.Pagination.CurrentPage)

	// deadline ascending, job without deadline sorts last
	page, err = svc.ListJobs(context.Background(), uuid.Nil, f, "deadline", "asc", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID, database.TestJob2.ID, database.TestJob3.ID}, ids(page))
}

func TestSearchHistory(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(testDB, 20)
	user, err := database.NewTestUser(testDB, "search-history@example.com")
	require.NoError(t, err)

	search := func(kw string) {
		_, err := svc.ListJobs(ctx, user.ID, JobFilter{Keyword: kw}, "", "", 1, 0)
		require.NoError(t, err)
	}
	search("go")
	search("react")
	search("go")
	search("python")
	search("react")
	search("go")
	search("rust")

	// anonymous search is not recorded
	_, err = svc.ListJobs(ctx, uuid.Nil, JobFilter{Keyword: "go"}, "", "", 1, 0)
	require.NoError(t, err)

	top, err := svc.TopKeywords(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, model.KeywordCount{SearchKeyword: "go", SearchCount: 3}, top[0])
	assert.Equal(t, model.KeywordCount{SearchKeyword: "react", SearchCount: 2}, top[1])
	// python and rust tie, the later one wins
	assert.Equal(t, "rust", top[2].SearchKeyword)

	_, err = svc.TopKeywords(ctx, uuid.Nil, 3)
	assertKind(t, utilities.KindAuthRequired, err)
}

func TestSearchHistoryFailureIsSwallowed(t *testing.T) {
	svc := NewListingService(testDB, 20)

	// unknown user violates foreign key, listing still succeeds
	page, err := svc.ListJobs(context.Background(), uuid.New(), JobFilter{Keyword: "postgres"}, "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob1.ID}, ids(page))
}

func TestGetJob(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(testDB, 20)
	job, err := database.NewTestJob(testDB, "Viewed Job")
	require.NoError(t, err)

	detail, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, detail.Job.ID)
	assert.Equal(t, database.TestCompany2.Name, detail.Job.Company.Name)
	require.NotNil(t, detail.Job.Statistics)
	assert.Equal(t, int64(1), detail.Job.Statistics.Views)

	detail, err = svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Job.Statistics.Views)

	assert.LessOrEqual(t, len(detail.RelatedJobs), RelatedJobsLimit)
	for _, r := range detail.RelatedJobs {
		assert.NotEqual(t, job.ID, r.ID)
		assert.Equal(t, database.TestCompany2.ID, r.CompanyID)
	}

	_, err = svc.GetJob(ctx, 999999)
	assertKind(t, utilities.KindNotFound, err)
}

func TestGetJobRelatedByStackTag(t *testing.T) {
	svc := NewListingService(testDB, 20)

	detail, err := svc.GetJob(context.Background(), database.TestJob1.ID)
	require.NoError(t, err)

	related := map[uint]bool{}
	for _, r := range detail.RelatedJobs {
		related[r.ID] = true
	}
	// same company
	assert.True(t, related[database.TestJob2.ID])
	assert.False(t, related[database.TestJob1.ID])
}
