// Package job provides HTTP handlers for browsing and administering job posts.
package job

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// JobController handles job post related endpoints
type JobController struct {
	Listing *services.ListingService
	Catalog *services.CatalogService
}

// NewJobController creates a new instance of JobController
func NewJobController(listing *services.ListingService, catalog *services.CatalogService) *JobController {
	return &JobController{
		Listing: listing,
		Catalog: catalog,
	}
}

type jobRequest struct {
	Title          string      `json:"title"`
	CompanyID      uint        `json:"company_id"`
	CompanyName    string      `json:"company_name"`
	Link           string      `json:"link"`
	Location       string      `json:"location"`
	Experience     string      `json:"experience"`
	Education      string      `json:"education"`
	EmploymentType string      `json:"employment_type"`
	Salary         *int        `json:"salary"`
	JobTag         string      `json:"job_tag"`
	StackTags      interface{} `json:"stack_tags"`
	Deadline       string      `json:"deadline"`
}

// ListJobsHandler returns one page of jobs matching query
// @Summary List jobs with filters, sorting and pagination
// @Description Every filter is optional and all given filters must hold. Keyword search of logged in user is recorded.
// @Tags Job
// @Produce json
// @Param location query string false "Location substring, case insensitive"
// @Param experience query string false "Experience substring, case insensitive"
// @Param salary query string false "Salary range min-max"
// @Param stack_tags query string false "Comma separated tags, any of them"
// @Param company_name query string false "Company name substring"
// @Param title query string false "Title substring"
// @Param keyword query string false "Substring of title, job tag or any stack tag"
// @Param sortBy query string false "created_at or deadline"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number starting from 1"
// @Param limit query int false "Page size, at most 100"
// @Success 200 {object} utilities.Envelope{data=[]services.JobListItem}
// @Failure 400 {object} utilities.Envelope "Malformed salary range or page"
// @Router /jobs [get]
func (jc *JobController) ListJobsHandler(c *gin.Context) {
	page, limit, err := utilities.PageQuery(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	userID := uuid.Nil
	if user, err := utilities.ExtractUser(c); err == nil {
		userID = user.ID
	}

	filter := services.JobFilter{
		Location:    c.Query("location"),
		Experience:  c.Query("experience"),
		Salary:      c.Query("salary"),
		StackTags:   utilities.SplitTags(strings.Join(c.QueryArray("stack_tags"), ",")),
		CompanyName: c.Query("company_name"),
		Title:       c.Query("title"),
		Keyword:     c.Query("keyword"),
	}

	result, err := jc.Listing.ListJobs(c.Request.Context(), userID, filter, c.Query("sortBy"), c.Query("order"), page, limit)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.RespondPage(c, "Jobs retrieved", result.Items, result.Pagination)
}

// GetJobHandler returns job with its statistics and related jobs, each call counts as a view
// @Summary Get job detail
// @Tags Job
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} utilities.Envelope{data=services.JobDetail}
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobHandler(c *gin.Context) {
	id, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	detail, err := jc.Listing.GetJob(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Job retrieved", detail)
}

// CreateJobHandler stores a new job post
// @Summary Create job post
// @Description Company is given by company_id, or by company_name in which case it is created when missing
// @Tags Job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body jobRequest true "Job information"
// @Success 201 {object} utilities.Envelope{data=model.Job}
// @Failure 400 {object} utilities.Envelope
// @Failure 403 {object} utilities.Envelope "Not an admin"
// @Failure 409 {object} utilities.Envelope "Duplicate title within company"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	job, err := jc.Catalog.CreateJob(c.Request.Context(), services.JobInput{
		Title:          req.Title,
		CompanyID:      req.CompanyID,
		CompanyName:    req.CompanyName,
		Link:           req.Link,
		Location:       req.Location,
		Experience:     req.Experience,
		Education:      req.Education,
		EmploymentType: req.EmploymentType,
		Salary:         req.Salary,
		JobTag:         req.JobTag,
		StackTags:      req.StackTags,
		Deadline:       req.Deadline,
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusCreated, "Job created", job)
}

// UpdateJobHandler changes given fields of a job post
// @Summary Update job post
// @Tags Job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param body body object true "Subset of editable job fields"
// @Success 200 {object} utilities.Envelope{data=model.Job}
// @Failure 400 {object} utilities.Envelope "Unknown or malformed field"
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Router /jobs/{id} [patch]
func (jc *JobController) UpdateJobHandler(c *gin.Context) {
	id, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	fields := map[string]interface{}{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	job, err := jc.Catalog.UpdateJob(c.Request.Context(), id, fields)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Job updated", job)
}

// DeleteJobHandler removes a job post with its statistics, reviews, applications and list entries
// @Summary Delete job post
// @Tags Job
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} utilities.Envelope
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJobHandler(c *gin.Context) {
	id, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if err := jc.Catalog.DeleteJob(c.Request.Context(), id); err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Job deleted", nil)
}
