// Package review provides HTTP handlers for job reviews.
package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// ReviewController handles review related endpoints
type ReviewController struct {
	Reviews *services.ReviewService
}

// NewReviewController creates a new instance of ReviewController
func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{
		Reviews: reviews,
	}
}

type createRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type updateRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// CreateReviewHandler stores review of job by logged in user
// @Summary Review job
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param body body createRequest true "Rating 1 to 5 and optional comment"
// @Success 201 {object} utilities.Envelope{data=model.Review}
// @Failure 400 {object} utilities.Envelope "Rating out of range"
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Failure 409 {object} utilities.Envelope "Already reviewed"
// @Router /jobs/{id}/reviews [post]
func (rc *ReviewController) CreateReviewHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	jobID, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	review, err := rc.Reviews.Create(c.Request.Context(), user.ID, jobID, req.Rating, req.Comment)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusCreated, "Review created", review)
}

// ListReviewsHandler returns reviews of job with average rating
// @Summary List job reviews
// @Tags Review
// @Produce json
// @Param id path int true "Job ID"
// @Param page query int false "Page number starting from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} utilities.Envelope{data=model.ReviewSummary}
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Router /jobs/{id}/reviews [get]
func (rc *ReviewController) ListReviewsHandler(c *gin.Context) {
	jobID, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	page, limit, err := utilities.PageQuery(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	summary, p, err := rc.Reviews.ListForJob(c.Request.Context(), jobID, page, limit)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.RespondPage(c, "Reviews retrieved", summary, p)
}

// UpdateReviewHandler changes own review
// @Summary Update review
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param body body updateRequest true "New rating and/or comment"
// @Success 200 {object} utilities.Envelope{data=model.Review}
// @Failure 404 {object} utilities.Envelope "Review not found"
// @Router /reviews/{id} [patch]
func (rc *ReviewController) UpdateReviewHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	id, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	review, err := rc.Reviews.Update(c.Request.Context(), id, user.ID, req.Rating, req.Comment)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Review updated", review)
}
