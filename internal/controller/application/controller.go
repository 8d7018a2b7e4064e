// Package application provides HTTP handlers for job application operations.
package application

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Applications *services.ApplicationService
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(applications *services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		Applications: applications,
	}
}

type applyRequest struct {
	JobID uint `json:"jobId" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplyHandler creates application of logged in user
// @Summary Apply to job
// @Tags Application
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body applyRequest true "Job to apply"
// @Success 201 {object} utilities.Envelope{data=model.ApplicationResponse}
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Failure 409 {object} utilities.Envelope "Already applied to this job"
// @Router /applications [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	app, err := ac.Applications.Apply(c.Request.Context(), user.ID, req.JobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusCreated, "Application submitted", app.ToResponse())
}

// ListApplicationsHandler returns applications of logged in user, newest first
// @Summary List own applications
// @Tags Application
// @Produce json
// @Security BearerAuth
// @Param status query string false "applying, reviewing, accepted, rejected or cancelled"
// @Param sort query string false "appliedAt (default) or updatedAt"
// @Success 200 {object} utilities.Envelope{data=[]model.ApplicationResponse}
// @Failure 400 {object} utilities.Envelope "Unknown status"
// @Router /applications [get]
func (ac *ApplicationController) ListApplicationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	apps, err := ac.Applications.List(c.Request.Context(), user.ID, c.Query("status"), c.Query("sort"))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Applications retrieved", apps)
}

// CancelApplicationHandler cancels application of logged in user that is still applying
// @Summary Cancel application
// @Tags Application
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} utilities.Envelope{data=model.ApplicationResponse}
// @Failure 404 {object} utilities.Envelope "Application not found"
// @Failure 409 {object} utilities.Envelope "Application no longer cancellable"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) CancelApplicationHandler(c *gin.Context) {
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

	app, err := ac.Applications.Cancel(c.Request.Context(), id, user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Application cancelled", app.ToResponse())
}

// UpdateStatusHandler moves application along the status machine
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body statusRequest true "Next status"
// @Success 200 {object} utilities.Envelope{data=model.Application}
// @Failure 400 {object} utilities.Envelope "Unknown status"
// @Failure 409 {object} utilities.Envelope "Transition not allowed"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	id, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	app, err := ac.Applications.UpdateStatus(c.Request.Context(), id, model.ApplicationStatus(req.Status))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Application status updated", app)
}
