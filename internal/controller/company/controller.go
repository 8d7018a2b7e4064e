// Package company provides HTTP handlers for company lookup and creation.
package company

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// CompanyController handles company related endpoints
type CompanyController struct {
	Catalog *services.CatalogService
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(catalog *services.CatalogService) *CompanyController {
	return &CompanyController{
		Catalog: catalog,
	}
}

// ListCompaniesHandler returns companies ordered by name
// @Summary List companies
// @Tags Company
// @Produce json
// @Param name query string false "Company name substring"
// @Param page query int false "Page number starting from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} utilities.Envelope{data=[]model.Company}
// @Router /companies [get]
func (cc *CompanyController) ListCompaniesHandler(c *gin.Context) {
	page, limit, err := utilities.PageQuery(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	result, err := cc.Catalog.ListCompanies(c.Request.Context(), c.Query("name"), page, limit)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.RespondPage(c, "Companies retrieved", result.Items, result.Pagination)
}

// GetCompanyHandler returns company by id
// @Summary Get company
// @Tags Company
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} utilities.Envelope{data=model.Company}
// @Failure 404 {object} utilities.Envelope "Company not found"
// @Router /companies/{id} [get]
func (cc *CompanyController) GetCompanyHandler(c *gin.Context) {
	id, err := utilities.ParamID(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	company, err := cc.Catalog.GetCompany(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Company retrieved", company)
}

// CreateCompanyHandler stores a new company
// @Summary Create company
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.EditableCompanyInfo true "Company information"
// @Success 201 {object} utilities.Envelope{data=model.Company}
// @Failure 409 {object} utilities.Envelope "Company already exists"
// @Router /companies [post]
func (cc *CompanyController) CreateCompanyHandler(c *gin.Context) {
	var info model.EditableCompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	company, err := cc.Catalog.CreateCompany(c.Request.Context(), info)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusCreated, "Company created", company)
}
