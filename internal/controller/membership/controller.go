// Package membership provides HTTP handlers for bookmark and favorite lists.
package membership

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// MembershipController handles bookmark and favorite endpoints
type MembershipController struct {
	Toggles *services.ToggleService
}

// NewMembershipController creates a new instance of MembershipController
func NewMembershipController(toggles *services.ToggleService) *MembershipController {
	return &MembershipController{
		Toggles: toggles,
	}
}

type toggleRequest struct {
	JobID uint `json:"job_id" binding:"required"`
}

var toggleMessages = map[model.MembershipKind][2]string{
	model.KindBookmark: {"Bookmark added", "Bookmark removed"},
	model.KindFavorite: {"Favorite added", "Favorite removed"},
}

// ToggleBookmarkHandler adds job to bookmarks of user, or removes it when already there
// @Summary Toggle bookmark
// @Tags Bookmark
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body toggleRequest true "Job to toggle"
// @Success 200 {object} utilities.Envelope{data=services.ToggleResult}
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Router /bookmarks [post]
func (mc *MembershipController) ToggleBookmarkHandler(c *gin.Context) {
	mc.toggle(c, model.KindBookmark)
}

// ListBookmarksHandler returns bookmarked jobs of user
// @Summary List bookmarks
// @Tags Bookmark
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number starting from 1"
// @Param limit query int false "Page size"
// @Param order query string false "asc or desc by time added"
// @Success 200 {object} utilities.Envelope{data=[]model.MembershipItem}
// @Router /bookmarks [get]
func (mc *MembershipController) ListBookmarksHandler(c *gin.Context) {
	mc.list(c, model.KindBookmark)
}

// ToggleFavoriteHandler adds job to favorites of user, or removes it when already there
// @Summary Toggle favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body toggleRequest true "Job to toggle"
// @Success 200 {object} utilities.Envelope{data=services.ToggleResult}
// @Failure 404 {object} utilities.Envelope "Job not found"
// @Router /favorites [post]
func (mc *MembershipController) ToggleFavoriteHandler(c *gin.Context) {
	mc.toggle(c, model.KindFavorite)
}

// ListFavoritesHandler returns favorite jobs of user
// @Summary List favorites
// @Tags Favorite
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number starting from 1"
// @Param limit query int false "Page size"
// @Param order query string false "asc or desc by time added"
// @Success 200 {object} utilities.Envelope{data=[]model.MembershipItem}
// @Router /favorites [get]
func (mc *MembershipController) ListFavoritesHandler(c *gin.Context) {
	mc.list(c, model.KindFavorite)
}

func (mc *MembershipController) toggle(c *gin.Context, kind model.MembershipKind) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	result, err := mc.Toggles.Toggle(c.Request.Context(), user.ID, kind, req.JobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	msg := toggleMessages[kind][1]
	if result.Added {
		msg = toggleMessages[kind][0]
	}
	utilities.Respond(c, http.StatusOK, msg, result)
}

func (mc *MembershipController) list(c *gin.Context, kind model.MembershipKind) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	page, limit, err := utilities.PageQuery(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	result, err := mc.Toggles.ListMemberships(c.Request.Context(), user.ID, kind, page, limit, c.Query("order"))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.RespondPage(c, "List retrieved", result.Items, result.Pagination)
}
