// Package search provides HTTP handlers over search history.
package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// SearchController handles search history endpoints
type SearchController struct {
	Listing *services.ListingService
}

// NewSearchController creates a new instance of SearchController
func NewSearchController(listing *services.ListingService) *SearchController {
	return &SearchController{
		Listing: listing,
	}
}

// TopKeywordsHandler returns most searched keywords of logged in user
// @Summary Top search keywords
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of keywords, 3 by default"
// @Success 200 {object} utilities.Envelope{data=[]model.KeywordCount}
// @Router /search/top-keywords [get]
func (sc *SearchController) TopKeywordsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	limit, err := utilities.QueryInt(c, "limit", services.TopKeywordsLimit)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	keywords, err := sc.Listing.TopKeywords(c.Request.Context(), user.ID, limit)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Top keywords retrieved", keywords)
}
