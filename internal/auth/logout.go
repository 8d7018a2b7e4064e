package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// LogoutController handles user logout by blacklisting JWT tokens
type LogoutController struct {
	DB             *database.DBinstanceStruct
	BlacklistStore JwtBlacklistStore
}

// NewLogoutController creates a new instance of LogoutController
func NewLogoutController(db *database.DBinstanceStruct, blacklistStore JwtBlacklistStore) *LogoutController {
	return &LogoutController{
		DB:             db,
		BlacklistStore: blacklistStore,
	}
}

// LogoutHandler blacklists access token of the request and clears user refresh token
// @Summary Logout current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utilities.Envelope
// @Failure 401 {object} utilities.Envelope
// @Router /auth/logout [post]
func (lc *LogoutController) LogoutHandler(c *gin.Context) {
	if _, err := utilities.ExtractBearerToken(c); err != nil {
		utilities.RespondError(c, err)
		return
	}

	claims, err := extractClaims(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if err := lc.BlacklistStore.AddToBlacklist(claims.ID, claims.ExpiresAt.Time); err != nil {
		utilities.RespondError(c, utilities.Internal("Failed to logout", err))
		return
	}

	if user, err := utilities.ExtractUser(c); err == nil {
		err := lc.DB.Model(&model.User{}).Where("id = ?", user.ID).Update("refresh_token", "").Error
		if err != nil {
			utilities.RespondError(c, utilities.Internal("Failed to logout", errors.Wrap(err, "clear refresh token")))
			return
		}
	}

	LogAuthAttempt(zerolog.InfoLevel, "Logout", "Success", claims.Subject, "")
	utilities.Respond(c, http.StatusOK, "Successfully logged out", nil)
}

func extractClaims(c *gin.Context) (*jwt.RegisteredClaims, error) {
	claims, ok := c.Get("claims")
	if !ok {
		return nil, utilities.AuthRequired("Invalid token claims")
	}

	realClaims, okCast := claims.(*jwt.RegisteredClaims)
	if !okCast || realClaims.ExpiresAt == nil {
		return nil, utilities.AuthRequired("Invalid token claims type")
	}
	return realClaims, nil
}
