package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			utilities.AbortWithError(ctx, err)
			return
		}

		if !utilities.Contains(roles, user.Role) {
			utilities.AbortWithError(ctx, utilities.Forbidden("User doesn't have permission to access"))
			return
		}
		ctx.Next()
	}
}
