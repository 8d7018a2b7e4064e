package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// JwtBlacklistCheck rejects request whose token was revoked by logout.
// It must run after RequireAuth or OptionalAuth, anonymous request pass through.
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, ok := ctx.Get("claims")
		if !ok {
			ctx.Next()
			return
		}
		claims, ok := raw.(*jwt.RegisteredClaims)
		if !ok {
			utilities.AbortWithError(ctx, utilities.AuthRequired("Invalid token claims type"))
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(claims.ID)
		if err != nil {
			utilities.AbortWithError(ctx, utilities.Internal("Failed to validate token", err))
			return
		}
		if isBlacklisted {
			utilities.AbortWithError(ctx, utilities.AuthRequired("Token has been revoked"))
			return
		}
		ctx.Next()
	}
}
