// Package middleware contain utilities middleware code
package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// RequireAuth validates Bearer token in Authorization header, loads the user it names
// and puts "user" and "claims" into the context.
func RequireAuth(db *database.DBinstanceStruct, tokens *auth.JWTManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, claims, err := authenticate(ctx, db, tokens)
		if err != nil {
			utilities.AbortWithError(ctx, err)
			return
		}

		ctx.Set("claims", claims)
		ctx.Set("user", user)
		ctx.Next()
	}
}

// OptionalAuth behaves like RequireAuth when Authorization header is present,
// request without header pass through anonymous.
func OptionalAuth(db *database.DBinstanceStruct, tokens *auth.JWTManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			ctx.Next()
			return
		}
		user, claims, err := authenticate(ctx, db, tokens)
		if err != nil {
			utilities.AbortWithError(ctx, err)
			return
		}

		ctx.Set("claims", claims)
		ctx.Set("user", user)
		ctx.Next()
	}
}

func authenticate(ctx *gin.Context, db *database.DBinstanceStruct, tokens *auth.JWTManager) (model.User, *jwt.RegisteredClaims, error) {
	tokenString, err := utilities.ExtractBearerToken(ctx)
	if err != nil {
		return model.User{}, nil, err
	}

	claims, err := tokens.ValidatedToken(tokenString)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.User{}, nil, utilities.AuthRequired("Access token expired")
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return model.User{}, nil, utilities.AuthRequired("Invalid token issuer")
		}
		return model.User{}, nil, utilities.AuthRequired("Invalid access token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.User{}, nil, utilities.AuthRequired("Invalid access token")
	}

	var foundUser model.User
	if err := db.WithContext(ctx.Request.Context()).Where("id = ?", userID).First(&foundUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, nil, utilities.AuthRequired("User not exist")
		}
		return model.User{}, nil, utilities.Internal("Failed to retrieve user data", err)
	}

	return foundUser, claims, nil
}
