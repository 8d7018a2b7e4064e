// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"net/http"

	"github.com/Daeuning/WSD-Assignment-03/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Envelope is uniform response body of every endpoint
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Respond writes a success envelope
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondPage writes a success envelope carrying pagination block
func RespondPage(c *gin.Context, message string, data interface{}, p model.Pagination) {
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &p,
	})
}

// RespondError converts err into failure envelope with status of its kind
func RespondError(c *gin.Context, err error) {
	kind := KindOf(err)
	c.JSON(kind.Status(), Envelope{
		Success: false,
		Message: MessageOf(err),
		Error:   string(kind),
	})
}

// AbortWithError is RespondError for middleware, stop the handler chain
func AbortWithError(c *gin.Context, err error) {
	kind := KindOf(err)
	c.AbortWithStatusJSON(kind.Status(), Envelope{
		Success: false,
		Message: MessageOf(err),
		Error:   string(kind),
	})
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; instead returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, AuthRequired("User information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, Internal("Failed to assert type", errors.New("user in context is not model.User"))
	}
	return user, nil
}

// CreateAdmin creates an admin user with the given email and password in the provided database.
func CreateAdmin(password string, email string, db *gorm.DB) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		EditableUserInfo: model.EditableUserInfo{Email: email},
		Password:         hashedPassword,
		Role:             model.RoleAdmin,
	}
	return db.Create(&admin).Error
}
