// Package user provides HTTP handlers for account registration, login and profile.
package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// UserController handles account related endpoints
type UserController struct {
	Users *services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(users *services.UserService) *UserController {
	return &UserController{
		Users: users,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type profileRequest struct {
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	Password    string  `json:"password"`
	NewPassword string  `json:"newPassword"`
}

// LoginResponse is data of successful login
type LoginResponse struct {
	model.TokenPair
	User model.User `json:"user"`
}

// RegisterHandler creates a new account
// @Summary Register new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Email, password and optional bio"
// @Success 201 {object} utilities.Envelope
// @Failure 400 {object} utilities.Envelope "Invalid email or short password"
// @Failure 409 {object} utilities.Envelope "Email already registered"
// @Router /auth/register [post]
func (uc *UserController) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	user, err := uc.Users.Register(c.Request.Context(), req.Email, req.Password, req.Bio)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusCreated, "User registered", user)
}

// LoginHandler checks credential and issues token pair
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credential"
// @Success 200 {object} utilities.Envelope{data=LoginResponse}
// @Failure 401 {object} utilities.Envelope "Email or password is incorrect"
// @Router /auth/login [post]
func (uc *UserController) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	pair, user, err := uc.Users.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Login successful", LoginResponse{TokenPair: pair, User: user})
}

// RefreshHandler rotates refresh token and issues a new access token
// @Summary Refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body refreshRequest true "Outstanding refresh token"
// @Success 200 {object} utilities.Envelope{data=model.TokenPair}
// @Failure 401 {object} utilities.Envelope "Invalid refresh token"
// @Router /auth/refresh [post]
func (uc *UserController) RefreshHandler(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	pair, err := uc.Users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Token refreshed", pair)
}

// GetProfileHandler returns profile of logged in user
// @Summary Get own profile
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utilities.Envelope{data=model.User}
// @Router /users/me [get]
func (uc *UserController) GetProfileHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	profile, err := uc.Users.Profile(c.Request.Context(), user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfileHandler changes email, bio or password of logged in user
// @Summary Update own profile
// @Description Changing password requires current password in "password"
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body profileRequest true "Fields to change"
// @Success 200 {object} utilities.Envelope{data=model.User}
// @Failure 400 {object} utilities.Envelope
// @Failure 401 {object} utilities.Envelope "Current password is incorrect"
// @Failure 409 {object} utilities.Envelope "Email already registered"
// @Router /users/me [put]
func (uc *UserController) UpdateProfileHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondError(c, utilities.Validation("Invalid request body: "+err.Error()))
		return
	}

	updated, err := uc.Users.UpdateProfile(c.Request.Context(), user.ID, services.ProfileUpdate{
		Email:           req.Email,
		Bio:             req.Bio,
		CurrentPassword: req.Password,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Profile updated", updated)
}

// DeleteAccountHandler removes logged in user and everything it owns
// @Summary Delete own account
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utilities.Envelope
// @Router /users/me [delete]
func (uc *UserController) DeleteAccountHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if err := uc.Users.Delete(c.Request.Context(), user.ID); err != nil {
		utilities.RespondError(c, err)
		return
	}
	utilities.Respond(c, http.StatusOK, "Account deleted", nil)
}
