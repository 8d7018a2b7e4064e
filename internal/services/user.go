package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// MinPasswordLength is shortest accepted password
const MinPasswordLength = 6

// LoginHistoryLimit is number of recent logins returned with profile
const LoginHistoryLimit = 10

const msgBadCredential = "Email or password is incorrect"

// ProfileUpdate holds fields user may change on own profile, nil means unchanged
type ProfileUpdate struct {
	Email           *string
	Bio             *string
	CurrentPassword string
	NewPassword     string
}

// UserService manages accounts and their credentials
type UserService struct {
	DB     *database.DBinstanceStruct
	Tokens *auth.JWTManager
}

// NewUserService creates UserService
func NewUserService(db *database.DBinstanceStruct, tokens *auth.JWTManager) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates account with role user
func (s *UserService) Register(ctx context.Context, email, password, bio string) (model.User, error) {
	email = normalizeEmail(email)
	if !utilities.ValidEmail(email) {
		return model.User{}, utilities.Validation("Invalid email format")
	}
	if len(password) < MinPasswordLength {
		return model.User{}, utilities.Validation("Password must be at least 6 characters")
	}
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return model.User{}, utilities.Internal("Failed to register", errors.Wrap(err, "check email"))
	}
	if count > 0 {
		return model.User{}, utilities.Conflict("Email already registered")
	}

	hashed, err := utilities.HashPassword(password)
	if err != nil {
		return model.User{}, utilities.Internal("Failed to register", err)
	}

	user := model.User{
		EditableUserInfo: model.EditableUserInfo{Email: email, Bio: utilities.Sanitize(bio)},
		Password:         hashed,
		Role:             model.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		return model.User{}, utilities.ClassifyDBError(errors.Wrap(err, "create user"), "Email already registered")
	}
	auth.LogAuthAttempt(zerolog.InfoLevel, "Register", "Success", email, "")
	return user, nil
}

// Login checks credential, records login and issues a new token pair
func (s *UserService) Login(ctx context.Context, email, password, ip string) (model.TokenPair, model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.TokenPair{}, model.User{}, utilities.Validation("Email and password are required")
	}

	var user model.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		auth.LogAuthAttempt(zerolog.WarnLevel, "Local", "Fail", email, "unknown email")
		return model.TokenPair{}, model.User{}, utilities.AuthRequired(msgBadCredential)
	case err != nil:
		return model.TokenPair{}, model.User{}, utilities.Internal("Failed to login", errors.Wrap(err, "find user"))
	}

	if !utilities.VerifyPassword(password, user.Password) {
		auth.LogAuthAttempt(zerolog.WarnLevel, "Local", "Fail", email, "wrong password")
		return model.TokenPair{}, model.User{}, utilities.AuthRequired(msgBadCredential)
	}

	var pair model.TokenPair
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.LoginHistory{UserID: user.ID, LoggedInAt: time.Now(), IPAddress: ip}).Error; err != nil {
			return errors.Wrap(err, "record login")
		}
		var err error
		pair, err = s.issue(tx, user.ID)
		return err
	})
	if err != nil {
		return model.TokenPair{}, model.User{}, utilities.ClassifyDBError(err, "Failed to login")
	}

	auth.LogAuthAttempt(zerolog.InfoLevel, "Local", "Success", email, "")
	return pair, user, nil
}

// Refresh exchanges outstanding refresh token for a new pair, the old one stop working
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return model.TokenPair{}, utilities.Validation("Refresh token is required")
	}

	var pair model.TokenPair
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("refresh_token = ?", refreshToken).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utilities.AuthRequired("Invalid refresh token")
			}
			return errors.Wrap(err, "find refresh token")
		}
		var err error
		pair, err = s.issue(tx, user.ID)
		return err
	})
	if err != nil {
		auth.LogAuthAttempt(zerolog.WarnLevel, "Refresh", "Fail", "", utilities.MessageOf(err))
		return model.TokenPair{}, utilities.ClassifyDBError(err, "Failed to refresh token")
	}
	return pair, nil
}

// issue signs access token and stores a fresh refresh token on user
func (s *UserService) issue(tx *gorm.DB, userID uuid.UUID) (model.TokenPair, error) {
	access, err := s.Tokens.GenerateStandardToken(userID)
	if err != nil {
		return model.TokenPair{}, utilities.Internal("Failed to generate access token", err)
	}
	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return model.TokenPair{}, utilities.Internal("Failed to generate refresh token", err)
	}
	if err := tx.Model(&model.User{}).Where("id = ?", userID).Update("refresh_token", refresh).Error; err != nil {
		return model.TokenPair{}, errors.Wrap(err, "store refresh token")
	}
	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Profile returns user with most recent logins
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	if userID == uuid.Nil {
		return model.User{}, utilities.AuthRequired("Authentication required")
	}
	var user model.User
	err := s.DB.WithContext(ctx).Preload("LoginHistory", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("logged_in_at DESC").Limit(LoginHistoryLimit)
	}).First(&user, "id = ?", userID).Error
	if err != nil {
		return model.User{}, utilities.ClassifyDBError(errors.Wrap(err, "get profile"), "User not found")
	}
	return user, nil
}

// UpdateProfile applies upd to user, password change needs the current password
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (model.User, error) {
	if userID == uuid.Nil {
		return model.User{}, utilities.AuthRequired("Authentication required")
	}

	var user model.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return errors.Wrap(err, "find user")
		}

		updates := map[string]interface{}{}
		if upd.Email != nil {
			email := normalizeEmail(*upd.Email)
			if !utilities.ValidEmail(email) {
				return utilities.Validation("Invalid email format")
			}
			updates["email"] = email
		}
		if upd.Bio != nil {
			updates["bio"] = utilities.Sanitize(*upd.Bio)
		}
		if upd.NewPassword != "" {
			if len(upd.NewPassword) < MinPasswordLength {
				return utilities.Validation("Password must be at least 6 characters")
			}
			if !utilities.VerifyPassword(upd.CurrentPassword, user.Password) {
				return utilities.AuthRequired("Current password is incorrect")
			}
			hashed, err := utilities.HashPassword(upd.NewPassword)
			if err != nil {
				return utilities.Internal("Failed to update profile", err)
			}
			updates["password"] = hashed
		}
		if len(updates) == 0 {
			return utilities.Validation("Nothing to update")
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return utilities.ClassifyDBError(errors.Wrap(err, "update profile"), "Email already registered")
		}
		return nil
	})
	if err != nil {
		return model.User{}, utilities.ClassifyDBError(err, "User not found")
	}
	return user, nil
}

// Delete removes account with everything it owns
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return utilities.AuthRequired("Authentication required")
	}
	res := s.DB.WithContext(ctx).Delete(&model.User{}, "id = ?", userID)
	if res.Error != nil {
		return utilities.Internal("Failed to delete account", errors.Wrap(res.Error, "delete user"))
	}
	if res.RowsAffected == 0 {
		return utilities.NotFound("User not found")
	}
	return nil
}
