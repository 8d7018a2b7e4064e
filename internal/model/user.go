package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// EditableUserInfo is part of user profile that owner can edit
type EditableUserInfo struct {
	Email string `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Bio   string `gorm:"type:text;default:''" json:"bio"`
}

// User is gorm model of an account
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	EditableUserInfo
	Password     string         `gorm:"type:text;not null" json:"-"`
	Role         string         `gorm:"type:text;default:'user'" json:"role"`
	RefreshToken string         `gorm:"type:text;index" json:"-"`
	LoginHistory []LoginHistory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"login_history,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// LoginHistory records each successful login
type LoginHistory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	LoggedInAt time.Time `gorm:"type:timestamp;not null" json:"logged_in_at"`
	IPAddress  string    `gorm:"type:text" json:"ip_address"`
}

// TokenPair is returned on login and token refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
