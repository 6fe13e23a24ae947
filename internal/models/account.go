package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type Account struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string `gorm:"size:50;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`
	Role         string `gorm:"size:20;not null;index" json:"role"`

	BusinessID *uuid.UUID `gorm:"type:uuid;index" json:"businessId,omitempty"`

	IsActive  bool       `gorm:"not null" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	RefreshTokens datatypes.JSONSlice[RefreshToken] `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefreshToken is one outstanding session. Only the SHA-256 of the token is kept.
type RefreshToken struct {
	TokenHash string    `json:"tokenHash"`
	Device    string    `json:"device,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
