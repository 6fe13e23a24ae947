package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

type Business struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Phone   string  `gorm:"size:30" json:"phone,omitempty"`
	Email   string  `gorm:"size:255" json:"email,omitempty"`

	BusinessHours datatypes.JSONType[Week[DayHours]] `json:"businessHours"`
	Roles         datatypes.JSONSlice[Role]          `json:"roles"`
	Constraints   Constraints                        `gorm:"embedded;embeddedPrefix:constraint_" json:"constraints"`

	Timezone string `gorm:"size:64;not null" json:"timezone"`
	Currency string `gorm:"size:3;not null" json:"currency"`
	IsActive bool   `gorm:"not null" json:"isActive"`

	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_" json:"subscription"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Address struct {
	Street  string `gorm:"size:200" json:"street,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:100" json:"state,omitempty"`
	ZipCode string `gorm:"size:20" json:"zipCode,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
}

type Role struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	MinStaffRequired int       `json:"minStaffRequired"`
	MaxStaffRequired int       `json:"maxStaffRequired"`
	HourlyRate       float64   `json:"hourlyRate"`
}

type Constraints struct {
	MaxHoursPerDay    int `json:"maxHoursPerDay"`
	MaxHoursPerWeek   int `json:"maxHoursPerWeek"`
	MinBreakTime      int `json:"minBreakTime"`
	OvertimeThreshold int `json:"overtimeThreshold"`
}

type Subscription struct {
	Plan                 string `gorm:"size:20" json:"plan"`
	MaxStaff             int    `json:"maxStaff"`
	MaxSchedulesPerMonth int    `json:"maxSchedulesPerMonth"`
}
