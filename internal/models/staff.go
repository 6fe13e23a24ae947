package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TimeOffPending  = "pending"
	TimeOffApproved = "approved"
	TimeOffRejected = "rejected"
)

type Staff struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:255" json:"email,omitempty"`
	Phone string `gorm:"size:30;not null" json:"phone"`

	BusinessID uuid.UUID  `gorm:"type:uuid;not null;index" json:"businessId"`
	AccountID  *uuid.UUID `gorm:"type:uuid;index" json:"accountId,omitempty"`

	Roles      datatypes.JSONSlice[string] `json:"roles"`
	HourlyRate float64                     `json:"hourlyRate"`

	Availability datatypes.JSONType[Week[DayAvailability]] `json:"availability"`
	Preferences  datatypes.JSONType[StaffPreferences]      `json:"preferences"`

	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
	HireDate         time.Time        `json:"hireDate"`
	IsActive         bool             `gorm:"not null;index" json:"isActive"`

	TimeOffRequests datatypes.JSONSlice[TimeOffRequest] `json:"timeOffRequests"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Staff) TableName() string {
	return "staff"
}

type StaffPreferences struct {
	MaxHoursPerWeek int      `json:"maxHoursPerWeek"`
	MaxHoursPerDay  int      `json:"maxHoursPerDay"`
	PreferredShifts []string `json:"preferredShifts"`
	MaxShiftsPerDay int      `json:"maxShiftsPerDay"`
}

type EmergencyContact struct {
	Name         string `gorm:"size:100" json:"name,omitempty"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`
	Relationship string `gorm:"size:50" json:"relationship,omitempty"`
}

type TimeOffRequest struct {
	ID          uuid.UUID  `json:"id"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Reason      string     `json:"reason,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ReviewedBy  *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}
