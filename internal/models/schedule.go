package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Schedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"businessId"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:500" json:"description,omitempty"`

	WeekStartDate time.Time `gorm:"not null;index" json:"weekStartDate"`
	WeekEndDate   time.Time `gorm:"not null" json:"weekEndDate"`

	Shifts datatypes.JSONSlice[Shift] `gorm:"type:jsonb" json:"shifts"`

	AIGenerated       bool                        `gorm:"not null" json:"aiGenerated"`
	AIPrompt          string                      `gorm:"type:text" json:"aiPrompt,omitempty"`
	AIRecommendations datatypes.JSONSlice[string] `json:"aiRecommendations"`

	Status      string     `gorm:"size:20;not null;index" json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	PublishedBy *uuid.UUID `gorm:"type:uuid" json:"publishedBy,omitempty"`

	TotalCost float64         `json:"totalCost"`
	Metrics   ScheduleMetrics `gorm:"embedded;embeddedPrefix:metrics_" json:"metrics"`

	Modifications datatypes.JSONSlice[Modification] `json:"modifications"`

	CreatedBy uuid.UUID `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Shift struct {
	ID         uuid.UUID `json:"id"`
	StaffID    uuid.UUID `json:"staffId"`
	Role       string    `json:"role"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Duration   int       `json:"duration"`
	BreakTime  int       `json:"breakTime"`
	HourlyRate float64   `json:"hourlyRate"`
	TotalPay   float64   `json:"totalPay"`
	Notes      string    `json:"notes,omitempty"`
	Status     string    `json:"status"`
	IsOvertime bool      `json:"isOvertime"`
}

type ScheduleMetrics struct {
	TotalHours         float64 `json:"totalHours"`
	AverageShiftLength float64 `json:"averageShiftLength"`
	OvertimeHours      float64 `json:"overtimeHours"`
}

// Modification is one entry of the append-only change log.
type Modification struct {
	ModifiedBy uuid.UUID     `json:"modifiedBy"`
	ModifiedAt time.Time     `json:"modifiedAt"`
	Reason     string        `json:"reason,omitempty"`
	Changes    []FieldChange `json:"changes"`
}

type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}
