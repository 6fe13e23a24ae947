package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BusinessID *uuid.UUID `gorm:"type:uuid;index" json:"businessId,omitempty"`
	AccountID  *uuid.UUID `gorm:"type:uuid;index" json:"accountId,omitempty"`
	Action     string     `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID     `gorm:"type:uuid" json:"entityId,omitempty"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	IP     string `gorm:"size:64" json:"ip,omitempty"`
	Device string `gorm:"size:120" json:"device,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
