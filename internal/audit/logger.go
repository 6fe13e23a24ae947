package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/useragent"
)

type Store interface {
	Save(ctx context.Context, entry *models.AuditLog) error
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = b
		}
	}

	var device string
	if ev.UserAgent != "" {
		device = useragent.Describe(ev.UserAgent)
	}

	entry := models.AuditLog{
		ID:         uuid.New(),
		BusinessID: ev.BusinessID,
		AccountID:  ev.AccountID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   meta,
		IP:         ev.IP,
		Device:     device,
	}

	return l.store.Save(ctx, &entry)
}

type Filter struct {
	BusinessID uuid.UUID
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time
}

// Reader lists stored entries, newest first.
type Reader interface {
	List(ctx context.Context, f Filter, offset, limit int) ([]models.AuditLog, int64, error)
}
