package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
}

func (s *memoryStore) Save(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memoryStore) all() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.entries...)
}

func TestDispatcherWritesAndDrainsOnClose(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(New(store), zerolog.Nop(), 10)

	businessID := uuid.New()
	for i := 0; i < 5; i++ {
		d.Dispatch(Event{
			BusinessID: &businessID,
			Action:     "schedule_published",
			Entity:     "schedule",
			Metadata:   map[string]int{"n": i},
			UserAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	entries := store.all()
	require.Len(t, entries, 5)
	assert.Equal(t, "schedule_published", entries[0].Action)
	assert.Equal(t, businessID, *entries[0].BusinessID)
	assert.JSONEq(t, `{"n":0}`, string(entries[0].Metadata))
	assert.Contains(t, entries[0].Device, "Chrome")

	// After close, events are ignored rather than panicking.
	d.Dispatch(Event{Action: "late"})
	assert.Len(t, store.all(), 5)
}

func TestDispatcherSurvivesStoreErrors(t *testing.T) {
	store := &memoryStore{err: errors.New("db down")}
	d := NewDispatcher(New(store), zerolog.Nop(), 1)

	d.Dispatch(Event{Action: "login"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Close(ctx))
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "noop"})
	assert.NoError(t, d.Close(context.Background()))
}
