package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCountsWithinWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	for i := int64(1); i <= 3; i++ {
		n, reset, err := s.Hit(t.Context(), "1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
		assert.Equal(t, time.Minute, reset)
	}

	n, _, _ := s.Hit(t.Context(), "5.6.7.8", time.Minute)
	assert.Equal(t, int64(1), n, "keys are independent")
}

func TestMemoryStoreResetsAfterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	_, _, _ = s.Hit(t.Context(), "k", time.Minute)
	now = now.Add(30 * time.Second)
	n, reset, _ := s.Hit(t.Context(), "k", time.Minute)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 30*time.Second, reset)

	now = now.Add(30 * time.Second)
	n, _, _ = s.Hit(t.Context(), "k", time.Minute)
	assert.Equal(t, int64(1), n)
}
