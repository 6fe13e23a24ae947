package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestMonthBoundsUsesBusinessCalendar(t *testing.T) {
	// 02:00 UTC on March 1st is still February in New York.
	now := time.Date(2025, time.March, 1, 2, 0, 0, 0, time.UTC)

	start, end := MonthBounds(now, "America/New_York")
	assert.Equal(t, time.February, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.March, end.Month())

	start, _ = MonthBounds(now, "UTC")
	assert.Equal(t, time.March, start.Month())
}
