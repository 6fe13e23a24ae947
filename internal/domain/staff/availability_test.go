package staff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

func staffWithMonday(d models.DayAvailability) *models.Staff {
	var w models.Week[models.DayAvailability]
	w.Set(time.Monday, d)
	return &models.Staff{Availability: datatypes.NewJSONType(w)}
}

// 2024-01-01 is a Monday.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDeclared(t *testing.T) {
	assert.False(t, Declared(&models.Staff{}))
	assert.True(t, Declared(staffWithMonday(models.DayAvailability{Available: true})))
}

func TestIsAvailable(t *testing.T) {
	slots := staffWithMonday(models.DayAvailability{
		Available: true,
		TimeSlots: []models.TimeSlot{{Start: "08:00", End: "12:00"}, {Start: "18:00", End: "23:00"}},
	})
	wholeDay := staffWithMonday(models.DayAvailability{Available: true})

	cases := []struct {
		name       string
		staff      *models.Staff
		day        time.Time
		start, end string
		want       bool
	}{
		{"inside first slot", slots, monday, "08:00", "12:00", true},
		{"spans the gap", slots, monday, "10:00", "19:00", false},
		{"overnight start inside slot", slots, monday, "22:00", "02:00", true},
		{"no slots means whole day", wholeDay, monday, "05:00", "21:00", true},
		{"unavailable weekday", slots, monday.AddDate(0, 0, 1), "08:00", "12:00", false},
		{"bad clock", slots, monday, "8am", "12:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAvailable(tc.staff, tc.day, tc.start, tc.end))
		})
	}
}
