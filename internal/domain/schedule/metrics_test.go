package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

func TestShiftMinutes(t *testing.T) {
	m, ok := ShiftMinutes("09:00", "17:00")
	assert.True(t, ok)
	assert.Equal(t, 480, m)

	m, ok = ShiftMinutes("22:00", "06:00")
	assert.True(t, ok)
	assert.Equal(t, 480, m)

	_, ok = ShiftMinutes("9am", "17:00")
	assert.False(t, ok)
}

func TestRecalculate(t *testing.T) {
	s := &models.Schedule{
		Shifts: []models.Shift{
			{StaffID: uuid.New(), StartTime: "09:00", EndTime: "17:00", BreakTime: 30, HourlyRate: 15},
			{StaffID: uuid.New(), StartTime: "12:00", EndTime: "16:00", HourlyRate: 20, IsOvertime: true},
		},
	}

	Recalculate(s)

	assert.Equal(t, 480, s.Shifts[0].Duration)
	assert.Equal(t, 112.5, s.Shifts[0].TotalPay)
	assert.Equal(t, 80.0, s.Shifts[1].TotalPay)
	assert.Equal(t, ShiftScheduled, s.Shifts[0].Status)

	assert.Equal(t, 192.5, s.TotalCost)
	assert.Equal(t, 12.0, s.Metrics.TotalHours)
	assert.Equal(t, 6.0, s.Metrics.AverageShiftLength)
	assert.Equal(t, 4.0, s.Metrics.OvertimeHours)
}

func TestRecalculateIsIdempotent(t *testing.T) {
	s := &models.Schedule{
		Shifts: []models.Shift{
			{StartTime: "08:15", EndTime: "13:40", BreakTime: 15, HourlyRate: 17.35},
			{StartTime: "18:00", EndTime: "02:00", HourlyRate: 21.1, IsOvertime: true},
			{StartTime: "10:00", EndTime: "11:00", Duration: 45, HourlyRate: 9.99},
		},
	}

	Recalculate(s)
	first := *s
	firstShifts := append([]models.Shift(nil), s.Shifts...)

	Recalculate(s)

	assert.Equal(t, first.TotalCost, s.TotalCost)
	assert.Equal(t, first.Metrics, s.Metrics)
	assert.Equal(t, firstShifts, []models.Shift(s.Shifts))
}

func TestRecalculateEmpty(t *testing.T) {
	s := &models.Schedule{TotalCost: 99, Metrics: models.ScheduleMetrics{TotalHours: 3, AverageShiftLength: 3, OvertimeHours: 1}}

	Recalculate(s)

	assert.Zero(t, s.TotalCost)
	assert.Equal(t, models.ScheduleMetrics{}, s.Metrics)
}

func TestRecalculateFollowsShiftChanges(t *testing.T) {
	s := &models.Schedule{
		Shifts: []models.Shift{{StartTime: "09:00", EndTime: "13:00", HourlyRate: 10}},
	}
	Recalculate(s)
	assert.Equal(t, 40.0, s.TotalCost)

	s.Shifts = append(s.Shifts, models.Shift{StartTime: "13:00", EndTime: "15:00", HourlyRate: 10})
	Recalculate(s)
	assert.Equal(t, 60.0, s.TotalCost)
	assert.Equal(t, 3.0, s.Metrics.AverageShiftLength)
}

func TestPublishAndDelete(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	by := uuid.New()
	s := &models.Schedule{Status: string(InitialStatus())}

	assert.NoError(t, CanDelete(s))

	assert.NoError(t, Publish(s, by, now))
	assert.Equal(t, string(StatusPublished), s.Status)
	assert.Equal(t, now, *s.PublishedAt)
	assert.Equal(t, by, *s.PublishedBy)

	assert.ErrorIs(t, Publish(s, by, now), ErrAlreadyPublished)
	assert.ErrorIs(t, CanDelete(s), ErrDeletePublished)

	s.Status = string(StatusArchived)
	assert.ErrorIs(t, CanDelete(s), ErrDeletePublished)
}
