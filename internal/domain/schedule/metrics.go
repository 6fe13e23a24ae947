package schedule

import (
	"math"
	"time"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// ShiftMinutes is the length of a start/end pair. An end at or before the start wraps past midnight.
func ShiftMinutes(start, end string) (int, bool) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, false
	}
	if !e.After(s) {
		e = e.Add(24 * time.Hour)
	}
	return int(e.Sub(s).Minutes()), true
}

// ShiftPay pays the shift length minus its break at the hourly rate.
func ShiftPay(sh models.Shift) float64 {
	paid := sh.Duration - sh.BreakTime
	if paid < 0 {
		paid = 0
	}
	return round2(float64(paid) / 60 * sh.HourlyRate)
}

// Recalculate derives shift pay and the schedule totals from the shift list.
// It depends on nothing but the shifts, so running it twice changes nothing.
func Recalculate(s *models.Schedule) {
	var (
		totalMinutes    int
		overtimeMinutes int
		totalCost       float64
	)

	for i := range s.Shifts {
		sh := &s.Shifts[i]

		if sh.Duration <= 0 {
			if m, ok := ShiftMinutes(sh.StartTime, sh.EndTime); ok {
				sh.Duration = m
			}
		}
		if sh.Status == "" {
			sh.Status = ShiftScheduled
		}
		sh.TotalPay = ShiftPay(*sh)

		totalMinutes += sh.Duration
		totalCost += sh.TotalPay
		if sh.IsOvertime {
			overtimeMinutes += sh.Duration
		}
	}

	s.TotalCost = round2(totalCost)
	s.Metrics.TotalHours = round2(float64(totalMinutes) / 60)
	s.Metrics.OvertimeHours = round2(float64(overtimeMinutes) / 60)
	s.Metrics.AverageShiftLength = 0
	if n := len(s.Shifts); n > 0 {
		s.Metrics.AverageShiftLength = round2(float64(totalMinutes) / float64(n) / 60)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
