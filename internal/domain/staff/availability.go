package staff

import (
	"time"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// Declared reports whether the staff member marked any day as available.
// An empty week means availability was never filled in.
func Declared(s *models.Staff) bool {
	declared := false
	s.Availability.Data().Each(func(_ string, _ time.Weekday, d models.DayAvailability) {
		if d.Available {
			declared = true
		}
	})
	return declared
}

// IsAvailable reports whether a shift from start to end (HH:MM) on day fits
// the staff member's declared availability. A shift ending at or before its
// start runs past midnight and only its start is checked. An available day
// without time slots counts as the whole day.
func IsAvailable(s *models.Staff, day time.Time, start, end string) bool {
	d := s.Availability.Data().Day(day.Weekday())
	if !d.Available {
		return false
	}
	if len(d.TimeSlots) == 0 {
		return true
	}

	from, ok := clock(start)
	if !ok {
		return false
	}
	to, ok := clock(end)
	if !ok {
		return false
	}
	overnight := to <= from

	for _, slot := range d.TimeSlots {
		slotFrom, ok1 := clock(slot.Start)
		slotTo, ok2 := clock(slot.End)
		if !ok1 || !ok2 {
			continue
		}
		if overnight {
			if from >= slotFrom && from < slotTo {
				return true
			}
			continue
		}
		if from >= slotFrom && to <= slotTo {
			return true
		}
	}
	return false
}

// clock converts HH:MM to minutes since midnight.
func clock(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
