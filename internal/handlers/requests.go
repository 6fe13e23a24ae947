package handlers

import (
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// ======================================================
// Shared request shapes
// ======================================================

// week mirrors models.Week so each day can carry binding tags.
type week[T any] struct {
	Monday    T `json:"monday"`
	Tuesday   T `json:"tuesday"`
	Wednesday T `json:"wednesday"`
	Thursday  T `json:"thursday"`
	Friday    T `json:"friday"`
	Saturday  T `json:"saturday"`
	Sunday    T `json:"sunday"`
}

func mapWeek[A, B any](w week[A], fn func(A) B) models.Week[B] {
	return models.Week[B]{
		Monday:    fn(w.Monday),
		Tuesday:   fn(w.Tuesday),
		Wednesday: fn(w.Wednesday),
		Thursday:  fn(w.Thursday),
		Friday:    fn(w.Friday),
		Saturday:  fn(w.Saturday),
		Sunday:    fn(w.Sunday),
	}
}

type dayHoursRequest struct {
	Start  string `json:"start" binding:"omitempty,hhmm"`
	End    string `json:"end" binding:"omitempty,hhmm"`
	IsOpen bool   `json:"isOpen"`
}

func (d dayHoursRequest) model() models.DayHours {
	return models.DayHours(d)
}

type timeSlotRequest struct {
	Start string `json:"start" binding:"required,hhmm"`
	End   string `json:"end" binding:"required,hhmm"`
}

type dayAvailabilityRequest struct {
	Available bool              `json:"available"`
	TimeSlots []timeSlotRequest `json:"timeSlots" binding:"omitempty,dive"`
}

func (d dayAvailabilityRequest) model() models.DayAvailability {
	slots := make([]models.TimeSlot, 0, len(d.TimeSlots))
	for _, s := range d.TimeSlots {
		slots = append(slots, models.TimeSlot(s))
	}
	return models.DayAvailability{Available: d.Available, TimeSlots: slots}
}

type RoleRequest struct {
	Name             string  `json:"name" binding:"required,max=50"`
	Description      string  `json:"description" binding:"max=200"`
	MinStaffRequired int     `json:"minStaffRequired" binding:"min=0"`
	MaxStaffRequired int     `json:"maxStaffRequired" binding:"min=0"`
	HourlyRate       float64 `json:"hourlyRate" binding:"min=0"`
}

func (r RoleRequest) model() models.Role {
	return models.Role{
		Name:             r.Name,
		Description:      r.Description,
		MinStaffRequired: r.MinStaffRequired,
		MaxStaffRequired: r.MaxStaffRequired,
		HourlyRate:       r.HourlyRate,
	}
}

type ConstraintsRequest struct {
	MaxHoursPerDay    int `json:"maxHoursPerDay" binding:"min=1,max=24"`
	MaxHoursPerWeek   int `json:"maxHoursPerWeek" binding:"min=1,max=168"`
	MinBreakTime      int `json:"minBreakTime" binding:"min=0"`
	OvertimeThreshold int `json:"overtimeThreshold" binding:"min=0"`
}
