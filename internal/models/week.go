package models

import "time"

// Week holds one value per weekday, serialized as {"monday": ..., "sunday": ...}.
type Week[T any] struct {
	Monday    T `json:"monday"`
	Tuesday   T `json:"tuesday"`
	Wednesday T `json:"wednesday"`
	Thursday  T `json:"thursday"`
	Friday    T `json:"friday"`
	Saturday  T `json:"saturday"`
	Sunday    T `json:"sunday"`
}

// WeekdayNames lists the json keys in display order (monday first).
var WeekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (w Week[T]) Day(wd time.Weekday) T {
	return *w.slot(wd)
}

func (w *Week[T]) Set(wd time.Weekday, v T) {
	*w.slot(wd) = v
}

// Each visits the days monday to sunday.
func (w Week[T]) Each(fn func(name string, wd time.Weekday, v T)) {
	for i, name := range WeekdayNames {
		wd := time.Weekday((i + 1) % 7)
		fn(name, wd, w.Day(wd))
	}
}

func (w *Week[T]) slot(wd time.Weekday) *T {
	switch wd {
	case time.Monday:
		return &w.Monday
	case time.Tuesday:
		return &w.Tuesday
	case time.Wednesday:
		return &w.Wednesday
	case time.Thursday:
		return &w.Thursday
	case time.Friday:
		return &w.Friday
	case time.Saturday:
		return &w.Saturday
	default:
		return &w.Sunday
	}
}

type DayHours struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	IsOpen bool   `json:"isOpen"`
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayAvailability struct {
	Available bool       `json:"available"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}
