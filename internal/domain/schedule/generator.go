package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

const (
	UnavailableWarning     = "AI currently unavailable."
	FallbackRecommendation = "Fallback schedule generated. Review required."
)

// Generator proposes shifts for a week. Implementations never return an error:
// every failure is reported as a GenerationResult with Success false.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) GenerationResult
}

type GenerationRequest struct {
	Business     models.Business
	Staff        []models.Staff
	WeekStart    time.Time
	WeekEnd      time.Time
	Requirements string
}

// ProposedShift is one assignment as returned by the generator, before it is trusted.
type ProposedShift struct {
	StaffID    string  `json:"staffId"`
	Role       string  `json:"role"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Duration   int     `json:"duration"`
	BreakTime  int     `json:"breakTime"`
	HourlyRate float64 `json:"hourlyRate"`
	IsOvertime bool    `json:"isOvertime"`
	Notes      string  `json:"notes"`
}

type GenerationResult struct {
	Success         bool
	Shifts          []ProposedShift
	Recommendations []string
	Warnings        []string
	Metrics         map[string]any
	Reasoning       string
	Prompt          string
	Error           string
}

// Fallback is the result used whenever generation fails: no shifts and a fixed warning.
func Fallback(prompt string, err error) GenerationResult {
	msg := "schedule generation failed"
	if err != nil {
		msg = err.Error()
	}
	return GenerationResult{
		Success:         false,
		Shifts:          []ProposedShift{},
		Recommendations: []string{FallbackRecommendation},
		Warnings:        []string{UnavailableWarning},
		Prompt:          prompt,
		Error:           msg,
	}
}

// ToShifts converts proposals into shifts for the given staff.
// Proposals naming unknown staff or unreadable dates/times are dropped with a warning.
func ToShifts(proposals []ProposedShift, staff []models.Staff) ([]models.Shift, []string) {
	byID := make(map[uuid.UUID]models.Staff, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	shifts := make([]models.Shift, 0, len(proposals))
	var warnings []string

	for i, p := range proposals {
		staffID, err := uuid.Parse(strings.TrimSpace(p.StaffID))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Shift %d dropped: unknown staff id %q", i+1, p.StaffID))
			continue
		}
		member, ok := byID[staffID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Shift %d dropped: staff %s is not active in this business", i+1, p.StaffID))
			continue
		}

		date, err := parseDate(p.Date)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Shift %d dropped: invalid date %q", i+1, p.Date))
			continue
		}

		if _, ok := ShiftMinutes(p.StartTime, p.EndTime); !ok {
			warnings = append(warnings, fmt.Sprintf("Shift %d dropped: invalid time range %q-%q", i+1, p.StartTime, p.EndTime))
			continue
		}

		rate := p.HourlyRate
		if rate <= 0 {
			rate = member.HourlyRate
		}

		role := p.Role
		if role == "" && len(member.Roles) > 0 {
			role = member.Roles[0]
		}

		shifts = append(shifts, models.Shift{
			ID:         uuid.New(),
			StaffID:    staffID,
			Role:       role,
			Date:       date,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Duration:   p.Duration,
			BreakTime:  p.BreakTime,
			HourlyRate: rate,
			Notes:      p.Notes,
			Status:     ShiftScheduled,
			IsOvertime: p.IsOvertime,
		})
	}

	return shifts, warnings
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
