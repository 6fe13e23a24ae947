package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/timezone"
)

var (
	ErrMonthlyLimitReached = httperr.ErrBusiness("schedule_limit_reached", "Monthly schedule limit reached for current subscription plan")
	ErrNoActiveStaff       = httperr.ErrBusiness("no_active_staff", "No active staff members found for this business")
)

type GenerateSchedule struct {
	schedules  domain.Repository
	staff      staff.Repository
	businesses business.Repository
	generator  domain.Generator
	audit      *audit.Dispatcher
	now        func() time.Time
}

func NewGenerateSchedule(
	schedules domain.Repository,
	staffRepo staff.Repository,
	businesses business.Repository,
	generator domain.Generator,
	audit *audit.Dispatcher,
) *GenerateSchedule {
	return &GenerateSchedule{
		schedules:  schedules,
		staff:      staffRepo,
		businesses: businesses,
		generator:  generator,
		audit:      audit,
		now:        time.Now,
	}
}

type GenerateInput struct {
	BusinessID   uuid.UUID
	Title        string
	Description  string
	WeekStart    time.Time
	WeekEnd      time.Time
	Requirements string
	CreatedBy    uuid.UUID
}

// Generation is the part of the generator's answer shown to the caller.
type Generation struct {
	Success         bool           `json:"success"`
	Error           string         `json:"error,omitempty"`
	Warnings        []string       `json:"warnings"`
	Recommendations []string       `json:"recommendations"`
	Reasoning       string         `json:"reasoning,omitempty"`
	Metrics         map[string]any `json:"metrics,omitempty"`
}

type GenerateOutput struct {
	Schedule   *models.Schedule `json:"schedule"`
	Generation Generation       `json:"generation"`
}

// Execute always persists a draft once the caps pass, even when generation fails.
func (uc *GenerateSchedule) Execute(
	ctx context.Context,
	in GenerateInput,
) (*GenerateOutput, error) {

	if err := domain.ValidateWeek(in.WeekStart, in.WeekEnd); err != nil {
		return nil, err
	}

	biz, err := uc.businesses.GetByID(ctx, in.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, business.ErrNotFound
		}
		return nil, err
	}

	from, to := timezone.MonthBounds(uc.now(), biz.Timezone)
	count, err := uc.schedules.CountCreatedBetween(ctx, biz.ID, from, to)
	if err != nil {
		return nil, err
	}
	if count >= int64(biz.Subscription.MaxSchedulesPerMonth) {
		return nil, ErrMonthlyLimitReached
	}

	active, err := uc.staff.ListActive(ctx, biz.ID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoActiveStaff
	}

	result := uc.generator.Generate(ctx, domain.GenerationRequest{
		Business:     *biz,
		Staff:        active,
		WeekStart:    in.WeekStart,
		WeekEnd:      in.WeekEnd,
		Requirements: in.Requirements,
	})

	shifts, dropped := domain.ToShifts(result.Shifts, active)
	warnings := append(append([]string{}, result.Warnings...), dropped...)
	warnings = append(warnings, staffWarnings(shifts, active)...)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("Schedule %s - %s", in.WeekStart.Format("2006-01-02"), in.WeekEnd.Format("2006-01-02"))
	}

	s := &models.Schedule{
		ID:                uuid.New(),
		BusinessID:        biz.ID,
		Title:             title,
		Description:       strings.TrimSpace(in.Description),
		WeekStartDate:     in.WeekStart,
		WeekEndDate:       in.WeekEnd,
		Shifts:            shifts,
		AIGenerated:       result.Success,
		AIPrompt:          result.Prompt,
		AIRecommendations: orEmpty(result.Recommendations),
		Status:            string(domain.InitialStatus()),
		Modifications:     []models.Modification{},
		CreatedBy:         in.CreatedBy,
	}

	if err := uc.schedules.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &biz.ID,
		AccountID:  &in.CreatedBy,
		Action:     "schedule_generated",
		Entity:     "schedule",
		EntityID:   &s.ID,
		Metadata:   map[string]any{"aiSuccess": result.Success, "shifts": len(shifts)},
	})

	return &GenerateOutput{
		Schedule: s,
		Generation: Generation{
			Success:         result.Success,
			Error:           result.Error,
			Warnings:        warnings,
			Recommendations: orEmpty(result.Recommendations),
			Reasoning:       result.Reasoning,
			Metrics:         result.Metrics,
		},
	}, nil
}

// staffWarnings flags shifts that land on approved time off or outside the
// declared availability. The shifts are kept.
func staffWarnings(shifts []models.Shift, active []models.Staff) []string {
	byID := make(map[uuid.UUID]*models.Staff, len(active))
	for i := range active {
		byID[active[i].ID] = &active[i]
	}

	var out []string
	for _, sh := range shifts {
		st, ok := byID[sh.StaffID]
		if !ok {
			continue
		}
		day := sh.Date.Format("2006-01-02")
		if staff.IsOff(st, sh.Date) {
			out = append(out, fmt.Sprintf("%s is on approved time off on %s", st.Name, day))
			continue
		}
		if staff.Declared(st) && !staff.IsAvailable(st, sh.Date, sh.StartTime, sh.EndTime) {
			out = append(out, fmt.Sprintf("%s is not available %s-%s on %s", st.Name, sh.StartTime, sh.EndTime, day))
		}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
