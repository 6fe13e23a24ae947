package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	domainbiz "github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/ai"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/testfixtures"
)

type stubGenerator struct {
	result domain.GenerationResult
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, req domain.GenerationRequest) domain.GenerationResult {
	g.calls++
	return g.result
}

type stubArchiver struct {
	err   error
	calls int
}

func (a *stubArchiver) Archive(_ context.Context, s *models.Schedule) (string, error) {
	a.calls++
	return "schedules/" + s.ID.String() + ".json", a.err
}

type fixture struct {
	schedules *testfixtures.Schedules
	staff     *testfixtures.Staff
	biz       *models.Business
	member    *models.Staff
	ownerID   uuid.UUID
}

var (
	weekStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	weekEnd   = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
)

func newFixture(t *testing.T) (fixture, *testfixtures.Businesses) {
	t.Helper()
	businesses := testfixtures.NewBusinesses()
	f := fixture{
		schedules: testfixtures.NewSchedules(),
		staff:     testfixtures.NewStaff(),
		ownerID:   uuid.New(),
	}

	var hours models.Week[models.DayHours]
	hours.Set(time.Monday, models.DayHours{Start: "09:00", End: "17:00", IsOpen: true})

	f.biz = &models.Business{
		ID:            uuid.New(),
		Name:          "Cafe",
		OwnerID:       f.ownerID,
		Timezone:      "UTC",
		BusinessHours: datatypes.NewJSONType(hours),
		Constraints:   models.Constraints{MaxHoursPerDay: 8},
		IsActive:      true,
	}
	require.NoError(t, domainbiz.ApplyPlan(f.biz, models.PlanFree))
	require.NoError(t, businesses.Create(t.Context(), f.biz))

	var avail models.Week[models.DayAvailability]
	avail.Set(time.Monday, models.DayAvailability{Available: true, TimeSlots: []models.TimeSlot{{Start: "09:00", End: "17:00"}}})
	f.member = &models.Staff{
		ID:           uuid.New(),
		Name:         "Ana",
		Phone:        "555-0001",
		BusinessID:   f.biz.ID,
		Roles:        []string{"barista"},
		HourlyRate:   20,
		Availability: datatypes.NewJSONType(avail),
		IsActive:     true,
	}
	require.NoError(t, f.staff.Create(t.Context(), f.member))

	return f, businesses
}

func (f fixture) generate(t *testing.T, businesses *testfixtures.Businesses, gen domain.Generator) (*GenerateOutput, error) {
	t.Helper()
	uc := NewGenerateSchedule(f.schedules, f.staff, businesses, gen, nil)
	return uc.Execute(t.Context(), GenerateInput{
		BusinessID: f.biz.ID,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		CreatedBy:  f.ownerID,
	})
}

func TestGenerateWithUnreachableAIPersistsEmptyDraft(t *testing.T) {
	f, businesses := newFixture(t)
	client := ai.NewClient(config.AIConfig{
		BaseURL: "http://127.0.0.1:1",
		APIKey:  "key",
		Timeout: time.Second,
	}, zerolog.Nop())

	out, err := f.generate(t, businesses, client)
	require.NoError(t, err)

	assert.False(t, out.Generation.Success)
	assert.NotEmpty(t, out.Generation.Error)
	assert.Contains(t, out.Generation.Warnings, domain.UnavailableWarning)
	assert.Empty(t, out.Schedule.Shifts)
	assert.Equal(t, string(domain.StatusDraft), out.Schedule.Status)
	assert.False(t, out.Schedule.AIGenerated)
	assert.Equal(t, "Schedule 2025-03-03 - 2025-03-09", out.Schedule.Title)

	stored, err := f.schedules.GetByID(t.Context(), out.Schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.TotalCost)
}

func TestGenerateConvertsProposals(t *testing.T) {
	f, businesses := newFixture(t)
	gen := &stubGenerator{result: domain.GenerationResult{
		Success: true,
		Shifts: []domain.ProposedShift{
			{StaffID: f.member.ID.String(), Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00", BreakTime: 30},
			{StaffID: uuid.NewString(), Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00"},
		},
		Recommendations: []string{"Hire a weekend barista"},
	}}

	out, err := f.generate(t, businesses, gen)
	require.NoError(t, err)

	require.Len(t, out.Schedule.Shifts, 1)
	sh := out.Schedule.Shifts[0]
	assert.Equal(t, "barista", sh.Role)
	assert.Equal(t, 20.0, sh.HourlyRate)
	assert.Equal(t, 480, sh.Duration)
	assert.Equal(t, 150.0, sh.TotalPay)
	assert.Equal(t, 150.0, out.Schedule.TotalCost)
	assert.Equal(t, 8.0, out.Schedule.Metrics.TotalHours)
	assert.True(t, out.Schedule.AIGenerated)
	assert.Len(t, out.Generation.Warnings, 1, "unknown staff proposal dropped with a warning")
}

func TestGenerateWarnsOutsideAvailability(t *testing.T) {
	f, businesses := newFixture(t)
	gen := &stubGenerator{result: domain.GenerationResult{
		Success: true,
		Shifts: []domain.ProposedShift{
			{StaffID: f.member.ID.String(), Date: "2025-03-04", StartTime: "09:00", EndTime: "17:00"},
		},
	}}

	out, err := f.generate(t, businesses, gen)
	require.NoError(t, err)

	require.Len(t, out.Schedule.Shifts, 1, "shift is kept")
	assert.Equal(t, []string{"Ana is not available 09:00-17:00 on 2025-03-04"}, out.Generation.Warnings)
}

func TestGenerateEnforcesMonthlyCap(t *testing.T) {
	f, businesses := newFixture(t)
	f.biz.Subscription.MaxSchedulesPerMonth = 2
	require.NoError(t, businesses.Update(t.Context(), f.biz))

	for i := 0; i < 2; i++ {
		f.schedules.Put(models.Schedule{ID: uuid.New(), BusinessID: f.biz.ID, CreatedAt: time.Now()})
	}
	// Last month's schedules do not count.
	f.schedules.Put(models.Schedule{ID: uuid.New(), BusinessID: f.biz.ID, CreatedAt: time.Now().AddDate(0, -2, 0)})

	gen := &stubGenerator{result: domain.Fallback("", errors.New("x"))}
	_, err := f.generate(t, businesses, gen)
	assert.ErrorIs(t, err, ErrMonthlyLimitReached)
	assert.Zero(t, gen.calls)
	assert.Equal(t, 3, f.schedules.Count())
}

func TestGenerateRequiresActiveStaff(t *testing.T) {
	f, businesses := newFixture(t)
	f.member.IsActive = false
	require.NoError(t, f.staff.Update(t.Context(), f.member))

	_, err := f.generate(t, businesses, &stubGenerator{})
	assert.ErrorIs(t, err, ErrNoActiveStaff)
}

func TestGenerateRejectsInvertedWeek(t *testing.T) {
	f, businesses := newFixture(t)
	uc := NewGenerateSchedule(f.schedules, f.staff, businesses, &stubGenerator{}, nil)
	_, err := uc.Execute(t.Context(), GenerateInput{BusinessID: f.biz.ID, WeekStart: weekEnd, WeekEnd: weekStart})
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)
}

func seedDraft(t *testing.T, f fixture) *models.Schedule {
	t.Helper()
	s := &models.Schedule{
		ID:            uuid.New(),
		BusinessID:    f.biz.ID,
		Title:         "Week 10",
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		Status:        string(domain.StatusDraft),
		Shifts: []models.Shift{{
			ID: uuid.New(), StaffID: f.member.ID, Date: weekStart,
			StartTime: "09:00", EndTime: "13:00", HourlyRate: 20,
		}},
	}
	require.NoError(t, f.schedules.Create(t.Context(), s))
	return s
}

func TestPublishedScheduleCannotBeDeleted(t *testing.T) {
	f, _ := newFixture(t)
	draft := seedDraft(t, f)
	other := seedDraft(t, f)

	archiver := &stubArchiver{err: errors.New("bucket missing")}
	published, err := NewPublishSchedule(f.schedules, archiver, nil, zerolog.Nop()).Execute(t.Context(), draft.ID, f.ownerID)
	require.NoError(t, err, "snapshot failure does not fail publish")
	assert.Equal(t, 1, archiver.calls)
	assert.NotNil(t, published.PublishedAt)

	_, err = NewPublishSchedule(f.schedules, nil, nil, zerolog.Nop()).Execute(t.Context(), draft.ID, f.ownerID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPublished)

	del := NewDeleteSchedule(f.schedules, nil)
	assert.ErrorIs(t, del.Execute(t.Context(), draft.ID, f.ownerID), domain.ErrDeletePublished)
	assert.NoError(t, del.Execute(t.Context(), other.ID, f.ownerID))
	assert.ErrorIs(t, del.Execute(t.Context(), other.ID, f.ownerID), domain.ErrNotFound)
}

func TestUpdateRecalculatesAndLogs(t *testing.T) {
	f, _ := newFixture(t)
	s := seedDraft(t, f)
	assert.Equal(t, 80.0, s.TotalCost)

	shifts := []models.Shift(s.Shifts)
	shifts[0].EndTime = "17:00"
	shifts[0].Duration = 0
	title := "Week 10 (final)"

	updated, err := NewUpdateSchedule(f.schedules, nil).Execute(t.Context(), s.ID, domain.Update{
		Title:  &title,
		Shifts: &shifts,
	}, f.ownerID, "extend Monday")
	require.NoError(t, err)

	assert.Equal(t, 160.0, updated.TotalCost)
	assert.Equal(t, 8.0, updated.Metrics.TotalHours)
	require.Len(t, updated.Modifications, 1)
	assert.Equal(t, "extend Monday", updated.Modifications[0].Reason)
	assert.Len(t, updated.Modifications[0].Changes, 2)

	again, err := NewUpdateSchedule(f.schedules, nil).Execute(t.Context(), s.ID, domain.Update{Title: &title}, f.ownerID, "")
	require.NoError(t, err)
	assert.Len(t, again.Modifications, 1, "no-op update leaves the log alone")
}

func TestStaffSeesOnlyPublishedOwnShifts(t *testing.T) {
	f, _ := newFixture(t)
	draft := seedDraft(t, f)
	pub := seedDraft(t, f)
	pub.Shifts = append(pub.Shifts, models.Shift{ID: uuid.New(), StaffID: uuid.New(), Date: weekStart, StartTime: "09:00", EndTime: "12:00"})
	pub.Status = string(domain.StatusPublished)
	require.NoError(t, f.schedules.Update(t.Context(), pub))

	uc := NewListStaffSchedules(f.schedules)
	items, total, err := uc.Execute(t.Context(), domain.StaffFilter{StaffID: f.member.ID}, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, pub.ID, items[0].ID)
	assert.NotEqual(t, draft.ID, items[0].ID)
	require.Len(t, items[0].Shifts, 1)
	assert.Equal(t, f.member.ID, items[0].Shifts[0].StaffID)

	from := weekStart
	to := weekStart.AddDate(0, 0, 6)
	items, total, err = uc.Execute(t.Context(), domain.StaffFilter{StaffID: f.member.ID, From: &from, To: &to}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)

	later := weekStart.AddDate(0, 0, 7)
	items, total, err = uc.Execute(t.Context(), domain.StaffFilter{StaffID: f.member.ID, From: &later}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	earlier := weekStart.AddDate(0, 0, -1)
	_, total, err = uc.Execute(t.Context(), domain.StaffFilter{StaffID: f.member.ID, To: &earlier}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	f, _ := newFixture(t)
	_, _, err := NewListSchedules(f.schedules).Execute(t.Context(), domain.ListFilter{BusinessID: f.biz.ID, Status: "bogus"}, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
