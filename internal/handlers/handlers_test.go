package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/middleware"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/testfixtures"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/business"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ======================================================
// Request conversion
// ======================================================

func TestShiftRequestFillsDefaults(t *testing.T) {
	staffID := uuid.New()
	sh, err := ShiftRequest{
		StaffID:   staffID.String(),
		Role:      "barista",
		Date:      "2026-03-02",
		StartTime: "22:00",
		EndTime:   "06:00",
	}.model(0)
	require.NoError(t, err)

	assert.Equal(t, staffID, sh.StaffID)
	assert.Equal(t, "scheduled", sh.Status)
	assert.Equal(t, 480, sh.Duration)
	assert.Equal(t, uuid.Nil, sh.ID)
}

func TestShiftRequestRejectsBadDate(t *testing.T) {
	_, err := ShiftRequest{StaffID: uuid.NewString(), Date: "03/02/2026", StartTime: "09:00", EndTime: "17:00"}.model(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed")
}

func TestStaffRequestInput(t *testing.T) {
	name, hire, account := "Ana", "2026-01-15", uuid.NewString()
	in, err := StaffRequest{
		Name:        &name,
		AccountID:   &account,
		HireDate:    &hire,
		Preferences: &preferencesRequest{MaxShiftsPerDay: 2},
		Availability: &week[dayAvailabilityRequest]{
			Monday: dayAvailabilityRequest{Available: true, TimeSlots: []timeSlotRequest{{Start: "09:00", End: "12:00"}}},
		},
	}.input()
	require.NoError(t, err)

	assert.Equal(t, account, in.AccountID.String())
	assert.Equal(t, 2026, in.HireDate.Year())
	assert.Equal(t, 2, in.Preferences.MaxShiftsPerDay)
	assert.Equal(t, 40, in.Preferences.MaxHoursPerWeek)
	assert.True(t, in.Availability.Monday.Available)
	assert.Equal(t, []models.TimeSlot{{Start: "09:00", End: "12:00"}}, in.Availability.Monday.TimeSlots)
	assert.Empty(t, in.Availability.Sunday.TimeSlots)
}

func TestStaffRequestMissingOnCreate(t *testing.T) {
	missing := StaffRequest{}.missingOnCreate()
	fields := make([]string, 0, len(missing))
	for _, m := range missing {
		fields = append(fields, m.Field)
	}
	assert.ElementsMatch(t, []string{"name", "phone", "roles"}, fields)
}

// ======================================================
// Billing webhook
// ======================================================

type stubGateway struct {
	payment domain.Payment
	calls   int
}

func (g *stubGateway) CreateCheckout(context.Context, domain.CheckoutRequest) (*domain.Checkout, error) {
	return &domain.Checkout{}, nil
}

func (g *stubGateway) GetPayment(_ context.Context, id int) (*domain.Payment, error) {
	g.calls++
	p := g.payment
	p.ID = id
	return &p, nil
}

func webhookRouter(t *testing.T, gateway *stubGateway) (*gin.Engine, *testfixtures.Businesses, uuid.UUID) {
	t.Helper()

	businesses := testfixtures.NewBusinesses()
	biz := &models.Business{ID: uuid.New(), Name: "Cafe", Timezone: "UTC", Currency: "USD", IsActive: true}
	require.NoError(t, domain.ApplyPlan(biz, models.PlanFree))
	require.NoError(t, businesses.Create(t.Context(), biz))

	svc := business.NewService(
		businesses,
		testfixtures.NewAccounts(),
		testfixtures.NewStaff(),
		testfixtures.NewSchedules(),
		gateway,
		nil,
		zerolog.Nop(),
	)

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()))
	r.POST("/billing/webhook", NewBillingHandler(svc, zerolog.Nop()).Webhook)
	return r, businesses, biz.ID
}

func TestWebhookUpgradesOnApprovedPayment(t *testing.T) {
	gateway := &stubGateway{}
	r, businesses, id := webhookRouter(t, gateway)
	gateway.payment = domain.Payment{Status: "approved", ExternalReference: domain.ExternalReference(id, models.PlanPremium)}

	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewBufferString(`{"type":"payment","data":{"id":"42"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	biz, err := businesses.GetByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPremium, biz.Subscription.Plan)
	assert.Equal(t, 100, biz.Subscription.MaxStaff)
}

func TestWebhookIgnoresOtherTopics(t *testing.T) {
	gateway := &stubGateway{}
	r, _, _ := webhookRouter(t, gateway)

	req := httptest.NewRequest(http.MethodPost, "/billing/webhook?topic=merchant_order&id=7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, gateway.calls)
}

func TestWebhookRejectsNonNumericID(t *testing.T) {
	r, _, _ := webhookRouter(t, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/billing/webhook?type=payment&data.id=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
