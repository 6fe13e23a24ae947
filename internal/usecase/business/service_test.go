package business

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/testfixtures"
)

type fakeGateway struct {
	checkouts []domain.CheckoutRequest
	payment   domain.Payment
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req domain.CheckoutRequest) (*domain.Checkout, error) {
	g.checkouts = append(g.checkouts, req)
	return &domain.Checkout{PreferenceID: "pref-1", CheckoutURL: "https://pay.test/pref-1", Plan: req.Plan.Name, Amount: req.Plan.MonthlyPrice}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id int) (*domain.Payment, error) {
	p := g.payment
	p.ID = id
	return &p, nil
}

type fixture struct {
	svc      *Service
	accounts *testfixtures.Accounts
	staff    *testfixtures.Staff
	gateway  *fakeGateway
	owner    *models.Account
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		accounts: testfixtures.NewAccounts(),
		staff:    testfixtures.NewStaff(),
		gateway:  &fakeGateway{},
	}
	f.svc = NewService(testfixtures.NewBusinesses(), f.accounts, f.staff, testfixtures.NewSchedules(), f.gateway, nil, zerolog.Nop())

	f.owner = &models.Account{ID: uuid.New(), Email: "owner@example.com", Role: models.RoleOwner, IsActive: true}
	require.NoError(t, f.accounts.Create(t.Context(), f.owner))
	return f
}

func ptr[T any](v T) *T { return &v }

func TestCreateLinksOwnerAndKeepsRolesVerbatim(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.Create(t.Context(), f.owner, Input{
		Name:  ptr("Corner Cafe"),
		Roles: []models.Role{{Name: "Cashier", MinStaffRequired: 1, MaxStaffRequired: 3, HourlyRate: 15}},
	})
	require.NoError(t, err)

	got, err := f.svc.Get(t.Context(), b.ID)
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)
	r := got.Roles[0]
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "Cashier", r.Name)
	assert.Equal(t, 1, r.MinStaffRequired)
	assert.Equal(t, 3, r.MaxStaffRequired)
	assert.Equal(t, 15.0, r.HourlyRate)

	assert.Equal(t, models.PlanFree, got.Subscription.Plan)
	assert.Equal(t, 5, got.Subscription.MaxStaff)
	assert.Equal(t, "America/New_York", got.Timezone)

	owner, _ := f.accounts.GetByID(t.Context(), f.owner.ID)
	require.NotNil(t, owner.BusinessID)
	assert.Equal(t, b.ID, *owner.BusinessID)

	_, err = f.svc.Create(t.Context(), owner, Input{Name: ptr("Second")})
	assert.ErrorIs(t, err, ErrAlreadyOwnsBusiness)
}

func TestAdminCreateKeepsAccountUnbound(t *testing.T) {
	f := newFixture(t)
	admin := &models.Account{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, f.accounts.Create(t.Context(), admin))

	first, err := f.svc.Create(t.Context(), admin, Input{Name: ptr("First")})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, first.OwnerID)

	stored, err := f.accounts.GetByID(t.Context(), admin.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.BusinessID)

	_, err = f.svc.Create(t.Context(), stored, Input{Name: ptr("Second")})
	assert.NoError(t, err)
}

func TestCreateRejectsUnknownTimezone(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(t.Context(), f.owner, Input{Name: ptr("X"), Timezone: ptr("Mars/Olympus")})
	assert.Error(t, err)
}

func TestUpdateLeavesOmittedFieldsAlone(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Create(t.Context(), f.owner, Input{Name: ptr("Cafe"), Phone: ptr("555-0100")})
	require.NoError(t, err)

	updated, err := f.svc.Update(t.Context(), b.ID, Input{Description: ptr("Best coffee")})
	require.NoError(t, err)

	assert.Equal(t, "Cafe", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Best coffee", updated.Description)
	assert.Equal(t, f.owner.ID, updated.OwnerID)
}

func TestRoleEndpointsAddressRolesByID(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Create(t.Context(), f.owner, Input{Name: ptr("Cafe")})
	require.NoError(t, err)

	b, err = f.svc.AddRole(t.Context(), b.ID, models.Role{Name: "Barista", MinStaffRequired: 1, MaxStaffRequired: 2})
	require.NoError(t, err)
	roleID := b.Roles[0].ID

	b, err = f.svc.UpdateRole(t.Context(), b.ID, roleID, models.Role{Name: "Head Barista", MinStaffRequired: 1, MaxStaffRequired: 1})
	require.NoError(t, err)
	assert.Equal(t, roleID, b.Roles[0].ID)
	assert.Equal(t, "Head Barista", b.Roles[0].Name)

	_, err = f.svc.RemoveRole(t.Context(), b.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)

	b, err = f.svc.RemoveRole(t.Context(), b.ID, roleID)
	require.NoError(t, err)
	assert.Empty(t, b.Roles)
}

func TestGetMissingBusiness(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(t.Context(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Mine(t.Context(), &models.Account{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrNoBusiness)
}

func TestStatsCountsQuota(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Create(t.Context(), f.owner, Input{Name: ptr("Cafe")})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, f.staff.Create(t.Context(), &models.Staff{
			ID: uuid.New(), BusinessID: b.ID, Phone: uuid.NewString(), IsActive: true,
			TimeOffRequests: []models.TimeOffRequest{{ID: uuid.New(), Status: models.TimeOffPending}},
		}))
	}

	st, err := f.svc.Stats(t.Context(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.ActiveStaff)
	assert.Equal(t, int64(3), st.RemainingStaff)
	assert.Equal(t, int64(10), st.RemainingSchedules)
	assert.Equal(t, 2, st.PendingTimeOff)
}

func TestCheckoutAndApprovedPaymentUpgradePlan(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Create(t.Context(), f.owner, Input{Name: ptr("Cafe")})
	require.NoError(t, err)

	_, err = f.svc.Checkout(t.Context(), b.ID, models.PlanFree, f.owner)
	assert.ErrorIs(t, err, domain.ErrFreeCheckout)

	c, err := f.svc.Checkout(t.Context(), b.ID, models.PlanPremium, f.owner)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/pref-1", c.CheckoutURL)
	require.Len(t, f.gateway.checkouts, 1)
	assert.Equal(t, "owner@example.com", f.gateway.checkouts[0].PayerEmail)

	f.gateway.payment = domain.Payment{Status: "pending", ExternalReference: domain.ExternalReference(b.ID, models.PlanPremium)}
	require.NoError(t, f.svc.HandlePayment(t.Context(), 42))
	got, _ := f.svc.Get(t.Context(), b.ID)
	assert.Equal(t, models.PlanFree, got.Subscription.Plan)

	f.gateway.payment.Status = "approved"
	require.NoError(t, f.svc.HandlePayment(t.Context(), 42))
	got, _ = f.svc.Get(t.Context(), b.ID)
	assert.Equal(t, models.PlanPremium, got.Subscription.Plan)
	assert.Equal(t, 100, got.Subscription.MaxStaff)
	assert.Equal(t, 200, got.Subscription.MaxSchedulesPerMonth)
}

func TestCheckoutWithoutGateway(t *testing.T) {
	svc := NewService(testfixtures.NewBusinesses(), testfixtures.NewAccounts(), testfixtures.NewStaff(), testfixtures.NewSchedules(), nil, nil, zerolog.Nop())
	_, err := svc.Checkout(t.Context(), uuid.New(), models.PlanBasic, &models.Account{})
	assert.ErrorIs(t, err, domain.ErrBillingDisabled)
}
