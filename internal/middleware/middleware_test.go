package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/workforce-scheduler/internal/auth"
	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/testfixtures"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testTokens() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		AccessSecret:  "middleware-access-secret-for-tests",
		RefreshSecret: "middleware-refresh-secret-for-tests",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "workforce-planner",
		Audience:      "workforce-planner-users",
	})
}

func seedAccount(t *testing.T, repo *testfixtures.Accounts, role string, businessID *uuid.UUID, active bool) *models.Account {
	t.Helper()
	a := &models.Account{
		ID:         uuid.New(),
		Name:       "Test " + role,
		Email:      uuid.NewString() + "@example.com",
		Role:       role,
		BusinessID: businessID,
		IsActive:   active,
	}
	require.NoError(t, repo.Create(t.Context(), a))
	return a
}

func bearer(t *testing.T, tokens *auth.TokenService, a *models.Account) string {
	t.Helper()
	token, err := tokens.GenerateAccessToken(a.ID, a.Email, a.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httperr.Body {
	t.Helper()
	var body httperr.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func serve(r *gin.Engine, method, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "userId": CurrentAccountID(c)})
}

// ======================================================
// Protect / Authorize
// ======================================================

func TestProtect(t *testing.T) {
	tokens := testTokens()
	accounts := testfixtures.NewAccounts()
	active := seedAccount(t, accounts, models.RoleOwner, nil, true)
	inactive := seedAccount(t, accounts, models.RoleOwner, nil, false)
	ghost := &models.Account{ID: uuid.New(), Email: "ghost@example.com", Role: models.RoleOwner}

	r := gin.New()
	r.GET("/me", Protect(tokens, accounts), ok)

	tests := []struct {
		name    string
		authz   string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Not authorized to access this route"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Not authorized to access this route"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "Not authorized to access this route"},
		{"unknown account", bearer(t, tokens, ghost), http.StatusUnauthorized, "No user found with this token"},
		{"deactivated", bearer(t, tokens, inactive), http.StatusUnauthorized, "User account is deactivated"},
		{"valid", bearer(t, tokens, active), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/me", tt.authz)
			assert.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				body := decode(t, w)
				assert.False(t, body.Success)
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestProtectRejectsRefreshToken(t *testing.T) {
	tokens := testTokens()
	accounts := testfixtures.NewAccounts()
	a := seedAccount(t, accounts, models.RoleOwner, nil, true)

	refresh, _, err := tokens.GenerateRefreshToken(a.ID)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Protect(tokens, accounts), ok)

	w := serve(r, http.MethodGet, "/me", "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize(t *testing.T) {
	tokens := testTokens()
	accounts := testfixtures.NewAccounts()
	owner := seedAccount(t, accounts, models.RoleOwner, nil, true)
	staffAcc := seedAccount(t, accounts, models.RoleStaff, nil, true)

	r := gin.New()
	r.GET("/owners", Protect(tokens, accounts), Authorize(models.RoleOwner, models.RoleAdmin), ok)

	w := serve(r, http.MethodGet, "/owners", bearer(t, tokens, owner))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/owners", bearer(t, tokens, staffAcc))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User role staff is not authorized to access this route", decode(t, w).Message)
}

// ======================================================
// Business access
// ======================================================

func TestAuthorizeBusinessOwner(t *testing.T) {
	tokens := testTokens()
	accounts := testfixtures.NewAccounts()

	mine, other := uuid.New(), uuid.New()
	owner := seedAccount(t, accounts, models.RoleOwner, &mine, true)
	admin := seedAccount(t, accounts, models.RoleAdmin, nil, true)
	staffAcc := seedAccount(t, accounts, models.RoleStaff, &mine, true)

	r := gin.New()
	r.GET("/businesses/:businessId", Protect(tokens, accounts), AuthorizeBusinessOwner(FromParam("businessId")), ok)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/businesses/"+mine.String(), bearer(t, tokens, owner)).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/businesses/"+other.String(), bearer(t, tokens, admin)).Code)

	w := serve(r, http.MethodGet, "/businesses/"+other.String(), bearer(t, tokens, owner))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to access this business", decode(t, w).Message)

	w = serve(r, http.MethodGet, "/businesses/"+mine.String(), bearer(t, tokens, staffAcc))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodGet, "/businesses/not-a-uuid", bearer(t, tokens, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorizeStaffAccessResolvesThroughRecords(t *testing.T) {
	tokens := testTokens()
	accounts := testfixtures.NewAccounts()
	staffRepo := testfixtures.NewStaff()
	schedules := testfixtures.NewSchedules()

	biz := uuid.New()
	member := &models.Staff{ID: uuid.New(), BusinessID: biz, Name: "Ana", Phone: "555-0100", IsActive: true}
	require.NoError(t, staffRepo.Create(t.Context(), member))

	sched := &models.Schedule{
		ID:            uuid.New(),
		BusinessID:    biz,
		Title:         "Week",
		WeekStartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		WeekEndDate:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		Status:        "draft",
	}
	require.NoError(t, schedules.Create(t.Context(), sched))

	elsewhere := uuid.New()
	insider := seedAccount(t, accounts, models.RoleStaff, &biz, true)
	outsider := seedAccount(t, accounts, models.RoleOwner, &elsewhere, true)

	r := gin.New()
	protect := Protect(tokens, accounts)
	r.GET("/staff/:id", protect, AuthorizeStaffAccess(FromStaff(staffRepo, "id")), ok)
	r.GET("/schedules/:id", protect, AuthorizeStaffAccess(FromSchedule(schedules, "id")), ok)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/staff/"+member.ID.String(), bearer(t, tokens, insider)).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/schedules/"+sched.ID.String(), bearer(t, tokens, insider)).Code)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/staff/"+member.ID.String(), bearer(t, tokens, outsider)).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/schedules/"+sched.ID.String(), bearer(t, tokens, outsider)).Code)

	w := serve(r, http.MethodGet, "/staff/"+uuid.NewString(), bearer(t, tokens, insider))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Staff member not found", decode(t, w).Message)

	w = serve(r, http.MethodGet, "/schedules/"+uuid.NewString(), bearer(t, tokens, insider))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Schedule not found", decode(t, w).Message)
}

// ======================================================
// Rate limit
// ======================================================

type countingStore struct {
	counts map[string]int64
	err    error
}

func (s *countingStore) Hit(_ context.Context, key string, _ time.Duration) (int64, time.Duration, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	s.counts[key]++
	return s.counts[key], 30 * time.Second, nil
}

func TestRateLimit(t *testing.T) {
	store := &countingStore{counts: map[string]int64{}}

	r := gin.New()
	r.GET("/api", RateLimit(store, 2, time.Minute, zerolog.Nop()), ok)

	for i := range 2 {
		w := serve(r, http.MethodGet, "/api", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("RateLimit-Limit"))
		assert.Equal(t, []string{"1", "0"}[i], w.Header().Get("RateLimit-Remaining"))
	}

	w := serve(r, http.MethodGet, "/api", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests from this IP, please try again later.", decode(t, w).Message)
}

func TestRateLimitFailsOpen(t *testing.T) {
	store := &countingStore{err: errors.New("redis down")}

	r := gin.New()
	r.GET("/api", RateLimit(store, 1, time.Minute, zerolog.Nop()), ok)

	for range 3 {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api", "").Code)
	}
}

// ======================================================
// Headers, CORS, errors
// ======================================================

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/", SecurityHeaders(false), ok)

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	r = gin.New()
	r.GET("/", SecurityHeaders(true), ok)
	w = serve(r, http.MethodGet, "/", "")
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.GET("/", ok)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zerolog.Nop()), Recovery(zerolog.Nop()))
	r.GET("/missing", func(c *gin.Context) {
		httperr.Abort(c, httperr.NotFound("schedule_not_found", "Schedule not found"))
	})
	r.GET("/boom", func(c *gin.Context) {
		httperr.Abort(c, errors.New("db exploded"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	w := serve(r, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Schedule not found", decode(t, w).Message)

	w = serve(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Server Error", body.Message)
	assert.NotContains(t, w.Body.String(), "db exploded")

	w = serve(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
