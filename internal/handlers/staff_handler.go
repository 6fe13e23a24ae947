package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workforce-scheduler/internal/middleware"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
)

type StaffHandler struct {
	staff *staff.Service
}

func NewStaffHandler(s *staff.Service) *StaffHandler {
	return &StaffHandler{staff: s}
}

// ======================================================
// REQUESTS
// ======================================================

type preferencesRequest struct {
	MaxHoursPerWeek int      `json:"maxHoursPerWeek" binding:"omitempty,min=1,max=168"`
	MaxHoursPerDay  int      `json:"maxHoursPerDay" binding:"omitempty,min=1,max=24"`
	PreferredShifts []string `json:"preferredShifts" binding:"omitempty,dive,oneof=morning afternoon evening night"`
	MaxShiftsPerDay int      `json:"maxShiftsPerDay" binding:"omitempty,min=1,max=3"`
}

type StaffRequest struct {
	Name             *string                       `json:"name" binding:"omitempty,min=1,max=100"`
	Email            *string                       `json:"email" binding:"omitempty,email"`
	Phone            *string                       `json:"phone" binding:"omitempty,min=1,max=30"`
	AccountID        *string                       `json:"accountId" binding:"omitempty,uuid"`
	Roles            []string                      `json:"roles" binding:"omitempty,min=1,dive,required"`
	HourlyRate       *float64                      `json:"hourlyRate" binding:"omitempty,min=0"`
	Availability     *week[dayAvailabilityRequest] `json:"availability"`
	Preferences      *preferencesRequest           `json:"preferences"`
	EmergencyContact *models.EmergencyContact      `json:"emergencyContact"`
	HireDate         *string                       `json:"hireDate"`
	IsActive         *bool                         `json:"isActive"`
}

func (r StaffRequest) input() (staff.Input, error) {
	in := staff.Input{
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Roles:            r.Roles,
		HourlyRate:       r.HourlyRate,
		EmergencyContact: r.EmergencyContact,
		IsActive:         r.IsActive,
	}
	if r.AccountID != nil {
		id, err := uuid.Parse(*r.AccountID)
		if err != nil {
			return in, httperr.Validation([]httperr.FieldError{{Field: "accountId", Message: "accountId must be a valid id"}})
		}
		in.AccountID = &id
	}
	if r.Availability != nil {
		avail := mapWeek(*r.Availability, dayAvailabilityRequest.model)
		in.Availability = &avail
	}
	if r.Preferences != nil {
		prefs := domain.DefaultPreferences()
		if r.Preferences.MaxHoursPerWeek > 0 {
			prefs.MaxHoursPerWeek = r.Preferences.MaxHoursPerWeek
		}
		if r.Preferences.MaxHoursPerDay > 0 {
			prefs.MaxHoursPerDay = r.Preferences.MaxHoursPerDay
		}
		if r.Preferences.MaxShiftsPerDay > 0 {
			prefs.MaxShiftsPerDay = r.Preferences.MaxShiftsPerDay
		}
		if r.Preferences.PreferredShifts != nil {
			prefs.PreferredShifts = r.Preferences.PreferredShifts
		}
		in.Preferences = &prefs
	}
	if r.HireDate != nil {
		t, err := parseDate("hireDate", *r.HireDate)
		if err != nil {
			return in, err
		}
		in.HireDate = &t
	}
	return in, nil
}

func (r StaffRequest) missingOnCreate() []httperr.FieldError {
	var missing []httperr.FieldError
	if r.Name == nil || *r.Name == "" {
		missing = append(missing, httperr.FieldError{Field: "name", Message: "name is required"})
	}
	if r.Phone == nil || *r.Phone == "" {
		missing = append(missing, httperr.FieldError{Field: "phone", Message: "phone is required"})
	}
	if len(r.Roles) == 0 {
		missing = append(missing, httperr.FieldError{Field: "roles", Message: "roles must contain at least 1 item"})
	}
	return missing
}

type AvailabilityRequest struct {
	Availability week[dayAvailabilityRequest] `json:"availability" binding:"required"`
}

type TimeOffRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"max=200"`
}

type TimeOffDecisionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *StaffHandler) Create(c *gin.Context) {
	businessID, err := validators.ParseID(c, "businessId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}
	if missing := req.missingOnCreate(); len(missing) > 0 {
		httperr.Abort(c, httperr.Validation(missing))
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	st, err := h.staff.Create(c.Request.Context(), businessID, in, middleware.CurrentAccountID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, "Staff member created successfully", st)
}

// List defaults to active staff; pass active=false for former staff.
func (h *StaffHandler) List(c *gin.Context) {
	businessID, err := validators.ParseID(c, "businessId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}

	defaultActive := true
	active, err := optionalBool(c, "active", &defaultActive)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	items, total, err := h.staff.List(c.Request.Context(), domain.ListFilter{
		BusinessID: businessID,
		Role:       c.Query("role"),
		Active:     active,
		Search:     c.Query("search"),
	}, q.Offset(), q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, items, httpresp.NewPagination(q.Page, q.Limit, total))
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	st, err := h.staff.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, st)
}

func (h *StaffHandler) Me(c *gin.Context) {
	st, err := h.staff.ForAccount(c.Request.Context(), middleware.CurrentAccountID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, st)
}

// ======================================================
// UPDATE / DEACTIVATE
// ======================================================

func (h *StaffHandler) Update(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	st, err := h.staff.Update(c.Request.Context(), id, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Staff member updated successfully", st)
}

func (h *StaffHandler) UpdateAvailability(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.staff.UpdateAvailability(c.Request.Context(), id, mapWeek(req.Availability, dayAvailabilityRequest.model))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Availability updated successfully", st)
}

func (h *StaffHandler) Deactivate(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if err := h.staff.Deactivate(c.Request.Context(), id, middleware.CurrentAccountID(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Staff member deactivated successfully", nil)
}

// ======================================================
// TIME OFF
// ======================================================

func (h *StaffHandler) RequestTimeOff(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req TimeOffRequest
	if !bindJSON(c, &req) {
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	created, err := h.staff.RequestTimeOff(c.Request.Context(), id, middleware.CurrentAccount(c), staff.TimeOffInput{
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, "Time off request submitted successfully", created)
}

func (h *StaffHandler) DecideTimeOff(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	requestID, err := validators.ParseID(c, "requestId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req TimeOffDecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	decided, err := h.staff.DecideTimeOff(c.Request.Context(), id, requestID, req.Status, middleware.CurrentAccountID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Time off request "+req.Status, decided)
}
