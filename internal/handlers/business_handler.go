package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workforce-scheduler/internal/middleware"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BusinessHandler struct {
	businesses *business.Service
}

func NewBusinessHandler(businesses *business.Service) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// ======================================================
// REQUESTS
// ======================================================

type BusinessRequest struct {
	Name          *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string                `json:"description" binding:"omitempty,max=500"`
	Address       *models.Address        `json:"address"`
	Phone         *string                `json:"phone" binding:"omitempty,max=30"`
	Email         *string                `json:"email" binding:"omitempty,email"`
	BusinessHours *week[dayHoursRequest] `json:"businessHours"`
	Roles         []RoleRequest          `json:"roles" binding:"omitempty,dive"`
	Constraints   *ConstraintsRequest    `json:"constraints"`
	Timezone      *string                `json:"timezone"`
	Currency      *string                `json:"currency" binding:"omitempty,oneof=USD EUR GBP CAD AUD"`
}

func (r BusinessRequest) input() business.Input {
	in := business.Input{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		Timezone:    r.Timezone,
		Currency:    r.Currency,
	}
	if r.BusinessHours != nil {
		hours := mapWeek(*r.BusinessHours, dayHoursRequest.model)
		in.BusinessHours = &hours
	}
	if r.Constraints != nil {
		cons := models.Constraints(*r.Constraints)
		in.Constraints = &cons
	}
	for _, role := range r.Roles {
		in.Roles = append(in.Roles, role.model())
	}
	return in
}

type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required,oneof=basic premium"`
}

type SetPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free basic premium"`
}

// ======================================================
// CRUD
// ======================================================

func (h *BusinessHandler) Create(c *gin.Context) {
	var req BusinessRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" {
		httperr.Abort(c, httperr.Validation([]httperr.FieldError{{Field: "name", Message: "name is required"}}))
		return
	}

	b, err := h.businesses.Create(c.Request.Context(), middleware.CurrentAccount(c), req.input())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.Created(c, "Business created successfully", b)
}

// Mine returns the caller's own business, or their employer for staff accounts.
func (h *BusinessHandler) Mine(c *gin.Context) {
	b, err := h.businesses.Mine(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	b, err := h.businesses.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req BusinessRequest
	if !bindJSON(c, &req) {
		return
	}
	in := req.input()
	// Roles have their own endpoints.
	in.Roles = nil

	b, err := h.businesses.Update(c.Request.Context(), id, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Business updated successfully", b)
}

// List is the admin view of every business.
func (h *BusinessHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	active, err := optionalBool(c, "active", nil)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	items, total, err := h.businesses.List(c.Request.Context(), domain.ListFilter{
		Search: c.Query("search"),
		Active: active,
	}, q.Offset(), q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, items, httpresp.NewPagination(q.Page, q.Limit, total))
}

// ======================================================
// ROLES
// ======================================================

func (h *BusinessHandler) AddRole(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.businesses.AddRole(c.Request.Context(), id, req.model())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, "Role added successfully", b)
}

func (h *BusinessHandler) UpdateRole(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	roleID, err := validators.ParseID(c, "roleId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.businesses.UpdateRole(c.Request.Context(), id, roleID, req.model())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Role updated successfully", b)
}

func (h *BusinessHandler) RemoveRole(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	roleID, err := validators.ParseID(c, "roleId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	b, err := h.businesses.RemoveRole(c.Request.Context(), id, roleID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Role removed successfully", b)
}

// ======================================================
// STATS / SUBSCRIPTION
// ======================================================

func (h *BusinessHandler) Stats(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	stats, err := h.businesses.Stats(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *BusinessHandler) Checkout(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	checkout, err := h.businesses.Checkout(c.Request.Context(), id, req.Plan, middleware.CurrentAccount(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, "Checkout created", checkout)
}

// SetPlan lets an admin move a business between plans without a payment.
func (h *BusinessHandler) SetPlan(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req SetPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.businesses.SetPlan(c.Request.Context(), id, req.Plan)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Subscription updated", b)
}
