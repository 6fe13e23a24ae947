package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workforce-scheduler/internal/middleware"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	generateUC  *schedule.GenerateSchedule
	getUC       *schedule.GetSchedule
	listUC      *schedule.ListSchedules
	listStaffUC *schedule.ListStaffSchedules
	updateUC    *schedule.UpdateSchedule
	publishUC   *schedule.PublishSchedule
	deleteUC    *schedule.DeleteSchedule
}

func NewScheduleHandler(
	generateUC *schedule.GenerateSchedule,
	getUC *schedule.GetSchedule,
	listUC *schedule.ListSchedules,
	listStaffUC *schedule.ListStaffSchedules,
	updateUC *schedule.UpdateSchedule,
	publishUC *schedule.PublishSchedule,
	deleteUC *schedule.DeleteSchedule,
) *ScheduleHandler {
	return &ScheduleHandler{
		generateUC:  generateUC,
		getUC:       getUC,
		listUC:      listUC,
		listStaffUC: listStaffUC,
		updateUC:    updateUC,
		publishUC:   publishUC,
		deleteUC:    deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type GenerateScheduleRequest struct {
	Title         string `json:"title" binding:"max=100"`
	Description   string `json:"description" binding:"max=500"`
	WeekStartDate string `json:"weekStartDate" binding:"required"`
	WeekEndDate   string `json:"weekEndDate" binding:"required"`
	Requirements  string `json:"requirements" binding:"max=2000"`
}

type ShiftRequest struct {
	ID         string  `json:"id" binding:"omitempty,uuid"`
	StaffID    string  `json:"staffId" binding:"required,uuid"`
	Role       string  `json:"role" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"startTime" binding:"required,hhmm"`
	EndTime    string  `json:"endTime" binding:"required,hhmm"`
	Duration   int     `json:"duration" binding:"min=0"`
	BreakTime  int     `json:"breakTime" binding:"min=0"`
	HourlyRate float64 `json:"hourlyRate" binding:"min=0"`
	Notes      string  `json:"notes" binding:"max=200"`
	Status     string  `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled no_show"`
	IsOvertime bool    `json:"isOvertime"`
}

func (r ShiftRequest) model(i int) (models.Shift, error) {
	date, err := parseDate("shifts["+strconv.Itoa(i)+"].date", r.Date)
	if err != nil {
		return models.Shift{}, err
	}

	sh := models.Shift{
		StaffID:    uuid.MustParse(r.StaffID),
		Role:       r.Role,
		Date:       date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Duration:   r.Duration,
		BreakTime:  r.BreakTime,
		HourlyRate: r.HourlyRate,
		Notes:      r.Notes,
		Status:     r.Status,
		IsOvertime: r.IsOvertime,
	}
	if r.ID != "" {
		sh.ID = uuid.MustParse(r.ID)
	}
	if sh.Status == "" {
		sh.Status = domain.ShiftScheduled
	}
	if sh.Duration == 0 {
		if minutes, ok := domain.ShiftMinutes(sh.StartTime, sh.EndTime); ok {
			sh.Duration = minutes
		}
	}
	return sh, nil
}

type UpdateScheduleRequest struct {
	Title         *string         `json:"title" binding:"omitempty,min=1,max=100"`
	Description   *string         `json:"description" binding:"omitempty,max=500"`
	WeekStartDate *string         `json:"weekStartDate"`
	WeekEndDate   *string         `json:"weekEndDate"`
	Shifts        *[]ShiftRequest `json:"shifts" binding:"omitempty,dive"`
	Status        *string         `json:"status" binding:"omitempty,oneof=draft published completed archived"`
	Reason        string          `json:"reason" binding:"max=200"`
}

func (r UpdateScheduleRequest) update() (domain.Update, error) {
	u := domain.Update{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
	if r.WeekStartDate != nil {
		t, err := parseDate("weekStartDate", *r.WeekStartDate)
		if err != nil {
			return u, err
		}
		u.WeekStartDate = &t
	}
	if r.WeekEndDate != nil {
		t, err := parseDate("weekEndDate", *r.WeekEndDate)
		if err != nil {
			return u, err
		}
		u.WeekEndDate = &t
	}
	if r.Shifts != nil {
		shifts := make([]models.Shift, 0, len(*r.Shifts))
		for i, req := range *r.Shifts {
			sh, err := req.model(i)
			if err != nil {
				return u, err
			}
			shifts = append(shifts, sh)
		}
		u.Shifts = &shifts
	}
	return u, nil
}

// ======================================================
// GENERATE
// ======================================================

// Generate answers 200 even when the generator fell back to an empty draft.
func (h *ScheduleHandler) Generate(c *gin.Context) {
	businessID, err := validators.ParseID(c, "businessId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req GenerateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	start, err := parseDate("weekStartDate", req.WeekStartDate)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	end, err := parseDate("weekEndDate", req.WeekEndDate)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	out, err := h.generateUC.Execute(c.Request.Context(), schedule.GenerateInput{
		BusinessID:   businessID,
		Title:        req.Title,
		Description:  req.Description,
		WeekStart:    start,
		WeekEnd:      end,
		Requirements: req.Requirements,
		CreatedBy:    middleware.CurrentAccountID(c),
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	msg := "Schedule generated"
	if !out.Generation.Success {
		msg = "Fallback schedule generated"
	}
	httpresp.OKMessage(c, msg, out)
}

// ======================================================
// READ
// ======================================================

func (h *ScheduleHandler) List(c *gin.Context) {
	businessID, err := validators.ParseID(c, "businessId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}

	from, err := optionalDate(c, "startDate")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	to, err := optionalDate(c, "endDate")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	items, total, err := h.listUC.Execute(c.Request.Context(), domain.ListFilter{
		BusinessID: businessID,
		Status:     c.Query("status"),
		From:       from,
		To:         to,
	}, q.Offset(), q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, items, httpresp.NewPagination(q.Page, q.Limit, total))
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	s, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ScheduleHandler) ForStaff(c *gin.Context) {
	staffID, err := validators.ParseID(c, "staffId")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}

	from, err := optionalDate(c, "startDate")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	to, err := optionalDate(c, "endDate")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	items, total, err := h.listStaffUC.Execute(c.Request.Context(), domain.StaffFilter{
		StaffID: staffID,
		From:    from,
		To:      to,
	}, q.Offset(), q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, items, httpresp.NewPagination(q.Page, q.Limit, total))
}

// ======================================================
// WRITE
// ======================================================

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var req UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := req.update()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	s, err := h.updateUC.Execute(c.Request.Context(), id, u, middleware.CurrentAccountID(c), req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Schedule updated", s)
}

func (h *ScheduleHandler) Publish(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	s, err := h.publishUC.Execute(c.Request.Context(), id, middleware.CurrentAccountID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Schedule published", s)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, middleware.CurrentAccountID(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OKMessage(c, "Schedule deleted", nil)
}
