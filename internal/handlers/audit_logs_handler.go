package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs audit.Reader
}

func NewAuditLogsHandler(logs audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	businessID, err := validators.ParseID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	q, ok := bindPage(c)
	if !ok {
		return
	}

	// --------------------------------------------------
	// Optional filters, always scoped to the business
	// --------------------------------------------------

	from, err := optionalDate(c, "from")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	logs, total, err := h.logs.List(c.Request.Context(), audit.Filter{
		BusinessID: businessID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		From:       from,
		To:         to,
	}, q.Offset(), q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, logs, httpresp.NewPagination(q.Page, q.Limit, total))
}
