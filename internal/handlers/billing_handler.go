package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workforce-scheduler/internal/usecase/business"
)

type BillingHandler struct {
	businesses *business.Service
	log        zerolog.Logger
}

func NewBillingHandler(businesses *business.Service, log zerolog.Logger) *BillingHandler {
	return &BillingHandler{businesses: businesses, log: log}
}

// paymentNotification is the webhook body; older notifications only use the query string.
type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Webhook acknowledges every notification it cannot act on so the gateway stops retrying.
func (h *BillingHandler) Webhook(c *gin.Context) {
	var body paymentNotification
	_ = c.ShouldBindJSON(&body)

	kind := firstNonEmpty(body.Type, c.Query("type"), c.Query("topic"))
	rawID := firstNonEmpty(body.Data.ID, c.Query("data.id"), c.Query("id"))

	if kind != "payment" || rawID == "" {
		httpresp.OKMessage(c, "Notification ignored", nil)
		return
	}

	paymentID, err := strconv.Atoi(rawID)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("invalid_payment_id", "Invalid payment id"))
		return
	}

	if err := h.businesses.HandlePayment(c.Request.Context(), paymentID); err != nil {
		h.log.Error().Err(err).Int("payment_id", paymentID).Msg("payment notification failed")
		httperr.Abort(c, err)
		return
	}

	httpresp.OKMessage(c, "Notification processed", nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
