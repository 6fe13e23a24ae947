// Package billing creates subscription checkouts with Mercado Pago.
package billing

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/BruksfildServices01/workforce-scheduler/internal/config"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
)

var _ business.Gateway = (*MercadoPago)(nil)

type MercadoPago struct {
	preferences     preference.Client
	payments        payment.Client
	notificationURL string
	backURL         string
	currency        string
}

func NewMercadoPago(cfg appconfig.BillingConfig) (*MercadoPago, error) {
	mp, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("billing: configure mercadopago: %w", err)
	}

	return &MercadoPago{
		preferences:     preference.NewClient(mp),
		payments:        payment.NewClient(mp),
		notificationURL: cfg.NotificationURL,
		backURL:         cfg.BackURL,
		currency:        "BRL",
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, req business.CheckoutRequest) (*business.Checkout, error) {
	pref := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         req.Plan.Name,
				Title:      fmt.Sprintf("Workforce Scheduler - %s plan", req.Plan.Name),
				Quantity:   1,
				UnitPrice:  req.Plan.MonthlyPrice,
				CurrencyID: m.currency,
			},
		},
		ExternalReference: business.ExternalReference(req.BusinessID, req.Plan.Name),
		NotificationURL:   m.notificationURL,
		BackURLs: &preference.BackURLsRequest{
			Success: m.backURL,
			Pending: m.backURL,
			Failure: m.backURL,
		},
	}
	if req.PayerEmail != "" {
		pref.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	res, err := m.preferences.Create(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("billing: create preference: %w", err)
	}

	return &business.Checkout{
		PreferenceID: res.ID,
		CheckoutURL:  res.InitPoint,
		Plan:         req.Plan.Name,
		Amount:       req.Plan.MonthlyPrice,
	}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id int) (*business.Payment, error) {
	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing: get payment %d: %w", id, err)
	}
	return &business.Payment{
		ID:                res.ID,
		Status:            res.Status,
		ExternalReference: res.ExternalReference,
	}, nil
}
