package business

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
)

var (
	ErrBillingDisabled = httperr.New(503, "billing_disabled", "Billing is not configured")
	ErrFreeCheckout    = httperr.ErrBusiness("free_plan_checkout", "The free plan does not require checkout")
)

type CheckoutRequest struct {
	BusinessID uuid.UUID
	Plan       Plan
	PayerEmail string
}

type Checkout struct {
	PreferenceID string  `json:"preferenceId"`
	CheckoutURL  string  `json:"checkoutUrl"`
	Plan         string  `json:"plan"`
	Amount       float64 `json:"amount"`
}

type Payment struct {
	ID                int
	Status            string
	ExternalReference string
}

// Approved reports whether the provider settled the payment.
func (p Payment) Approved() bool {
	return p.Status == "approved"
}

// Gateway is the payment provider.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, id int) (*Payment, error)
}

// ExternalReference ties a provider payment back to a business and plan.
func ExternalReference(businessID uuid.UUID, plan string) string {
	return businessID.String() + ":" + plan
}

func ParseExternalReference(ref string) (uuid.UUID, string, error) {
	id, plan, ok := strings.Cut(ref, ":")
	if !ok {
		return uuid.Nil, "", fmt.Errorf("billing: malformed reference %q", ref)
	}
	bid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("billing: malformed reference %q: %w", ref, err)
	}
	if _, ok := LookupPlan(plan); !ok {
		return uuid.Nil, "", fmt.Errorf("billing: unknown plan in reference %q", ref)
	}
	return bid, plan, nil
}
