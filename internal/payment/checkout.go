package payment

import (
	"context"
	"encoding/json"
	"math"
)

// Plan tokens accepted by the checkout endpoint. Anything that is not
// PlanPro is treated as PlanBasic, matching the web client's behavior.
const (
	PlanPro   = "pro"
	PlanBasic = "basic"
)

// Plan describes one subscription offering: a display name and a monthly
// price in whole currency units (USD).
type Plan struct {
	Name  string
	Price float64
}

// PlanFromToken maps a plan token to its subscription plan.
// "pro" selects the Pro plan; every other token, including the empty
// string, selects Basic.
func PlanFromToken(token string) Plan {
	if token == PlanPro {
		return Plan{Name: "Pro Subscription", Price: 10}
	}
	return Plan{Name: "Basic Subscription", Price: 5}
}

// AmountMinorUnits converts a price in whole currency units to minor
// units (cents) the way the payment processor expects: multiplied by 100
// and rounded.
func AmountMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CheckoutService defines the interface to the payment processor's hosted
// checkout flow. Session payloads pass through as raw JSON so callers can
// return the processor's representation verbatim.
type CheckoutService interface {
	// CreateSession creates a hosted checkout session for the plan selected
	// by planToken. Redirect URLs are built from origin.
	// Returns a ProcessorError if the processor rejects the request.
	CreateSession(ctx context.Context, planToken, origin string) (json.RawMessage, error)

	// RetrieveSession fetches an existing checkout session by its ID.
	// Returns a ProcessorError if the session does not exist or the
	// processor call fails.
	RetrieveSession(ctx context.Context, sessionID string) (json.RawMessage, error)
}
