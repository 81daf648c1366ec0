// Package stripecheckout implements the payment.CheckoutService interface
// against the Stripe API.
package stripecheckout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/haru235/flashcard-saas/internal/config"
	"github.com/haru235/flashcard-saas/internal/payment"
)

// Client implements payment.CheckoutService using the Stripe Go SDK.
type Client struct {
	api    *client.API
	cfg    config.StripeConfig
	logger *slog.Logger
}

// Ensure Client implements payment.CheckoutService
var _ payment.CheckoutService = (*Client)(nil)

// New creates a Stripe-backed checkout client.
// If logger is nil, a default logger will be used.
func New(cfg config.StripeConfig, logger *slog.Logger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Client{
		api:    api,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "stripe_checkout")),
	}, nil
}

// CreateSession implements payment.CheckoutService.CreateSession
// It builds a monthly-recurring card subscription line item for the selected
// plan and asks Stripe for a hosted checkout session. The session payload is
// returned verbatim as JSON.
func (c *Client) CreateSession(ctx context.Context, planToken, origin string) (json.RawMessage, error) {
	if origin == "" {
		origin = c.cfg.SiteOrigin
	}

	plan := payment.PlanFromToken(planToken)

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(plan.Name),
					},
					UnitAmount: stripe.Int64(payment.AmountMinorUnits(plan.Price)),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval:      stripe.String("month"),
						IntervalCount: stripe.Int64(1),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(origin + "/result?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(origin + "/"),
	}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to create checkout session",
			"error", err,
			"plan", plan.Name)
		return nil, wrapStripeError(err)
	}

	c.logger.InfoContext(ctx, "checkout session created",
		"session_id", session.ID,
		"plan", plan.Name)

	return marshalSession(session)
}

// RetrieveSession implements payment.CheckoutService.RetrieveSession
// It fetches an existing checkout session by ID and returns its payload
// verbatim as JSON.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to retrieve checkout session",
			"error", err,
			"session_id", sessionID)
		return nil, wrapStripeError(err)
	}

	return marshalSession(session)
}

// marshalSession encodes a session using the SDK's own JSON representation.
func marshalSession(session *stripe.CheckoutSession) (json.RawMessage, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout session: %w", err)
	}
	return payload, nil
}

// wrapStripeError converts an SDK error into a payment.ProcessorError,
// preserving Stripe's user-facing message when one is available.
func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return payment.NewProcessorError(stripeErr.Msg, err)
	}
	return payment.NewProcessorError(err.Error(), err)
}
