package payment

import (
	"context"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.PaymentGateway = (*StripeGateway)(nil)

// StripeGateway implements the payment port against Stripe PaymentIntents.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Name() string { return "stripe" }

// EnsureCustomer looks up an existing customer by email before creating
// one, so repeat participants keep a single customer record.
func (g *StripeGateway) EnsureCustomer(ctx context.Context, info adapter.CustomerInfo) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(info.Email)}
	listParams.Context = ctx
	listParams.Filters.AddFilter("limit", "", "1")
	it := g.api.Customers.List(listParams)
	for it.Next() {
		return it.Customer().ID, nil
	}
	if err := it.Err(); err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}

	params := &stripe.CustomerParams{Email: stripe.String(info.Email)}
	params.Context = ctx
	if info.Name != "" {
		params.Name = stripe.String(info.Name)
	}
	if info.Phone != "" {
		params.Phone = stripe.String(info.Phone)
	}
	cus, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return cus.ID, nil
}

// CreateIntent creates a payment intent for the exact server-computed
// amount. Metadata is written verbatim; it is the audit trail read back
// at confirmation time, never recomputed.
func (g *StripeGateway) CreateIntent(ctx context.Context, req adapter.CreateIntentRequest) (*model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinorUnits),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}
	return toModel(pi), nil
}

// RetrieveIntent re-fetches the intent from Stripe. This is the only
// trusted source of intent state at confirmation time.
func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe retrieve intent %s: %w", id, err)
	}
	return toModel(pi), nil
}

func toModel(pi *stripe.PaymentIntent) *model.PaymentIntent {
	out := &model.PaymentIntent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
		Metadata:     pi.Metadata,
	}
	if pi.Customer != nil {
		out.CustomerID = pi.Customer.ID
	}
	return out
}
