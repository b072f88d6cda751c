package adapter

import (
	"context"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

// CustomerInfo identifies the paying participant at the gateway.
type CustomerInfo struct {
	Email string
	Name  string
	Phone string
}

// CreateIntentRequest carries the server-computed amount and the audit
// metadata written verbatim onto the intent.
type CreateIntentRequest struct {
	AmountMinorUnits int64
	Currency         string
	CustomerID       string
	ReceiptEmail     string
	Description      string
	Metadata         map[string]string
}

// PaymentGateway is the hex port for the payment provider.
type PaymentGateway interface {
	Name() string

	// EnsureCustomer looks up a gateway customer by email, creating one if
	// absent. Callers treat failure as non-fatal: checkout proceeds without
	// a customer reference.
	EnsureCustomer(ctx context.Context, info CustomerInfo) (customerID string, err error)

	// CreateIntent creates a payment intent for the exact computed amount.
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error)

	// RetrieveIntent re-fetches the intent from the gateway. This is the
	// only source of trusted intent data at confirmation time.
	RetrieveIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
}
