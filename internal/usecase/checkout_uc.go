package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
	"github.com/Antonio1491/parksys-sub000/internal/domain/pricing"
	"github.com/Antonio1491/parksys-sub000/internal/infra/logging"
	"github.com/Antonio1491/parksys-sub000/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutRequest is untrusted client input. CustomAmount is only honored
// for pay-what-you-want activities and is clamped server-side; no other
// client-supplied amount participates in pricing.
type CheckoutRequest struct {
	Customer         adapter.CustomerInfo
	SelectedDiscount model.DiscountCode
	CustomAmount     *decimal.Decimal
}

// CheckoutResult is everything the client needs to complete payment with
// the gateway directly.
type CheckoutResult struct {
	ClientSecret     string
	PaymentIntentID  string
	CustomerID       string
	AmountMinorUnits int64
	Currency         string
	AppliedDiscount  *model.AppliedDiscount
	Breakdown        model.PriceBreakdown
}

type CheckoutUseCase interface {
	// CreateIntent evaluates the discount, computes the final price and
	// creates a gateway payment intent carrying the audit metadata.
	CreateIntent(ctx context.Context, activityID string, req CheckoutRequest) (*CheckoutResult, error)
}

type checkoutUC struct {
	activities repository.ActivityRepository
	gateway    adapter.PaymentGateway
	currency   string
	now        func() time.Time
	log        *zerolog.Logger
}

func NewCheckoutUseCase(activities repository.ActivityRepository, gateway adapter.PaymentGateway, currency string, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{
		activities: activities,
		gateway:    gateway,
		currency:   currency,
		now:        time.Now,
		log:        logger,
	}
}

func (u *checkoutUC) CreateIntent(ctx context.Context, activityID string, req CheckoutRequest) (*CheckoutResult, error) {
	defer logging.TraceDuration(u.log, "CheckoutUC.CreateIntent")()

	act, err := u.activities.FindByID(ctx, nil, activityID)
	if err != nil {
		return nil, err
	}
	if act.Pricing.IsFree {
		metrics.IncCheckout("rejected", "free_activity")
		return nil, domain.ErrFreeActivity
	}

	applied, err := pricing.EvaluateDiscount(act.Pricing, req.SelectedDiscount, u.now())
	if err != nil {
		metrics.IncCheckout("rejected", discountRejectReason(err))
		return nil, err
	}

	breakdown, err := pricing.ComputePrice(act.Pricing, req.CustomAmount, applied)
	if err != nil {
		return nil, err
	}

	// Best effort: a missing customer reference must not abort checkout.
	customerID := ""
	if req.Customer.Email != "" {
		customerID, err = u.gateway.EnsureCustomer(ctx, req.Customer)
		if err != nil {
			u.log.Warn().Err(err).
				Str("email", logging.Redact(req.Customer.Email, false)).
				Msg("gateway customer lookup failed; continuing without customer")
			customerID = ""
		}
	}

	intent, err := u.gateway.CreateIntent(ctx, adapter.CreateIntentRequest{
		AmountMinorUnits: breakdown.MinorUnits,
		Currency:         u.currency,
		CustomerID:       customerID,
		ReceiptEmail:     req.Customer.Email,
		Description:      fmt.Sprintf("Registration: %s", act.Title),
		Metadata:         model.BuildIntentMetadata(act.ID, act.Title, breakdown, applied),
	})
	if err != nil {
		metrics.IncCheckout("error", "gateway")
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	metrics.IncCheckout("created", "ok")
	metrics.IncPayment("initiated")
	if applied != nil {
		metrics.IncDiscountApplied(string(applied.Type))
	}
	u.log.Info().
		Str("activity_id", act.ID).
		Str("intent_id", intent.ID).
		Int64("amount", breakdown.MinorUnits).
		Msg("payment intent created")

	return &CheckoutResult{
		ClientSecret:     intent.ClientSecret,
		PaymentIntentID:  intent.ID,
		CustomerID:       customerID,
		AmountMinorUnits: intent.Amount,
		Currency:         u.currency,
		AppliedDiscount:  applied,
		Breakdown:        breakdown,
	}, nil
}

func discountRejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDiscountExpired):
		return "discount_expired"
	case errors.Is(err, domain.ErrDiscountNotAvailable):
		return "discount_not_available"
	case errors.Is(err, domain.ErrInvalidDiscount):
		return "invalid_discount"
	default:
		return "unknown"
	}
}
