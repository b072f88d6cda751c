package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"  // activity requires staff approval
	RegistrationStatusApproved RegistrationStatus = "approved" // auto-approved at creation
)

type RegistrationPaymentStatus string

const (
	RegistrationPaid RegistrationPaymentStatus = "paid"
)

// Registration records a reconciled, paid activity registration. It is
// created exactly once per verified payment intent; the unique index on
// PaymentIntentID is the idempotency boundary.
type Registration struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`

	ParticipantName  string `json:"participant_name"`
	ParticipantEmail string `json:"participant_email"`
	ParticipantPhone string `json:"participant_phone,omitempty"`

	Status        RegistrationStatus        `json:"status"`
	PaymentStatus RegistrationPaymentStatus `json:"payment_status"`

	PaymentIntentID string          `json:"payment_intent_id"`
	CustomerID      string          `json:"customer_id,omitempty"`
	PaidAmount      decimal.Decimal `json:"paid_amount"` // derived from the verified gateway amount
	Currency        string          `json:"currency"`
	PaymentDate     time.Time       `json:"payment_date"`

	// Discount audit trail, copied from the intent metadata at
	// reconciliation time.
	AppliedDiscountType       *string          `json:"applied_discount_type,omitempty"`
	AppliedDiscountPercentage *int             `json:"applied_discount_percentage,omitempty"`
	OriginalAmount            *decimal.Decimal `json:"original_amount,omitempty"`
	DiscountAmount            *decimal.Decimal `json:"discount_amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
