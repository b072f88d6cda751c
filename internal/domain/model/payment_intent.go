package model

import "strconv"

// Gateway intent statuses this flow cares about. The gateway owns the
// status field and transitions it asynchronously.
const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
)

// Metadata keys embedded in every payment intent at creation time. They
// form the tamper-evident audit trail read back during reconciliation.
const (
	MetaActivityID         = "activityId"
	MetaActivityTitle      = "activityTitle"
	MetaDiscountType       = "discount_type"
	MetaDiscountPercentage = "discount_percentage"
	MetaOriginalPrice      = "original_price"
	MetaFinalPrice         = "final_price"
	MetaDiscountAmount     = "discount_amount"
)

// PaymentIntent is a verified snapshot of a gateway-side intent. Values of
// this type are only obtainable through the gateway adapter (create or
// retrieve); client-reported intent data never deserializes into it.
type PaymentIntent struct {
	ID           string
	Amount       int64 // minor currency units
	Currency     string
	Status       string
	CustomerID   string
	ClientSecret string
	Metadata     map[string]string
}

// BuildIntentMetadata assembles the audit metadata for intent creation.
// Prices are rendered with two decimals; a missing discount is recorded
// explicitly as "none" / "0" so the trail is always complete.
func BuildIntentMetadata(activityID, activityTitle string, breakdown PriceBreakdown, applied *AppliedDiscount) map[string]string {
	meta := map[string]string{
		MetaActivityID:         activityID,
		MetaActivityTitle:      activityTitle,
		MetaDiscountType:       string(DiscountNone),
		MetaDiscountPercentage: "0",
		MetaOriginalPrice:      breakdown.OriginalPrice.StringFixed(2),
		MetaFinalPrice:         breakdown.FinalPrice.StringFixed(2),
		MetaDiscountAmount:     breakdown.DiscountAmount.StringFixed(2),
	}
	if applied != nil {
		meta[MetaDiscountType] = string(applied.Type)
		meta[MetaDiscountPercentage] = strconv.Itoa(applied.Percentage)
	}
	return meta
}
