package model

import "github.com/shopspring/decimal"

// PriceBreakdown is the server-computed charge for one checkout attempt.
// MinorUnits is the exact amount sent to the payment gateway.
type PriceBreakdown struct {
	OriginalPrice  decimal.Decimal `json:"original_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	MinorUnits     int64           `json:"final_amount_minor_units"`
}
