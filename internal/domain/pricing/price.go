package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// ComputePrice combines the activity's configuration, an optional
// customer-supplied amount (pay-what-you-want activities only) and the
// evaluated discount into the final charge.
//
// The customer amount is clamped inclusively to [MinPrice, MaxPrice] and
// falls back to the base price when absent. The discount amount is rounded
// half-up to the cent, so FinalPrice*100 is always integral and MinorUnits
// round-trips to FinalPrice exactly.
func ComputePrice(cfg model.PricingConfig, customAmount *decimal.Decimal, applied *model.AppliedDiscount) (model.PriceBreakdown, error) {
	if cfg.IsFree {
		return model.PriceBreakdown{}, domain.ErrFreeActivity
	}

	original := cfg.BasePrice
	if cfg.IsPriceRandom {
		amount := cfg.BasePrice
		if customAmount != nil {
			amount = *customAmount
		}
		original = clamp(amount, cfg.MinPrice, cfg.MaxPrice)
	}

	discount := decimal.Zero
	if applied != nil {
		pct := decimal.NewFromInt(int64(applied.Percentage))
		discount = original.Mul(pct).Div(hundred).Round(2)
	}

	final := original.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return model.PriceBreakdown{
		OriginalPrice:  original,
		DiscountAmount: discount,
		FinalPrice:     final,
		MinorUnits:     final.Mul(hundred).Round(0).IntPart(),
	}, nil
}

func clamp(v, min, max decimal.Decimal) decimal.Decimal {
	if v.LessThan(min) {
		return min
	}
	if max.IsPositive() && v.GreaterThan(max) {
		return max
	}
	return v
}
