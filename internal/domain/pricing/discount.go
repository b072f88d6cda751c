// Package pricing holds the pure discount and price policy. Both entry
// points are functions of their inputs plus an explicit clock so the
// policy can be tested without touching a database or the wall clock.
package pricing

import (
	"time"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

// EvaluateDiscount decides whether the selected discount applies to the
// activity and at what percentage. Returns (nil, nil) when no discount was
// selected. A configured percentage of 0 means the segment is not offered,
// never a silent 0% "success".
func EvaluateDiscount(cfg model.PricingConfig, code model.DiscountCode, now time.Time) (*model.AppliedDiscount, error) {
	switch code {
	case "", model.DiscountNone:
		return nil, nil

	case model.DiscountSeniors, model.DiscountStudents, model.DiscountFamilies, model.DiscountDisability:
		pct := segmentPercentage(cfg, code)
		if pct <= 0 {
			return nil, domain.ErrDiscountNotAvailable
		}
		return &model.AppliedDiscount{Type: code, Label: model.DiscountLabel(code), Percentage: pct}, nil

	case model.DiscountEarlyBird:
		if cfg.DiscountEarlyBird <= 0 || cfg.EarlyBirdDeadline == nil {
			return nil, domain.ErrDiscountNotAvailable
		}
		// Inclusive deadline: the discount is valid through the deadline instant.
		if now.After(*cfg.EarlyBirdDeadline) {
			return nil, domain.ErrDiscountExpired
		}
		return &model.AppliedDiscount{Type: code, Label: model.DiscountLabel(code), Percentage: cfg.DiscountEarlyBird}, nil

	default:
		return nil, domain.ErrInvalidDiscount
	}
}

func segmentPercentage(cfg model.PricingConfig, code model.DiscountCode) int {
	switch code {
	case model.DiscountSeniors:
		return cfg.DiscountSeniors
	case model.DiscountStudents:
		return cfg.DiscountStudents
	case model.DiscountFamilies:
		return cfg.DiscountFamilies
	case model.DiscountDisability:
		return cfg.DiscountDisability
	default:
		return 0
	}
}
