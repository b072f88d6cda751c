package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingConfig is the read-only pricing configuration of an activity.
// It is managed by the wider parks platform; this service only reads it.
// Discount percentages are integers in [0,100]; 0 means "not offered".
type PricingConfig struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	IsFree        bool            `json:"is_free"`
	IsPriceRandom bool            `json:"is_price_random"`
	MinPrice      decimal.Decimal `json:"min_price"`
	MaxPrice      decimal.Decimal `json:"max_price"`

	DiscountSeniors    int `json:"discount_seniors"`
	DiscountStudents   int `json:"discount_students"`
	DiscountFamilies   int `json:"discount_families"`
	DiscountDisability int `json:"discount_disability"`
	DiscountEarlyBird  int `json:"discount_early_bird"`

	EarlyBirdDeadline *time.Time `json:"early_bird_deadline,omitempty"`

	RequiresApproval bool `json:"requires_approval"`
}

// Activity is a catalog entry for a park activity a participant can
// register for. Location/schedule fields feed the confirmation email.
type Activity struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	ParkName string        `json:"park_name"`
	Location string        `json:"location"`
	StartsAt *time.Time    `json:"starts_at,omitempty"`
	Pricing  PricingConfig `json:"pricing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
