package model

// DiscountCode is the client-selected discount segment. The code itself is
// untrusted input; the percentage is always taken from the activity's own
// pricing configuration, never from the client.
type DiscountCode string

const (
	DiscountNone       DiscountCode = "none"
	DiscountSeniors    DiscountCode = "seniors"
	DiscountStudents   DiscountCode = "students"
	DiscountFamilies   DiscountCode = "families"
	DiscountDisability DiscountCode = "disability"
	DiscountEarlyBird  DiscountCode = "early_bird"
)

// AppliedDiscount is the server-authoritative result of evaluating a
// discount code against an activity's configuration.
type AppliedDiscount struct {
	Type       DiscountCode `json:"type"`
	Label      string       `json:"label"`
	Percentage int          `json:"percentage"`
}

// DiscountLabel returns the fixed human-readable label for a code.
func DiscountLabel(code DiscountCode) string {
	switch code {
	case DiscountSeniors:
		return "Seniors discount"
	case DiscountStudents:
		return "Students discount"
	case DiscountFamilies:
		return "Families discount"
	case DiscountDisability:
		return "Disability discount"
	case DiscountEarlyBird:
		return "Early bird discount"
	default:
		return ""
	}
}
