package dto

import (
	"github.com/shopspring/decimal"
)

// LenientAmount parses a monetary amount string, substituting zero for
// anything missing or non-numeric. This is a deliberate leniency policy
// carried over from the upstream data contract, not an oversight:
// dirty amounts degrade to zero instead of failing the whole request.
func LenientAmount(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
