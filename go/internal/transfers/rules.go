package transfers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultRosterFloor         = 15
	DefaultRosterCeiling       = 25
	DefaultMaxPurchaseAttempts = 5
	DefaultRetryBaseDelay      = 25 * time.Millisecond
)

// DefaultPriceFactor is the share of the asking price that changes hands on a purchase.
var DefaultPriceFactor = decimal.RequireFromString("0.95")

// MarketRules holds the roster bounds and pricing applied to every trade.
type MarketRules struct {
	// A team may only list a player while its roster is larger than RosterFloor.
	RosterFloor int
	// A team may only buy while its roster is smaller than RosterCeiling.
	RosterCeiling       int
	PriceFactor         decimal.Decimal
	MaxPurchaseAttempts int
	RetryBaseDelay      time.Duration
}

func DefaultMarketRules() MarketRules {
	return MarketRules{
		RosterFloor:         DefaultRosterFloor,
		RosterCeiling:       DefaultRosterCeiling,
		PriceFactor:         DefaultPriceFactor,
		MaxPurchaseAttempts: DefaultMaxPurchaseAttempts,
		RetryBaseDelay:      DefaultRetryBaseDelay,
	}
}

// Validate checks the rules are usable.
func (r MarketRules) Validate() error {
	if r.RosterFloor < 0 {
		return fmt.Errorf("roster floor must not be negative, got %d", r.RosterFloor)
	}
	if r.RosterCeiling <= r.RosterFloor {
		return fmt.Errorf("roster ceiling %d must exceed roster floor %d", r.RosterCeiling, r.RosterFloor)
	}
	if !r.PriceFactor.IsPositive() || r.PriceFactor.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("price factor must be in (0, 1], got %s", r.PriceFactor)
	}
	if r.MaxPurchaseAttempts < 1 {
		return fmt.Errorf("max purchase attempts must be at least 1, got %d", r.MaxPurchaseAttempts)
	}
	if r.RetryBaseDelay < 0 {
		return fmt.Errorf("retry base delay must not be negative, got %s", r.RetryBaseDelay)
	}
	return nil
}

// PurchasePrice is the amount debited from the buyer and credited to the seller.
func (r MarketRules) PurchasePrice(askingPrice decimal.Decimal) decimal.Decimal {
	return askingPrice.Mul(r.PriceFactor)
}

// validateAskingPrice accepts positive amounts with at most two decimal places.
func validateAskingPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return rejected(RuleInvalidPrice, "asking price must be greater than zero")
	}
	if !price.Equal(price.Round(2)) {
		return rejected(RuleInvalidPrice, "asking price must have at most two decimal places")
	}
	return nil
}
