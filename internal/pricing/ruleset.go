package pricing

import (
	"fmt"

	"github.com/nharmon/slicehaus-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// Ruleset carries the promotional constants the engine evaluates against.
// Amounts are whole currency units.
type Ruleset struct {
	DeliveryFeeCents           int
	FreeDeliveryThresholdCents int
	FreeDessertThresholdCents  int
	BundleDiscountCents        int
	WingsPairRate              decimal.Decimal
}

// DefaultRuleset returns the production defaults.
func DefaultRuleset() Ruleset {
	return Ruleset{
		DeliveryFeeCents:           150,
		FreeDeliveryThresholdCents: 4500,
		FreeDessertThresholdCents:  6500,
		BundleDiscountCents:        350,
		WingsPairRate:              decimal.NewFromFloat(0.2),
	}
}

// FromConfig builds a Ruleset from environment configuration.
func FromConfig(cfg config.PricingConfig) (Ruleset, error) {
	rate, err := decimal.NewFromString(cfg.WingsPairRate)
	if err != nil {
		return Ruleset{}, fmt.Errorf("parsing wings pair rate %q: %w", cfg.WingsPairRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Ruleset{}, fmt.Errorf("wings pair rate %s out of range [0,1]", rate)
	}
	if cfg.DeliveryFee < 0 || cfg.FreeDeliveryThreshold < 0 || cfg.FreeDessertThreshold < 0 || cfg.BundleDiscount < 0 {
		return Ruleset{}, fmt.Errorf("pricing amounts must be non-negative")
	}
	return Ruleset{
		DeliveryFeeCents:           cfg.DeliveryFee,
		FreeDeliveryThresholdCents: cfg.FreeDeliveryThreshold,
		FreeDessertThresholdCents:  cfg.FreeDessertThreshold,
		BundleDiscountCents:        cfg.BundleDiscount,
		WingsPairRate:              rate,
	}, nil
}
