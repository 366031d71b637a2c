package models

import "errors"

// PricingPlan holds the fare parameters for cost computation. It is injected
// into the cost calculator and transit estimator as a plain value so that fare
// changes and test fixtures never require code changes.
type PricingPlan struct {
	ClassicFreeMinutes           int `json:"classic_free_minutes"`
	ClassicOverageCentsPerMinute int `json:"classic_overage_cents_per_minute"`
	EbikeCentsPerMinute          int `json:"ebike_cents_per_minute"`
	// EbikeMaxBilledMinutes caps billing for rides that were never properly
	// ended (a stuck ride is billed up to the cap and no further).
	EbikeMaxBilledMinutes int `json:"ebike_max_billed_minutes"`
	TransitFlatFareCents  int `json:"transit_flat_fare_cents"`
}

// DefaultPricingPlan returns the standard member plan.
func DefaultPricingPlan() PricingPlan {
	return PricingPlan{
		ClassicFreeMinutes:           45,
		ClassicOverageCentsPerMinute: 30,
		EbikeCentsPerMinute:          26,
		EbikeMaxBilledMinutes:        1440,
		TransitFlatFareCents:         290,
	}
}

// Validate checks that every field required for billing is present.
func (p PricingPlan) Validate() error {
	switch {
	case p.ClassicFreeMinutes <= 0:
		return errors.New("ClassicFreeMinutes must be greater than 0")
	case p.ClassicOverageCentsPerMinute <= 0:
		return errors.New("ClassicOverageCentsPerMinute must be greater than 0")
	case p.EbikeCentsPerMinute <= 0:
		return errors.New("EbikeCentsPerMinute must be greater than 0")
	case p.TransitFlatFareCents <= 0:
		return errors.New("TransitFlatFareCents must be greater than 0")
	}
	return nil
}
