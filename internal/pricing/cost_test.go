package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

func TestClassicCost(t *testing.T) {
	plan := models.DefaultPricingPlan()

	tests := []struct {
		name            string
		durationSeconds int64
		expected        *int64
	}{
		{name: "zero duration is free", durationSeconds: 0, expected: nil},
		{name: "30 min inside allowance", durationSeconds: 1800, expected: nil},
		{name: "exactly at allowance", durationSeconds: 45 * 60, expected: nil},
		{name: "one second over bills one minute", durationSeconds: 45*60 + 1, expected: cents(30)},
		{name: "10 minutes over", durationSeconds: 55 * 60, expected: cents(300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TripCost(models.BikeTypeClassic, tt.durationSeconds, plan)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassicCostMonotonicInDuration(t *testing.T) {
	plan := models.DefaultPricingPlan()

	var prev int64
	for sec := int64(45 * 60); sec <= 120*60; sec += 37 {
		c := TripCost(models.BikeTypeClassic, sec, plan)
		var v int64
		if c != nil {
			v = *c
		}
		require.GreaterOrEqual(t, v, prev, "cost decreased at duration %d", sec)
		prev = v
	}
}

func TestEbikeCost(t *testing.T) {
	plan := models.DefaultPricingPlan()

	tests := []struct {
		name            string
		durationSeconds int64
		expected        int64
	}{
		{name: "zero duration bills zero", durationSeconds: 0, expected: 0},
		{name: "one second bills one minute", durationSeconds: 1, expected: 26},
		{name: "15 minutes", durationSeconds: 900, expected: 390},
		{name: "partial minute rounds up", durationSeconds: 901, expected: 416},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TripCost(models.BikeTypeEbike, tt.durationSeconds, plan)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestEbikeCostCappedForZombieRides(t *testing.T) {
	plan := models.DefaultPricingPlan()
	plan.EbikeMaxBilledMinutes = 120

	capped := TripCost(models.BikeTypeEbike, 10*3600, plan)
	require.NotNil(t, capped)
	assert.Equal(t, int64(120*26), *capped)

	// Beyond the cap the bill stops growing.
	longer := TripCost(models.BikeTypeEbike, 48*3600, plan)
	require.NotNil(t, longer)
	assert.Equal(t, *capped, *longer)
}

func TestMissingBikeTypeBilledAsClassic(t *testing.T) {
	plan := models.DefaultPricingPlan()

	assert.Nil(t, TripCost("", 1800, plan))
	got := TripCost("", 50*60, plan)
	require.NotNil(t, got)
	assert.Equal(t, int64(5*30), *got)
}

func TestInvalidPlanFailsClosed(t *testing.T) {
	// A plan missing required fare fields bills nothing rather than guessing.
	var empty models.PricingPlan
	assert.Nil(t, TripCost(models.BikeTypeEbike, 900, empty))
	assert.Nil(t, TripCost(models.BikeTypeClassic, 3600, empty))
}

func cents(v int64) *int64 {
	return &v
}
