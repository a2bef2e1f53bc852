package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"leasemaster-server/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestResolveWaterRateUnitOverrideWins(t *testing.T) {
	unit := &models.Unit{WaterRateAmount: d("20.00")}
	leases := []models.Lease{{Status: models.LeaseActive, WaterRateAmount: d("18.00")}}

	rate := ResolveWaterRate(unit, leases, "2026-08-01")
	assert.True(t, rate.Equal(d("20.00")))
}

func TestResolveWaterRateFallsBackToLease(t *testing.T) {
	unit := &models.Unit{WaterRateAmount: decimal.Zero}
	leases := []models.Lease{{Status: models.LeaseActive, WaterRateAmount: d("18.00")}}

	rate := ResolveWaterRate(unit, leases, "2026-08-01")
	assert.True(t, rate.Equal(d("18.00")))
}

func TestResolveWaterRateDefault(t *testing.T) {
	rate := ResolveWaterRate(&models.Unit{}, nil, "2026-08-01")
	assert.True(t, rate.Equal(d("15.50")))

	// Active lease with no override still falls through to the default.
	leases := []models.Lease{{Status: models.LeaseActive}}
	rate = ResolveWaterRate(&models.Unit{}, leases, "2026-08-01")
	assert.True(t, rate.Equal(d("15.50")))
}

func TestActiveLeaseByDateRange(t *testing.T) {
	leases := []models.Lease{
		{ID: "old", Status: models.LeaseExpired, StartDate: "2024-01-01", EndDate: "2024-12-31"},
		{ID: "cur", Status: models.LeaseExpired, StartDate: "2026-01-01", EndDate: "2026-12-31"},
		{ID: "cut", Status: models.LeaseTerminated, StartDate: "2026-01-01", EndDate: "2026-12-31"},
	}

	got := ActiveLease(leases, "2026-08-15")
	if assert.NotNil(t, got) {
		assert.Equal(t, "cur", got.ID)
	}

	assert.Nil(t, ActiveLease(leases, "2025-06-01"))
}
