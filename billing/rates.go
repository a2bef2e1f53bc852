package billing

import (
	"github.com/shopspring/decimal"

	"leasemaster-server/models"
)

// DefaultWaterRate applies when neither the unit nor the lease carries
// an override.
var DefaultWaterRate = decimal.NewFromFloat(15.50)

// ResolveWaterRate picks the billing rate for a unit's water reading.
// A positive unit override wins, then a positive rate on the active
// lease, then the default. today is YYYY-MM-DD.
func ResolveWaterRate(unit *models.Unit, leases []models.Lease, today string) decimal.Decimal {
	if unit != nil && unit.WaterRateAmount.IsPositive() {
		return unit.WaterRateAmount
	}
	if lease := ActiveLease(leases, today); lease != nil && lease.WaterRateAmount.IsPositive() {
		return lease.WaterRateAmount
	}
	return DefaultWaterRate
}

// ActiveLease returns the lease currently in force, or nil. A lease
// counts as active when its status says so, or when it is not
// terminated and today falls inside its period.
func ActiveLease(leases []models.Lease, today string) *models.Lease {
	for i := range leases {
		l := &leases[i]
		if l.Status == models.LeaseActive {
			return l
		}
	}
	for i := range leases {
		l := &leases[i]
		if l.Status != models.LeaseTerminated && l.CoversDate(today) {
			return l
		}
	}
	return nil
}
