package billing

import "github.com/shopspring/decimal"

// Consumption is the metered difference between two readings. Meter
// rollovers and corrections can make it negative; callers decide
// whether to clamp or reject.
func Consumption(current, previous decimal.Decimal) decimal.Decimal {
	return current.Sub(previous)
}

// ClampedConsumption floors the difference at zero. Bulk entry uses
// this so a lowered reading never produces a negative charge.
func ClampedConsumption(current, previous decimal.Decimal) decimal.Decimal {
	c := current.Sub(previous)
	if c.IsNegative() {
		return decimal.Zero
	}
	return c
}

// WaterCharge is consumption times the per-unit rate, rounded to cents.
func WaterCharge(consumption, rate decimal.Decimal) decimal.Decimal {
	return consumption.Mul(rate).Round(2)
}
