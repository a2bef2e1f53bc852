package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"leasemaster-server/models"
)

// TrendPoint is one month's aggregate water figures.
type TrendPoint struct {
	Month       string          `json:"month"` // YYYY-MM
	Consumption decimal.Decimal `json:"consumption"`
	Amount      decimal.Decimal `json:"amount"`
	Readings    int             `json:"readings"`
}

// LatestReadingPerUnit keeps the freshest reading for each unit,
// preferring LastModifiedAt, then CreatedAt. On exact ties the reading
// seen first wins.
func LatestReadingPerUnit(readings []models.WaterReading) map[string]models.WaterReading {
	latest := make(map[string]models.WaterReading)
	for _, r := range readings {
		cur, ok := latest[r.UnitID]
		if !ok || newerThan(r, cur) {
			latest[r.UnitID] = r
		}
	}
	return latest
}

func newerThan(a, b models.WaterReading) bool {
	if !a.LastModifiedAt.Equal(b.LastModifiedAt) {
		return a.LastModifiedAt.After(b.LastModifiedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// ConsumptionTrend rolls readings up into one point per month for the
// `months` most recent months ending at `end`. Within a month only the
// latest reading per unit counts, so a corrected meter entry replaces
// the value it superseded instead of stacking on top of it. Months
// without readings still appear with zeros.
func ConsumptionTrend(readings []models.WaterReading, end time.Time, months int) []TrendPoint {
	byMonth := make(map[string][]models.WaterReading)
	order := make([]string, 0, months)
	// Anchor on the first of the month so stepping back from a month
	// end never skips February and friends.
	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0).Format("2006-01")
		byMonth[m] = nil
		order = append(order, m)
	}

	for _, r := range readings {
		if len(r.ReadingDate) < 7 {
			continue
		}
		m := r.ReadingDate[:7]
		if _, ok := byMonth[m]; !ok {
			continue
		}
		byMonth[m] = append(byMonth[m], r)
	}

	out := make([]TrendPoint, 0, len(order))
	for _, m := range order {
		point := TrendPoint{Month: m}
		for _, r := range LatestReadingPerUnit(byMonth[m]) {
			point.Consumption = point.Consumption.Add(r.Consumption)
			point.Amount = point.Amount.Add(r.TotalAmount)
			point.Readings++
		}
		out = append(out, point)
	}
	return out
}
