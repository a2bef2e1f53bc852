package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasemaster-server/models"
)

func TestLatestReadingPerUnitPrefersLastModified(t *testing.T) {
	base := day("2026-08-01")
	readings := []models.WaterReading{
		{ID: "a", UnitID: "u1", LastModifiedAt: base, CreatedAt: base.Add(time.Hour)},
		{ID: "b", UnitID: "u1", LastModifiedAt: base.Add(time.Minute), CreatedAt: base},
		{ID: "c", UnitID: "u2", LastModifiedAt: base, CreatedAt: base},
	}

	latest := LatestReadingPerUnit(readings)
	require.Len(t, latest, 2)
	assert.Equal(t, "b", latest["u1"].ID)
	assert.Equal(t, "c", latest["u2"].ID)
}

func TestLatestReadingPerUnitExistingWinsTies(t *testing.T) {
	ts := day("2026-08-01")
	readings := []models.WaterReading{
		{ID: "first", UnitID: "u1", LastModifiedAt: ts, CreatedAt: ts},
		{ID: "second", UnitID: "u1", LastModifiedAt: ts, CreatedAt: ts},
	}

	latest := LatestReadingPerUnit(readings)
	assert.Equal(t, "first", latest["u1"].ID)
}

func TestConsumptionTrendCountsOnlyLatestReadingPerUnit(t *testing.T) {
	base := day("2026-08-01")
	readings := []models.WaterReading{
		{ID: "a", UnitID: "u1", ReadingDate: "2026-08-05", Consumption: d("20"), TotalAmount: d("310"), LastModifiedAt: base},
		{ID: "b", UnitID: "u1", ReadingDate: "2026-08-20", Consumption: d("30"), TotalAmount: d("465"), LastModifiedAt: base.Add(time.Hour)},
	}

	points := ConsumptionTrend(readings, day("2026-08-31"), 1)
	require.Len(t, points, 1)

	assert.True(t, points[0].Consumption.Equal(d("30")), "got %s", points[0].Consumption)
	assert.True(t, points[0].Amount.Equal(d("465")))
	assert.Equal(t, 1, points[0].Readings)
}

func TestConsumptionTrendFillsEmptyMonths(t *testing.T) {
	readings := []models.WaterReading{
		{UnitID: "u1", ReadingDate: "2026-08-05", Consumption: d("20"), TotalAmount: d("310")},
		{UnitID: "u2", ReadingDate: "2026-08-20", Consumption: d("10"), TotalAmount: d("155")},
		{UnitID: "u1", ReadingDate: "2026-06-05", Consumption: d("5"), TotalAmount: d("77.50")},
		{UnitID: "u1", ReadingDate: "2025-01-05", Consumption: d("99"), TotalAmount: d("999")},
	}

	points := ConsumptionTrend(readings, day("2026-08-31"), 6)
	require.Len(t, points, 6)

	assert.Equal(t, "2026-03", points[0].Month)
	assert.Equal(t, "2026-08", points[5].Month)
	assert.True(t, points[5].Consumption.Equal(d("30")))
	assert.Equal(t, 2, points[5].Readings)
	assert.True(t, points[3].Consumption.Equal(d("5")))
	assert.True(t, points[4].Consumption.IsZero())
}
