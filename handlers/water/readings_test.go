package water

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.HouseType{},
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.WaterReading{},
	))
	utils.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/water-readings", CreateWaterReading)
	r.POST("/water-readings/bulk", BulkUpsertWaterReadings)
	return r
}

func seedUnit(t *testing.T, waterRate string) models.Unit {
	t.Helper()
	unit := models.Unit{
		PropertyID:      "p1",
		HouseTypeID:     "ht1",
		UnitNumber:      "A1",
		WaterRateAmount: mustDecimal(waterRate),
		Status:          models.UnitVacant,
	}
	require.NoError(t, utils.DB.Create(&unit).Error)
	return unit
}

func mustDecimal(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateWaterReadingUsesUnitOverrideRate(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "20.00")

	w := postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-08-31",
		"current_reading": "120",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reading models.WaterReading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reading))
	assert.True(t, reading.RatePerUnit.Equal(mustDecimal("20.00")))
	assert.True(t, reading.PreviousReading.IsZero())
	assert.True(t, reading.Consumption.Equal(mustDecimal("120")))
	assert.True(t, reading.TotalAmount.Equal(mustDecimal("2400.00")))
}

func TestCreateWaterReadingDefaultsRate(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "0")

	w := postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-08-31",
		"current_reading": "10",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reading models.WaterReading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reading))
	assert.True(t, reading.RatePerUnit.Equal(mustDecimal("15.50")))
	assert.True(t, reading.TotalAmount.Equal(mustDecimal("155.00")))
}

func TestCreateWaterReadingRejectsLowerValue(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "0")

	w := postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-07-31",
		"current_reading": "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-08-31",
		"current_reading": "90",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWaterReadingChainsPrevious(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "0")

	w := postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-07-31",
		"current_reading": "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-08-31",
		"current_reading": "125",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reading models.WaterReading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reading))
	assert.True(t, reading.PreviousReading.Equal(mustDecimal("100")))
	assert.True(t, reading.Consumption.Equal(mustDecimal("25")))
}

func TestBulkReadingsClampInsteadOfReject(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "0")

	w := postJSON(r, "/water-readings", gin.H{
		"unit_id":         unit.ID,
		"reading_date":    "2026-07-31",
		"current_reading": "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A lower value on the bulk sheet bills zero rather than failing.
	w = postJSON(r, "/water-readings/bulk", gin.H{
		"reading_date": "2026-08-31",
		"entries": []gin.H{
			{"unit_id": unit.ID, "current_reading": "95"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reading models.WaterReading
	require.NoError(t, utils.DB.Where("unit_id = ? AND reading_date = ?", unit.ID, "2026-08-31").First(&reading).Error)
	assert.True(t, reading.Consumption.IsZero())
	assert.True(t, reading.TotalAmount.IsZero())
	assert.True(t, reading.CurrentReading.Equal(mustDecimal("95")))
}

func TestBulkReadingsUpdateExistingRow(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "10.00")

	w := postJSON(r, "/water-readings/bulk", gin.H{
		"reading_date": "2026-08-31",
		"entries": []gin.H{
			{"unit_id": unit.ID, "current_reading": "40"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/water-readings/bulk", gin.H{
		"reading_date": "2026-08-31",
		"entries": []gin.H{
			{"unit_id": unit.ID, "current_reading": "50"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	utils.DB.Model(&models.WaterReading{}).Where("unit_id = ?", unit.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var reading models.WaterReading
	require.NoError(t, utils.DB.Where("unit_id = ?", unit.ID).First(&reading).Error)
	assert.True(t, reading.CurrentReading.Equal(mustDecimal("50")))
	assert.True(t, reading.TotalAmount.Equal(mustDecimal("500.00")))
}

func TestBulkReadingsUseLeaseRate(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit := seedUnit(t, "0")

	lease := models.Lease{
		UnitID:          unit.ID,
		TenantID:        "t1",
		StartDate:       "2026-01-01",
		EndDate:         "2026-12-31",
		WaterRateAmount: mustDecimal("18.00"),
		Status:          models.LeaseActive,
	}
	require.NoError(t, utils.DB.Create(&lease).Error)

	w := postJSON(r, "/water-readings/bulk", gin.H{
		"reading_date": "2026-08-31",
		"entries": []gin.H{
			{"unit_id": unit.ID, "current_reading": "10"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reading models.WaterReading
	require.NoError(t, utils.DB.Where("unit_id = ?", unit.ID).First(&reading).Error)
	assert.True(t, reading.RatePerUnit.Equal(mustDecimal("18.00")))
	assert.True(t, reading.TotalAmount.Equal(mustDecimal("180.00")))
}
