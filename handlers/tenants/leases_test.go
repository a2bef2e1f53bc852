package tenants

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
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
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.Invoice{},
		&models.Payment{},
		&models.ActivityLog{},
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
	r.POST("/leases", CreateLease)
	r.POST("/leases/:id/terminate", TerminateLease)
	r.DELETE("/leases/:id", DeleteLease)
	return r
}

func deleteReq(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUnitAndTenant(t *testing.T) (models.Unit, models.Tenant) {
	t.Helper()
	unit := models.Unit{PropertyID: "p1", HouseTypeID: "ht1", UnitNumber: "C3", Status: models.UnitVacant}
	require.NoError(t, utils.DB.Create(&unit).Error)

	tenant := models.Tenant{FullName: "John Otieno", Email: "john@example.com", Phone: "0700000001", IDNumber: "12345678"}
	require.NoError(t, utils.DB.Create(&tenant).Error)
	return unit, tenant
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateLeaseMarksUnitOccupied(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit, tenant := seedUnitAndTenant(t)

	w := postJSON(r, "/leases", gin.H{
		"unit_id":      unit.ID,
		"tenant_id":    tenant.ID,
		"start_date":   "2026-09-01",
		"end_date":     "2027-08-31",
		"monthly_rent": "12000",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var updated models.Unit
	require.NoError(t, utils.DB.Where("id = ?", unit.ID).First(&updated).Error)
	assert.Equal(t, models.UnitOccupied, updated.Status)
}

func TestCreateLeaseRejectsSecondActiveLease(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit, tenant := seedUnitAndTenant(t)

	other := models.Tenant{FullName: "Mary Achieng", Email: "mary@example.com", Phone: "0700000002", IDNumber: "87654321"}
	require.NoError(t, utils.DB.Create(&other).Error)

	w := postJSON(r, "/leases", gin.H{
		"unit_id":    unit.ID,
		"tenant_id":  tenant.ID,
		"start_date": "2026-09-01",
		"end_date":   "2027-08-31",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/leases", gin.H{
		"unit_id":    unit.ID,
		"tenant_id":  other.ID,
		"start_date": "2026-10-01",
		"end_date":   "2027-09-30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateLeaseRejectsInvertedPeriod(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit, tenant := seedUnitAndTenant(t)

	w := postJSON(r, "/leases", gin.H{
		"unit_id":    unit.ID,
		"tenant_id":  tenant.ID,
		"start_date": "2027-09-01",
		"end_date":   "2026-08-31",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLeaseFreesUnit(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit, tenant := seedUnitAndTenant(t)

	w := postJSON(r, "/leases", gin.H{
		"unit_id":    unit.ID,
		"tenant_id":  tenant.ID,
		"start_date": "2026-01-01",
		"end_date":   "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var lease models.Lease
	require.NoError(t, utils.DB.Where("unit_id = ?", unit.ID).First(&lease).Error)

	w = deleteReq(r, "/leases/"+lease.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	utils.DB.Model(&models.Lease{}).Where("id = ?", lease.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	var updatedUnit models.Unit
	require.NoError(t, utils.DB.Where("id = ?", unit.ID).First(&updatedUnit).Error)
	assert.Equal(t, models.UnitVacant, updatedUnit.Status)
}

func TestDeleteLeaseBlockedByBillingHistory(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit, tenant := seedUnitAndTenant(t)

	w := postJSON(r, "/leases", gin.H{
		"unit_id":    unit.ID,
		"tenant_id":  tenant.ID,
		"start_date": "2026-01-01",
		"end_date":   "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var lease models.Lease
	require.NoError(t, utils.DB.Where("unit_id = ?", unit.ID).First(&lease).Error)

	invoice := models.Invoice{
		InvoiceNumber: "INV-2026-08-lstest",
		LeaseID:       lease.ID,
		IssueDate:     "2026-08-01",
		DueDate:       "2026-08-05",
		Status:        models.InvoicePending,
	}
	require.NoError(t, utils.DB.Create(&invoice).Error)

	w = deleteReq(r, "/leases/"+lease.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTerminateLeaseFreesUnit(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	unit, tenant := seedUnitAndTenant(t)

	w := postJSON(r, "/leases", gin.H{
		"unit_id":    unit.ID,
		"tenant_id":  tenant.ID,
		"start_date": "2026-01-01",
		"end_date":   "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var lease models.Lease
	require.NoError(t, utils.DB.Where("unit_id = ?", unit.ID).First(&lease).Error)

	w = postJSON(r, "/leases/"+lease.ID+"/terminate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updatedUnit models.Unit
	require.NoError(t, utils.DB.Where("id = ?", unit.ID).First(&updatedUnit).Error)
	assert.Equal(t, models.UnitVacant, updatedUnit.Status)

	var updatedLease models.Lease
	require.NoError(t, utils.DB.Where("id = ?", lease.ID).First(&updatedLease).Error)
	assert.Equal(t, models.LeaseTerminated, updatedLease.Status)
}
