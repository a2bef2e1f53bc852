package payments

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
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.ActivityLog{},
	))
	utils.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
}

func mustDecimal(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func seedInvoice(t *testing.T, total string) (models.Lease, models.Invoice) {
	t.Helper()
	lease := models.Lease{
		UnitID:      "u1",
		TenantID:    "t1",
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		MonthlyRent: mustDecimal(total),
		Status:      models.LeaseActive,
	}
	require.NoError(t, utils.DB.Create(&lease).Error)

	invoice := models.Invoice{
		InvoiceNumber: "INV-2026-08-pmtest",
		LeaseID:       lease.ID,
		IssueDate:     "2026-08-01",
		DueDate:       "2026-08-05",
		TotalAmount:   mustDecimal(total),
		Status:        models.InvoicePending,
	}
	require.NoError(t, utils.DB.Create(&invoice).Error)
	return lease, invoice
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments", RecordPayment)
	r.PUT("/payments/:id", UpdatePayment)
	r.POST("/payments/:id/verify", VerifyPayment)
	return r
}

func putJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAllocatedVerifiedPaymentRollsUpStatus(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	lease, invoice := seedInvoice(t, "1000")

	w := postJSON(r, "/payments", gin.H{
		"lease_id":       lease.ID,
		"invoice_id":     invoice.ID,
		"amount":         "400",
		"payment_date":   "2026-08-10",
		"payment_method": models.MethodMpesa,
		"status":         models.PaymentVerified,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var updated models.Invoice
	require.NoError(t, utils.DB.Where("id = ?", invoice.ID).First(&updated).Error)
	assert.Equal(t, models.InvoicePartial, updated.Status)

	w = postJSON(r, "/payments", gin.H{
		"lease_id":       lease.ID,
		"invoice_id":     invoice.ID,
		"amount":         "600",
		"payment_date":   "2026-08-15",
		"payment_method": models.MethodCash,
		"status":         models.PaymentVerified,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, utils.DB.Where("id = ?", invoice.ID).First(&updated).Error)
	assert.Equal(t, models.InvoicePaid, updated.Status)
}

func TestPendingPaymentDoesNotReduceBalance(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	lease, invoice := seedInvoice(t, "1000")

	w := postJSON(r, "/payments", gin.H{
		"lease_id":       lease.ID,
		"invoice_id":     invoice.ID,
		"amount":         "1000",
		"payment_date":   "2026-08-10",
		"payment_method": models.MethodBank,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Still pending: the invoice stays unpaid until verification.
	var updated models.Invoice
	require.NoError(t, utils.DB.Where("id = ?", invoice.ID).First(&updated).Error)
	assert.Equal(t, models.InvoicePending, updated.Status)

	var payment models.Payment
	require.NoError(t, utils.DB.Where("invoice_id = ?", invoice.ID).First(&payment).Error)

	w = postJSON(r, "/payments/"+payment.ID+"/verify", gin.H{"status": models.PaymentVerified})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, utils.DB.Where("id = ?", invoice.ID).First(&updated).Error)
	assert.Equal(t, models.InvoicePaid, updated.Status)
}

func TestUpdatePaymentAmountRollsUpInvoice(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	lease, invoice := seedInvoice(t, "1000")

	w := postJSON(r, "/payments", gin.H{
		"lease_id":       lease.ID,
		"invoice_id":     invoice.ID,
		"amount":         "400",
		"payment_date":   "2026-08-10",
		"payment_method": models.MethodMpesa,
		"status":         models.PaymentVerified,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var payment models.Payment
	require.NoError(t, utils.DB.Where("invoice_id = ?", invoice.ID).First(&payment).Error)

	// Correcting the amount up to the full total settles the invoice.
	w = putJSON(r, "/payments/"+payment.ID, gin.H{"amount": "1000"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Invoice
	require.NoError(t, utils.DB.Where("id = ?", invoice.ID).First(&updated).Error)
	assert.Equal(t, models.InvoicePaid, updated.Status)
}

func TestUpdatePaymentRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	lease, invoice := seedInvoice(t, "1000")

	w := postJSON(r, "/payments", gin.H{
		"lease_id":       lease.ID,
		"invoice_id":     invoice.ID,
		"amount":         "400",
		"payment_date":   "2026-08-10",
		"payment_method": models.MethodMpesa,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var payment models.Payment
	require.NoError(t, utils.DB.Where("invoice_id = ?", invoice.ID).First(&payment).Error)

	w = putJSON(r, "/payments/"+payment.ID, gin.H{"amount": "-5"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	lease, _ := seedInvoice(t, "1000")

	w := postJSON(r, "/payments", gin.H{
		"lease_id":       lease.ID,
		"amount":         "0",
		"payment_date":   "2026-08-10",
		"payment_method": models.MethodCash,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
