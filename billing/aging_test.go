package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasemaster-server/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAgingBucketBoundaries(t *testing.T) {
	today := day("2026-08-31")

	assert.Equal(t, BucketCurrent, AgingBucket("2026-08-31", today))
	assert.Equal(t, BucketCurrent, AgingBucket("2026-09-15", today))
	assert.Equal(t, Bucket1to30, AgingBucket("2026-08-30", today))
	assert.Equal(t, Bucket1to30, AgingBucket("2026-08-01", today)) // day 30
	assert.Equal(t, Bucket31to60, AgingBucket("2026-07-31", today))
	assert.Equal(t, Bucket61to90, AgingBucket("2026-07-01", today))
	assert.Equal(t, Bucket61to90, AgingBucket("2026-06-02", today)) // day 90
	assert.Equal(t, BucketOver90, AgingBucket("2026-06-01", today)) // day 91
}

func TestPaymentsByInvoiceSkipsUncounted(t *testing.T) {
	payments := []models.Payment{
		{InvoiceID: "a", Amount: d("100"), Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
		{InvoiceID: "a", Amount: d("50"), Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
		{InvoiceID: "a", Amount: d("999"), Status: models.PaymentPending, AllocationStatus: models.AllocationAllocated},
		{InvoiceID: "a", Amount: d("999"), Status: models.PaymentVerified, AllocationStatus: models.AllocationUnallocated},
		{InvoiceID: "", Amount: d("999"), Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
	}

	paid := PaymentsByInvoice(payments)
	assert.True(t, paid["a"].Equal(d("150")))
}

func TestAgingReportGroupsByTenant(t *testing.T) {
	tenant := &models.Tenant{ID: "t1", FullName: "Jane Wanjiku", Phone: "0712345678"}
	unit := &models.Unit{UnitNumber: "A1"}
	lease := &models.Lease{ID: "l1", Tenant: tenant, Unit: unit}

	invoices := []models.Invoice{
		{ID: "i1", TotalAmount: d("1000"), DueDate: "2026-08-25", Status: models.InvoicePending, Lease: lease},
		{ID: "i2", TotalAmount: d("800"), DueDate: "2026-06-15", Status: models.InvoiceOverdue, Lease: lease},
		{ID: "i3", TotalAmount: d("500"), DueDate: "2026-08-25", Status: models.InvoiceDraft, Lease: lease},
		{ID: "i4", TotalAmount: d("300"), DueDate: "2026-08-25", Status: models.InvoicePaid, Lease: lease},
	}
	payments := []models.Payment{
		{InvoiceID: "i4", Amount: d("300"), Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
		{InvoiceID: "i2", Amount: d("200"), Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
	}

	rows := AgingReport(invoices, payments, day("2026-08-31"))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Jane Wanjiku", row.TenantName)
	assert.Equal(t, "A1", row.UnitNumber)
	assert.True(t, row.Days1to30.Equal(d("1000")))
	assert.True(t, row.Days61to90.Equal(d("600"))) // 800 less the 200 paid
	assert.True(t, row.Total.Equal(d("1600")))
}

func TestAgingReportSortsByTotalDesc(t *testing.T) {
	small := &models.Lease{Tenant: &models.Tenant{ID: "t1", FullName: "Small"}}
	big := &models.Lease{Tenant: &models.Tenant{ID: "t2", FullName: "Big"}}

	invoices := []models.Invoice{
		{ID: "i1", TotalAmount: d("100"), DueDate: "2026-08-01", Status: models.InvoicePending, Lease: small},
		{ID: "i2", TotalAmount: d("5000"), DueDate: "2026-08-01", Status: models.InvoicePending, Lease: big},
	}

	rows := AgingReport(invoices, nil, day("2026-08-31"))
	require.Len(t, rows, 2)
	assert.Equal(t, "Big", rows[0].TenantName)
	assert.Equal(t, "Small", rows[1].TenantName)
}
