package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasemaster-server/models"
)

func TestStatementRunningBalance(t *testing.T) {
	invoices := []models.Invoice{
		{
			ID: "i1", InvoiceNumber: "INV-2026-08-abc123", IssueDate: "2026-08-01",
			TotalAmount: d("1000"), Status: models.InvoicePending,
			Items: []models.InvoiceItem{
				{Description: "Monthly rent", Amount: d("800")},
				{Description: "Water charges", Amount: d("200")},
			},
		},
	}
	payments := []models.Payment{
		{Amount: d("400"), PaymentDate: "2026-08-10", PaymentMethod: models.MethodMpesa,
			ReferenceNumber: "QX12AB", Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
	}

	lines := Statement(invoices, payments)
	require.Len(t, lines, 3)

	assert.True(t, lines[0].Balance.Equal(d("800")))
	assert.True(t, lines[1].Balance.Equal(d("1000")))
	assert.True(t, lines[2].Balance.Equal(d("600")))
	assert.Equal(t, "Payment - mpesa QX12AB", lines[2].Description)
}

func TestStatementSyntheticLineForItemlessInvoice(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "i1", InvoiceNumber: "INV-2026-07-xyz789", IssueDate: "2026-07-01",
			TotalAmount: d("1500"), Status: models.InvoicePending},
	}

	lines := Statement(invoices, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, "Invoice INV-2026-07-xyz789", lines[0].Description)
	assert.True(t, lines[0].Debit.Equal(d("1500")))
}

func TestStatementExcludesDraftsAndUnverified(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "i1", InvoiceNumber: "INV-1", IssueDate: "2026-08-01",
			TotalAmount: d("1000"), Status: models.InvoiceDraft},
	}
	payments := []models.Payment{
		{Amount: d("400"), PaymentDate: "2026-08-10", Status: models.PaymentPending,
			AllocationStatus: models.AllocationAllocated},
	}

	assert.Empty(t, Statement(invoices, payments))
}

func TestStatementOrdersDebitsBeforeCreditsOnSameDay(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "i1", InvoiceNumber: "INV-1", IssueDate: "2026-08-10",
			TotalAmount: d("1000"), Status: models.InvoicePending},
	}
	payments := []models.Payment{
		{Amount: d("1000"), PaymentDate: "2026-08-10", PaymentMethod: models.MethodCash,
			Status: models.PaymentVerified, AllocationStatus: models.AllocationAllocated},
	}

	lines := Statement(invoices, payments)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Debit.IsPositive())
	assert.True(t, lines[1].Balance.IsZero())
}
