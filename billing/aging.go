package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"leasemaster-server/models"
)

// Aging bucket labels, oldest last.
const (
	BucketCurrent = "current"
	Bucket1to30   = "1-30"
	Bucket31to60  = "31-60"
	Bucket61to90  = "61-90"
	BucketOver90  = "90+"
)

// AgingRow is one tenant's outstanding balance split by days overdue.
type AgingRow struct {
	TenantID   string          `json:"tenant_id"`
	TenantName string          `json:"tenant_name"`
	UnitNumber string          `json:"unit_number"`
	Phone      string          `json:"phone"`
	Current    decimal.Decimal `json:"current"`
	Days1to30  decimal.Decimal `json:"days_1_30"`
	Days31to60 decimal.Decimal `json:"days_31_60"`
	Days61to90 decimal.Decimal `json:"days_61_90"`
	DaysOver90 decimal.Decimal `json:"days_over_90"`
	Total      decimal.Decimal `json:"total"`
}

// PaymentsByInvoice sums payments per invoice. Only verified, allocated
// payments reduce a balance.
func PaymentsByInvoice(payments []models.Payment) map[string]decimal.Decimal {
	paid := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if !p.Counts() || p.InvoiceID == "" {
			continue
		}
		paid[p.InvoiceID] = paid[p.InvoiceID].Add(p.Amount)
	}
	return paid
}

// AgingBucket classifies an invoice by how far past due it is on the
// given day. Due today or later is current; day 30 is still 1-30; day
// 31 opens the next bucket.
func AgingBucket(dueDate string, today time.Time) string {
	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return BucketCurrent
	}
	days := int(today.Truncate(24*time.Hour).Sub(due).Hours() / 24)
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1to30
	case days <= 60:
		return Bucket31to60
	case days <= 90:
		return Bucket61to90
	default:
		return BucketOver90
	}
}

// AgingReport buckets every unpaid balance by tenant. Draft invoices
// are skipped. Rows come back sorted by total outstanding, largest
// first.
func AgingReport(invoices []models.Invoice, payments []models.Payment, today time.Time) []AgingRow {
	paid := PaymentsByInvoice(payments)
	rows := make(map[string]*AgingRow)

	for _, inv := range invoices {
		if inv.Status == models.InvoiceDraft || inv.Lease == nil || inv.Lease.Tenant == nil {
			continue
		}
		balance := inv.TotalAmount.Sub(paid[inv.ID])
		if !balance.IsPositive() {
			continue
		}
		tenant := inv.Lease.Tenant
		row, ok := rows[tenant.ID]
		if !ok {
			row = &AgingRow{
				TenantID:   tenant.ID,
				TenantName: tenant.FullName,
				Phone:      tenant.Phone,
			}
			if inv.Lease.Unit != nil {
				row.UnitNumber = inv.Lease.Unit.UnitNumber
			}
			rows[tenant.ID] = row
		}
		switch AgingBucket(inv.DueDate, today) {
		case BucketCurrent:
			row.Current = row.Current.Add(balance)
		case Bucket1to30:
			row.Days1to30 = row.Days1to30.Add(balance)
		case Bucket31to60:
			row.Days31to60 = row.Days31to60.Add(balance)
		case Bucket61to90:
			row.Days61to90 = row.Days61to90.Add(balance)
		default:
			row.DaysOver90 = row.DaysOver90.Add(balance)
		}
		row.Total = row.Total.Add(balance)
	}

	out := make([]AgingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].TenantName < out[j].TenantName
	})
	return out
}
