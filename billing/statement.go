package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"leasemaster-server/models"
)

// StatementLine is one dated entry on a tenant statement. Debits come
// from invoice items, credits from payments.
type StatementLine struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Statement lists a lease's charges and payments in date order with a
// running balance. Draft invoices are excluded. An invoice without
// items contributes a single line for its full amount. Ties on a date
// list debits before credits.
func Statement(invoices []models.Invoice, payments []models.Payment) []StatementLine {
	var lines []StatementLine

	for _, inv := range invoices {
		if inv.Status == models.InvoiceDraft {
			continue
		}
		if len(inv.Items) == 0 {
			lines = append(lines, StatementLine{
				Date:        inv.IssueDate,
				Description: "Invoice " + inv.InvoiceNumber,
				Reference:   inv.InvoiceNumber,
				Debit:       inv.TotalAmount,
			})
			continue
		}
		for _, item := range inv.Items {
			lines = append(lines, StatementLine{
				Date:        inv.IssueDate,
				Description: item.Description,
				Reference:   inv.InvoiceNumber,
				Debit:       item.Amount,
			})
		}
	}

	for _, p := range payments {
		if !p.Counts() {
			continue
		}
		desc := "Payment - " + p.PaymentMethod
		if p.ReferenceNumber != "" {
			desc += " " + p.ReferenceNumber
		}
		lines = append(lines, StatementLine{
			Date:        p.PaymentDate,
			Description: desc,
			Reference:   p.ReferenceNumber,
			Credit:      p.Amount,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Date != lines[j].Date {
			return lines[i].Date < lines[j].Date
		}
		return lines[i].Debit.IsPositive() && !lines[j].Debit.IsPositive()
	})

	balance := decimal.Zero
	for i := range lines {
		balance = balance.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].Balance = balance
	}
	return lines
}
